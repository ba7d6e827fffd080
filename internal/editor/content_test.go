package editor

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// Two code editor fixtures: one exposing the component's plain-text API
// (setSource/getSource), one offering only a contenteditable surface so the
// helper must fall back to keyboard input. Both include the save button
// with the busy/idle icon toggle.
const editorAPIFixtureHTML = `<!DOCTYPE html>
<html>
<body>
<pwappy-script-editor>
  <div class="editor-body" contenteditable="true" style="display:block;min-height:80px;border:1px solid #999">old content</div>
  <button title="保存"><i class="icon-save"></i></button>
  <button title="閉じる">×</button>
</pwappy-script-editor>
<script>
  var ed = document.querySelector('pwappy-script-editor');
  var body = ed.querySelector('.editor-body');
  ed.setSource = function (s) { body.innerText = s; };
  ed.getSource = function () { return body.innerText; };

  var save = document.querySelector('button[title="保存"]');
  save.addEventListener('click', function () {
    var icon = save.querySelector('i');
    icon.className = 'icon-busy';
    setTimeout(function () { icon.className = 'icon-save'; }, 200);
  });
</script>
</body>
</html>`

const editorKeyboardFixtureHTML = `<!DOCTYPE html>
<html>
<body>
<pwappy-script-editor>
  <div class="editor-body" contenteditable="true" style="display:block;min-height:80px;border:1px solid #999">old content</div>
  <button title="保存"><i class="icon-save"></i></button>
</pwappy-script-editor>
</body>
</html>`

const scriptContent = "function testLoadScript(event) {\nons.notification.alert('loadScript');"

func editorText(t *testing.T, page playwright.Page) string {
	t.Helper()
	got, err := page.Evaluate(editorGetSourceJS)
	if err != nil {
		t.Fatalf("failed to read editor text: %v", err)
	}
	text, _ := got.(string)
	return text
}

func TestSetEditorContent_DirectAssignment(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/": editorAPIFixtureHTML})
	page := newFixturePage(t, server, "/")
	session := NewSessionWithTimeout(t, page, fixtureTimeoutMS)

	session.SetEditorContent(scriptContent)

	// Exact round-trip: line breaks must survive, not just token order.
	got := editorText(t, page)
	if strings.TrimRight(got, " \t\r\n") != scriptContent {
		t.Fatalf("editor text = %q, want exactly %q", got, scriptContent)
	}
	if strings.Contains(got, "old content") {
		t.Fatal("previous editor content survived the replacement")
	}
}

func TestSetEditorContent_KeyboardFallback(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/": editorKeyboardFixtureHTML})
	page := newFixturePage(t, server, "/")
	session := NewSessionWithTimeout(t, page, fixtureTimeoutMS)

	// No setSource on this editor: the helper must clear with select-all +
	// delete and type the content key by key.
	session.SetEditorContent(scriptContent)

	got := editorText(t, page)
	if strings.TrimRight(got, " \t\r\n") != scriptContent {
		t.Fatalf("editor text = %q, want exactly %q", got, scriptContent)
	}
	if strings.Contains(got, "old content") {
		t.Fatal("previous editor content survived the replacement")
	}
}

func TestSaveScript_WaitsForIdleIcon(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/": editorAPIFixtureHTML})
	page := newFixturePage(t, server, "/")
	session := NewSessionWithTimeout(t, page, fixtureTimeoutMS)

	session.SaveScript()

	// SaveScript returns only once the icon is back to its idle class.
	cls, err := page.Locator(`button[title="保存"] i`).GetAttribute("class")
	if err != nil {
		t.Fatalf("failed to read save icon class: %v", err)
	}
	if cls != "icon-save" {
		t.Fatalf("save icon class = %q after SaveScript, want %q", cls, "icon-save")
	}
}
