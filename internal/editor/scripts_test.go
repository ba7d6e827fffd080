package editor

import (
	"strings"
	"testing"
)

// eventPanelFixtureHTML reproduces the event panel contract: rows with
// exact labels, the add-script dialog, script entries appended only after a
// short delay (creation is asynchronous, like the real editor), and a code
// editor that persists content on save.
const eventPanelFixtureHTML = `<!DOCTYPE html>
<html>
<body>
<pwappy-event-list style="display:block">
  <button title="イベント追加">+</button>
  <pwappy-event-item data-event="load" style="display:block">
    <span class="event-label">load</span>
    <button title="スクリプト追加">+</button>
    <div class="scripts"></div>
  </pwappy-event-item>
  <pwappy-event-item data-event="click" style="display:block">
    <span class="event-label">click</span>
    <button title="スクリプト追加">+</button>
    <div class="scripts"></div>
  </pwappy-event-item>
</pwappy-event-list>

<pwappy-name-dialog style="display:none">
  <input name="script-name">
  <input name="event-name">
  <button title="追加">追加</button>
</pwappy-name-dialog>

<pwappy-script-editor style="display:none">
  <div class="editor-body" contenteditable="true" style="display:block;min-height:80px"></div>
  <button title="保存"><i class="icon-save"></i></button>
  <button title="閉じる">×</button>
</pwappy-script-editor>

<script>
(function () {
  var dialog = document.querySelector('pwappy-name-dialog');
  var editor = document.querySelector('pwappy-script-editor');
  var editorBody = editor.querySelector('.editor-body');
  var sources = {};
  var currentRow = null;
  var currentScript = null;

  editor.setSource = function (s) { editorBody.innerText = s; };
  editor.getSource = function () { return editorBody.innerText; };

  document.querySelectorAll('pwappy-event-item').forEach(function (row) {
    row.querySelector('[title="スクリプト追加"]').addEventListener('click', function () {
      currentRow = row;
      dialog.style.display = 'block';
    });
  });

  dialog.querySelector('[title="追加"]').addEventListener('click', function () {
    var name = dialog.querySelector('input[name="script-name"]').value;
    var row = currentRow;
    dialog.style.display = 'none';
    setTimeout(function () {
      var entry = document.createElement('div');
      entry.className = 'script-entry';
      entry.textContent = name;
      var edit = document.createElement('button');
      edit.title = 'スクリプト編集';
      edit.textContent = 'e';
      edit.addEventListener('click', function () {
        currentScript = name;
        editor.setSource(sources[name] || '');
        editor.style.display = 'block';
      });
      entry.appendChild(edit);
      row.querySelector('.scripts').appendChild(entry);
    }, 100);
  });

  editor.querySelector('[title="保存"]').addEventListener('click', function () {
    var icon = editor.querySelector('[title="保存"] i');
    icon.className = 'icon-busy';
    setTimeout(function () {
      sources[currentScript] = editor.getSource();
      icon.className = 'icon-save';
    }, 150);
  });

  editor.querySelector('[title="閉じる"]').addEventListener('click', function () {
    editor.style.display = 'none';
  });
})();
</script>
</body>
</html>`

func TestAddScriptToEvent_AppearsInRow(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/": eventPanelFixtureHTML})
	page := newFixturePage(t, server, "/")
	session := NewSessionWithTimeout(t, page, fixtureTimeoutMS)

	session.AddScriptToEvent("load", "testLoadScript")

	rowText, err := page.Locator(`pwappy-event-item[data-event="load"]`).TextContent()
	if err != nil {
		t.Fatalf("failed to read load event row: %v", err)
	}
	if !strings.Contains(rowText, "testLoadScript") {
		t.Fatalf("load event row does not list the new script: %q", rowText)
	}

	// The other row must be untouched; rows are matched by exact label.
	otherText, err := page.Locator(`pwappy-event-item[data-event="click"]`).TextContent()
	if err != nil {
		t.Fatalf("failed to read click event row: %v", err)
	}
	if strings.Contains(otherText, "testLoadScript") {
		t.Fatalf("script leaked into the wrong event row: %q", otherText)
	}
}

func TestEditScript_PersistsContent(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/": eventPanelFixtureHTML})
	page := newFixturePage(t, server, "/")
	session := NewSessionWithTimeout(t, page, fixtureTimeoutMS)

	session.AddScriptToEvent("load", "testLoadScript")
	session.EditScript("load", "testLoadScript", scriptContent)
	session.CloseScriptEditor()

	// Re-opening shows the saved content, proving the save round-tripped
	// with its line breaks intact.
	session.OpenScriptEditor("load", "testLoadScript")
	got := editorText(t, page)
	if strings.TrimRight(got, " \t\r\n") != scriptContent {
		t.Fatalf("saved script content = %q, want exactly %q", got, scriptContent)
	}
}
