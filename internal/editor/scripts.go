package editor

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// eventRow returns the event row whose label matches eventName exactly.
func (s *Session) eventRow(eventName string) playwright.Locator {
	return s.page.Locator(
		eventItemSel + ":has(" + eventLabelSel + ":text-is(" + cssString(eventName) + "))",
	)
}

// scriptEntry returns the script entry inside the event's row that contains
// scriptName.
func (s *Session) scriptEntry(eventName, scriptName string) playwright.Locator {
	return s.eventRow(eventName).Locator(
		scriptEntrySel + ":has-text(" + cssString(scriptName) + ")",
	)
}

// AddScriptToEvent opens the add-script dialog on the event's row, names
// the script, confirms, and waits until the name shows up in the row. The
// row text is the only proof of creation the editor gives; every later
// operation on the script starts from it.
func (s *Session) AddScriptToEvent(eventName, scriptName string) {
	s.t.Helper()
	row := s.waitVisible(s.eventRow(eventName), fmt.Sprintf("event row %q", eventName))
	s.click(row.Locator(attrSelector("title", addScriptTitle)), fmt.Sprintf("add-script button on event %q", eventName))

	input := s.waitVisible(s.page.Locator(scriptNameInputSel), "script name input")
	s.fill(input, scriptName, "script name input")
	s.click(s.page.Locator(nameDialogConfirmSel), "script add confirm button")

	s.waitVisible(
		s.scriptEntry(eventName, scriptName),
		fmt.Sprintf("script %q in event row %q", scriptName, eventName),
	)
}

// AddEvent defines a custom event on the currently selected node. Once
// registered it is just another event row.
func (s *Session) AddEvent(eventName string) {
	s.t.Helper()
	panel := s.waitVisible(s.page.Locator(eventListSel), "event list panel")
	s.click(panel.Locator(attrSelector("title", addEventTitle)), "add-event button")

	input := s.waitVisible(s.page.Locator(eventNameInputSel), "event name input")
	s.fill(input, eventName, "event name input")
	s.click(s.page.Locator(nameDialogConfirmSel), "event add confirm button")

	s.waitVisible(s.eventRow(eventName), fmt.Sprintf("event row %q", eventName))
}

// OpenScriptEditor opens the code editor for a script that already exists
// under the event.
func (s *Session) OpenScriptEditor(eventName, scriptName string) {
	s.t.Helper()
	entry := s.waitVisible(
		s.scriptEntry(eventName, scriptName),
		fmt.Sprintf("script %q in event row %q", scriptName, eventName),
	)
	s.click(entry.Locator(attrSelector("title", editScriptTitle)), fmt.Sprintf("edit button for script %q", scriptName))
	s.waitVisible(s.page.Locator(scriptEditorSel), "script editor")
}

// CloseScriptEditor dismisses the code editor and waits for it to go away.
func (s *Session) CloseScriptEditor() {
	s.t.Helper()
	s.click(s.page.Locator(closeEditorSel), "script editor close button")
	s.waitHidden(s.page.Locator(scriptEditorSel), "script editor")
}

// RequireScriptEditorVisible asserts the code editor is still on screen,
// used by scenarios where the editor must block navigation away from a
// broken script.
func (s *Session) RequireScriptEditorVisible() {
	s.t.Helper()
	visible, err := s.page.Locator(scriptEditorSel).IsVisible()
	if err != nil {
		s.t.Fatalf("failed to check script editor visibility: %v", err)
	}
	if !visible {
		s.t.Fatal("script editor is hidden but should still be visible")
	}
}

// SetEditorContent replaces the code editor's entire text with content.
// Where the editor component exposes its plain-text API the content is
// assigned directly; otherwise the existing text is cleared with
// select-all + delete and the new text typed through the keyboard. Callers
// only see the contract: afterwards the editor's text equals content.
func (s *Session) SetEditorContent(content string) {
	s.t.Helper()
	s.waitVisible(s.page.Locator(scriptEditorSel), "script editor")

	direct, err := s.page.Evaluate(editorHasSetSourceJS)
	if err != nil {
		s.t.Fatalf("failed to probe script editor input capability: %v", err)
	}

	if supported, _ := direct.(bool); supported {
		if _, err := s.page.Evaluate(editorSetSourceJS, content); err != nil {
			s.t.Fatalf("failed to assign script editor content: %v", err)
		}
	} else {
		surface := s.waitVisible(s.page.Locator(editorSurfaceSel), "script editor surface")
		s.click(surface, "script editor surface")
		if err := surface.Press("ControlOrMeta+a"); err != nil {
			s.t.Fatalf("failed to select editor content: %v", err)
		}
		if err := surface.Press("Delete"); err != nil {
			s.t.Fatalf("failed to clear editor content: %v", err)
		}
		if err := surface.PressSequentially(content); err != nil {
			s.t.Fatalf("failed to type editor content: %v", err)
		}
	}

	// Terminal state check: the editor's text must equal content. The only
	// tolerated deviation is a trailing-whitespace trim by the widget;
	// anything else (collapsed newlines, reordered lines) is a mangled
	// write and fails here rather than in a later assertion.
	got, err := s.page.Evaluate(editorGetSourceJS)
	if err != nil {
		s.t.Fatalf("failed to read back script editor content: %v", err)
	}
	text, _ := got.(string)
	if text != content &&
		strings.TrimRight(text, " \t\r\n") != strings.TrimRight(content, " \t\r\n") {
		s.t.Fatalf("script editor content mismatch after input\nwant: %q\ngot:  %q", content, text)
	}
}

// ClickSave clicks the save affordance without waiting for completion.
// Scenarios that expect the editor to block the save use this directly.
func (s *Session) ClickSave() {
	s.t.Helper()
	s.click(s.page.Locator(saveButtonSel), "save button")
}

// SaveScript clicks save and waits for the save icon to return to its idle
// class. The editor saves asynchronously behind a synchronous-looking
// button; the icon class is the only terminal signal, so clicking alone
// proves nothing.
func (s *Session) SaveScript() {
	s.t.Helper()
	s.ClickSave()
	if err := s.page.Locator(saveBusyIconSel).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateDetached,
		Timeout: playwright.Float(s.timeout),
	}); err != nil {
		s.t.Fatalf("save never finished, busy icon still present: %v", err)
	}
	s.waitVisible(s.page.Locator(saveIdleIconSel), "save idle icon")
}

// SaveScriptExpectingError clicks save and expects the editor to refuse it
// with a modal carrying message. The code editor must still be on screen
// after the modal is dismissed.
func (s *Session) SaveScriptExpectingError(message string) {
	s.t.Helper()
	s.ClickSave()
	s.VerifyAndCloseAlert(message)
	s.RequireScriptEditorVisible()
}

// EditScript opens scriptName under eventName, replaces its content, and
// saves, waiting for the save to reach its idle state.
func (s *Session) EditScript(eventName, scriptName, content string) {
	s.t.Helper()
	s.OpenScriptEditor(eventName, scriptName)
	s.SetEditorContent(content)
	s.SaveScript()
}

const editorHasSetSourceJS = `() => {
	const ed = document.querySelector('pwappy-script-editor');
	return !!ed && typeof ed.setSource === 'function';
}`

const editorSetSourceJS = `(source) => {
	document.querySelector('pwappy-script-editor').setSource(source);
}`

const editorGetSourceJS = `() => {
	const ed = document.querySelector('pwappy-script-editor');
	if (!ed) return null;
	if (typeof ed.getSource === 'function') return ed.getSource();
	const body = ed.querySelector('.editor-body');
	return body ? body.innerText : null;
}`
