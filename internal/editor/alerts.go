package editor

import (
	"testing"

	"github.com/playwright-community/playwright-go"
)

// AlertScope is the minimal element-lookup capability the alert checks
// need. Both a full page and an embedded frame satisfy it, so the same
// verification procedure runs against the editor's own modals and the
// alerts the generated application raises inside the preview frame.
type AlertScope interface {
	Locator(selector string) playwright.Locator
}

type pageScope struct{ page playwright.Page }

func (s pageScope) Locator(selector string) playwright.Locator { return s.page.Locator(selector) }

type frameScope struct{ frame playwright.FrameLocator }

func (s frameScope) Locator(selector string) playwright.Locator { return s.frame.Locator(selector) }

// PageScope adapts a page for alert verification.
func PageScope(page playwright.Page) AlertScope { return pageScope{page} }

// FrameScope adapts an embedded frame for alert verification.
func FrameScope(frame playwright.FrameLocator) AlertScope { return frameScope{frame} }

// VerifyAndCloseAlert waits for an alert dialog containing text to become
// visible, dismisses it, and waits for it to hide. The only accepted
// sequence is absent → visible with matching text → hidden after the
// dismiss click; any deviation fails the test with no retry.
func VerifyAndCloseAlert(t *testing.T, scope AlertScope, text string, timeoutMS float64) {
	t.Helper()
	dialog := scope.Locator(alertDialogSel + ":has-text(" + cssString(text) + ")").First()

	if err := dialog.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeoutMS),
	}); err != nil {
		t.Fatalf("alert %q never became visible: %v", text, err)
	}

	button := dialog.Locator(alertButtonSel).First()
	if err := button.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(timeoutMS),
	}); err != nil {
		t.Fatalf("failed to dismiss alert %q: %v", text, err)
	}

	if err := dialog.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(timeoutMS),
	}); err != nil {
		t.Fatalf("alert %q did not close after dismissal: %v", text, err)
	}
}

// VerifyAndCloseAlert checks a modal raised by the editor page itself.
func (s *Session) VerifyAndCloseAlert(text string) {
	s.t.Helper()
	VerifyAndCloseAlert(s.t, PageScope(s.page), text, s.timeout)
}

// VerifyAndCloseAlertInPreview checks an alert raised inside the preview
// frame by the generated application.
func (s *Session) VerifyAndCloseAlertInPreview(text string) {
	s.t.Helper()
	VerifyAndCloseAlert(s.t, FrameScope(s.Preview()), text, s.timeout)
}

// SwitchToRunMode flips the editor from the static layout preview into the
// interactive run preview, which executes the generated event wiring.
func (s *Session) SwitchToRunMode() {
	s.t.Helper()
	s.click(s.page.Locator(runModeSel), "run mode button")
	s.waitVisible(s.page.Locator(runModeSel+".active"), "run mode active state")
}

// SwitchToLayoutMode returns to the static design-time preview.
func (s *Session) SwitchToLayoutMode() {
	s.t.Helper()
	s.click(s.page.Locator(layoutModeSel), "layout mode button")
	s.waitVisible(s.page.Locator(layoutModeSel+".active"), "layout mode active state")
}

// SwitchToRunModeAndVerify enters run mode and confirms the expected alert
// fires inside the preview, proving the generated event wiring actually
// executes.
func (s *Session) SwitchToRunModeAndVerify(expectedAlertText string) {
	s.t.Helper()
	s.SwitchToRunMode()
	s.VerifyAndCloseAlertInPreview(expectedAlertText)
}
