package editor

import "fmt"

// The editor UI is addressed by custom element tag names, title attributes,
// data attributes and visible label text in the UI's display language.
// These values are the editor's interface, not a styling choice: they must
// match the deployed editor exactly.
const (
	// Event panel: one row per lifecycle/DOM event, scripts listed inside.
	eventListSel   = "pwappy-event-list"
	eventItemSel   = "pwappy-event-item"
	eventLabelSel  = ".event-label"
	scriptEntrySel = ".script-entry"

	addScriptTitle  = "スクリプト追加"
	editScriptTitle = "スクリプト編集"
	addEventTitle   = "イベント追加"

	// Name dialog shared by script and custom event creation.
	nameDialogSel        = "pwappy-name-dialog"
	scriptNameInputSel   = nameDialogSel + ` input[name="script-name"]`
	eventNameInputSel    = nameDialogSel + ` input[name="event-name"]`
	nameDialogConfirmSel = nameDialogSel + ` button[title="追加"]`

	// Code editor widget.
	scriptEditorSel  = "pwappy-script-editor"
	editorSurfaceSel = scriptEditorSel + " .editor-body"
	saveButtonSel    = scriptEditorSel + ` button[title="保存"]`
	saveBusyIconSel  = saveButtonSel + " i.icon-busy"
	saveIdleIconSel  = saveButtonSel + " i.icon-save"
	closeEditorSel   = scriptEditorSel + ` button[title="閉じる"]`

	// DOM tree panel. Every tree entry carries a stable node identifier.
	domTreeSel        = "pwappy-dom-tree"
	nodeIDAttr        = "data-node-id"
	nodeTypeAttr      = "data-node-type"
	addPageTitle      = "ページ追加"
	addComponentTitle = "コンポーネント追加"

	componentDialogSel = "pwappy-component-dialog"

	// Top-level template switcher.
	templateBarSel = "pwappy-template-bar"

	// Editor tabs.
	tabItemSel    = "pwappy-tab-bar .tab-item"
	tabContentSel = ".tab-content"

	// Platform mode switcher (layout/run preview).
	modeSwitchSel = "pwappy-mode-switch"
	runModeSel    = modeSwitchSel + ` button[data-mode="run"]`
	layoutModeSel = modeSwitchSel + ` button[data-mode="layout"]`

	previewFrameSel = "iframe#preview"

	// Modal alerts, both the editor's own dialogs and the ones
	// ons.notification.alert raises inside the generated preview.
	alertDialogSel = "ons-alert-dialog"
	alertButtonSel = ".alert-dialog-button"
)

// Editor tab labels.
const (
	TabDesign = "デザイン"
	TabEvent  = "イベント"
)

// ScriptErrorMessage is the modal text the editor shows when it blocks a
// tab switch or save because the active script has a syntax error.
const ScriptErrorMessage = "スクリプトのエラーを修正してください"

// cssString renders s as a quoted CSS string for :has-text()/:text-is().
func cssString(s string) string {
	return fmt.Sprintf("%q", s)
}

// attrSelector builds an [attr="value"] selector.
func attrSelector(attr, value string) string {
	return fmt.Sprintf(`[%s=%q]`, attr, value)
}
