package editor

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// NodeByID returns the DOM tree entry for a node identifier.
func (s *Session) NodeByID(nodeID string) playwright.Locator {
	return s.page.Locator(domTreeSel + " " + attrSelector(nodeIDAttr, nodeID))
}

// TemplateRootNode returns the tree entry for the active template's root
// page element.
func (s *Session) TemplateRootNode() playwright.Locator {
	return s.page.Locator(domTreeSel + " " + attrSelector(nodeTypeAttr, "ons-page")).First()
}

// SelectNode clicks a tree entry and waits for it to gain the selected
// state, the precondition for node-scoped panels (events, styles) to show
// that node's data.
func (s *Session) SelectNode(node playwright.Locator) {
	s.t.Helper()
	entry := s.waitVisible(node, "tree node")
	s.click(entry, "tree node")
	id, err := entry.GetAttribute(nodeIDAttr)
	if err != nil || id == "" {
		s.t.Fatalf("tree node has no %s attribute: %v", nodeIDAttr, err)
	}
	s.waitVisible(
		s.page.Locator(domTreeSel+" "+attrSelector(nodeIDAttr, id)+".selected"),
		fmt.Sprintf("selected state on node %s", id),
	)
}

// AddPage inserts a new top-level page template. The editor selects the new
// node, which is how its identifier is learned; the id is returned so the
// caller can activate or re-locate the page later.
func (s *Session) AddPage() string {
	s.t.Helper()
	prior := s.selectedNodeID()
	tree := s.waitVisible(s.page.Locator(domTreeSel), "DOM tree panel")
	s.click(tree.Locator(attrSelector("title", addPageTitle)), "add-page button")
	return s.waitNewSelectedNode("ons-page", prior)
}

// AddComponent inserts a tagName element under the given parent tree node.
// It returns the new tree entry and its stable node identifier.
func (s *Session) AddComponent(tagName string, parent playwright.Locator) (playwright.Locator, string) {
	s.t.Helper()
	s.SelectNode(parent)
	prior := s.selectedNodeID()

	tree := s.page.Locator(domTreeSel)
	s.click(tree.Locator(attrSelector("title", addComponentTitle)), "add-component button")

	choice := s.waitVisible(
		s.page.Locator(componentDialogSel+" "+attrSelector("data-tag", tagName)),
		fmt.Sprintf("component choice %q", tagName),
	)
	s.click(choice, fmt.Sprintf("component choice %q", tagName))

	id := s.waitNewSelectedNode(tagName, prior)
	return s.NodeByID(id), id
}

// selectedNodeID returns the node id of the currently selected tree entry,
// or "" when nothing is selected.
func (s *Session) selectedNodeID() string {
	s.t.Helper()
	selected := s.page.Locator(domTreeSel + " .selected")
	count, err := selected.Count()
	if err != nil || count == 0 {
		return ""
	}
	id, err := selected.First().GetAttribute(nodeIDAttr)
	if err != nil {
		return ""
	}
	return id
}

// waitNewSelectedNode waits for the tree selection to land on a node of the
// given type and returns its node identifier. priorID is the node selected
// before the insert; it is excluded so a still-selected parent of the same
// type cannot be mistaken for the new node.
func (s *Session) waitNewSelectedNode(nodeType, priorID string) string {
	s.t.Helper()
	selector := domTreeSel + " .selected" + attrSelector(nodeTypeAttr, nodeType)
	if priorID != "" {
		selector += ":not(" + attrSelector(nodeIDAttr, priorID) + ")"
	}
	node := s.waitVisible(
		s.page.Locator(selector),
		fmt.Sprintf("newly created %s node", nodeType),
	)
	id, err := node.GetAttribute(nodeIDAttr)
	if err != nil || id == "" {
		s.t.Fatalf("new %s node has no %s attribute: %v", nodeType, nodeIDAttr, err)
	}
	return id
}

// ActiveTemplateID returns the node id of the currently active top-level
// template.
func (s *Session) ActiveTemplateID() string {
	s.t.Helper()
	active := s.waitVisible(s.page.Locator(templateBarSel+" .active"), "active template tab")
	id, err := active.GetAttribute(nodeIDAttr)
	if err != nil || id == "" {
		s.t.Fatalf("active template tab has no %s attribute: %v", nodeIDAttr, err)
	}
	return id
}

// SwitchTopLevelTemplate makes the given node's subtree the active editing
// root. The editor only exposes interaction with the active template, so
// this must run before node-scoped operations target its descendants.
func (s *Session) SwitchTopLevelTemplate(nodeID string) {
	s.t.Helper()
	tab := s.waitVisible(
		s.page.Locator(templateBarSel+" "+attrSelector(nodeIDAttr, nodeID)),
		fmt.Sprintf("template tab %s", nodeID),
	)
	s.click(tab, fmt.Sprintf("template tab %s", nodeID))
	s.waitVisible(
		s.page.Locator(templateBarSel+" "+attrSelector(nodeIDAttr, nodeID)+".active"),
		fmt.Sprintf("active state on template %s", nodeID),
	)
}

// AddScriptToNodeEvent selects the node, switches to the event tab, and
// runs the add-script procedure there. Pure composition.
func (s *Session) AddScriptToNodeEvent(node playwright.Locator, eventName, scriptName string) {
	s.t.Helper()
	s.SelectNode(node)
	s.SwitchTab(TabEvent)
	s.AddScriptToEvent(eventName, scriptName)
}
