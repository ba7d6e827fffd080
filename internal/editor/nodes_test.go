package editor

import (
	"testing"
)

// domTreeFixtureHTML reproduces the DOM tree contract with a deliberately
// awkward timing: the previously selected entry keeps its selected state for
// a moment after the insert, and the new node shares its node type. The
// helpers must wait out that window and report the new node's id, not the
// still-selected parent's.
const domTreeFixtureHTML = `<!DOCTYPE html>
<html>
<body>
<pwappy-dom-tree style="display:block">
  <button title="ページ追加">p</button>
  <button title="コンポーネント追加">c</button>
  <div class="node" data-node-id="node-1" data-node-type="ons-page" style="display:block">page</div>
  <div class="node" data-node-id="node-2" data-node-type="ons-button" style="display:block">button</div>
</pwappy-dom-tree>

<pwappy-component-dialog style="display:none">
  <button data-tag="ons-button">ons-button</button>
</pwappy-component-dialog>

<script>
(function () {
  var tree = document.querySelector('pwappy-dom-tree');
  var dialog = document.querySelector('pwappy-component-dialog');
  var nextID = 3;

  function selectNode(node) {
    tree.querySelectorAll('.selected').forEach(function (el) {
      el.classList.remove('selected');
    });
    node.classList.add('selected');
  }

  tree.addEventListener('click', function (ev) {
    var node = ev.target.closest('[data-node-id]');
    if (node) selectNode(node);
  });

  function insertNode(type) {
    var node = document.createElement('div');
    node.className = 'node';
    node.setAttribute('data-node-id', 'node-' + nextID++);
    node.setAttribute('data-node-type', type);
    node.style.display = 'block';
    node.textContent = type;
    tree.appendChild(node);
    // The selection stays on the old entry for a moment before moving.
    setTimeout(function () { selectNode(node); }, 150);
  }

  tree.querySelector('[title="ページ追加"]').addEventListener('click', function () {
    insertNode('ons-page');
  });

  tree.querySelector('[title="コンポーネント追加"]').addEventListener('click', function () {
    dialog.style.display = 'block';
  });

  dialog.querySelector('[data-tag]').addEventListener('click', function (ev) {
    dialog.style.display = 'none';
    insertNode(ev.target.getAttribute('data-tag'));
  });
})();
</script>
</body>
</html>`

func TestAddComponent_ReturnsNewNodeNotParent(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/": domTreeFixtureHTML})
	page := newFixturePage(t, server, "/")
	session := NewSessionWithTimeout(t, page, fixtureTimeoutMS)

	// Parent is an ons-button and stays selected until the editor moves
	// selection onto the inserted ons-button.
	_, id := session.AddComponent("ons-button", session.NodeByID("node-2"))
	if id == "node-2" {
		t.Fatal("AddComponent returned the still-selected parent instead of the new node")
	}
	if id != "node-3" {
		t.Fatalf("AddComponent returned node id %q, want %q", id, "node-3")
	}
}

func TestAddPage_IgnoresSelectedPage(t *testing.T) {
	server := newFixtureServer(t, map[string]string{"/": domTreeFixtureHTML})
	page := newFixturePage(t, server, "/")
	session := NewSessionWithTimeout(t, page, fixtureTimeoutMS)

	// An existing page is selected when the insert starts.
	session.SelectNode(session.NodeByID("node-1"))

	id := session.AddPage()
	if id == "node-1" {
		t.Fatal("AddPage returned the still-selected existing page instead of the new one")
	}
	if id != "node-3" {
		t.Fatalf("AddPage returned node id %q, want %q", id, "node-3")
	}
}
