package bundle

import (
	"testing"

	"github.com/vango-dev/reconcile/pkg/dom"
)

func TestNodeRef(t *testing.T) {
	doc := dom.NewDocument()
	a := doc.CreateElement("a")
	b := doc.CreateElement("b")

	var nilRef *NodeRef
	if nilRef.Get() != nil {
		t.Error("nil NodeRef should read as nil")
	}

	r := NodeRefOf(a)
	if r.Get() != a {
		t.Error("NodeRefOf should hold the node")
	}

	fwd := NewNodeRef()
	fwd.Link(r)
	if fwd.Get() != a {
		t.Error("linked ref should forward reads")
	}
	r.Set(b)
	if fwd.Get() != b {
		t.Error("linked ref should see later writes")
	}

	// A cycle is refused.
	r.Link(fwd)
	if r.Get() != b {
		t.Error("cyclic link should be ignored")
	}

	fwd.Set(a)
	if fwd.Get() != a {
		t.Error("Set should drop the link")
	}
}
