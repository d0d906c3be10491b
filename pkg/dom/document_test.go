package dom

import (
	"errors"
	"testing"
)

func TestInsertBeforeAppendsAndOrders(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	a := doc.CreateText("a")
	b := doc.CreateText("b")
	c := doc.CreateText("c")

	doc.InsertBefore(parent, c, nil)
	doc.InsertBefore(parent, a, c)
	doc.InsertBefore(parent, b, c)

	if got := InnerHTML(parent); got != "abc" {
		t.Errorf("InnerHTML = %q, want %q", got, "abc")
	}
	if parent.FirstChild() != a || parent.LastChild() != c {
		t.Error("first/last child links are wrong")
	}
	if doc.NextSibling(a) != b || doc.NextSibling(c) != nil {
		t.Error("sibling links are wrong")
	}
	if b.Index() != 1 {
		t.Errorf("Index = %d, want 1", b.Index())
	}
}

func TestInsertBeforeMovesAttachedNode(t *testing.T) {
	doc := NewDocument()
	left := doc.CreateElement("i")
	right := doc.CreateElement("o")
	text := doc.CreateText("x")

	doc.InsertBefore(left, text, nil)
	doc.InsertBefore(right, text, nil)

	if left.ChildCount() != 0 {
		t.Errorf("left ChildCount = %d, want 0", left.ChildCount())
	}
	if text.Parent() != right {
		t.Error("text should be attached to right")
	}
}

func TestInsertBeforeSelfIsStable(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	a := doc.CreateText("a")
	b := doc.CreateText("b")
	doc.InsertBefore(parent, a, nil)
	doc.InsertBefore(parent, b, nil)

	doc.InsertBefore(parent, a, a)

	if got := InnerHTML(parent); got != "ab" {
		t.Errorf("InnerHTML = %q, want %q", got, "ab")
	}
}

func TestRemoveChild(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("ul")
	items := []*Node{doc.CreateElement("li"), doc.CreateElement("li"), doc.CreateElement("li")}
	for _, it := range items {
		doc.InsertBefore(parent, it, nil)
	}

	doc.RemoveChild(parent, items[1])

	if parent.ChildCount() != 2 {
		t.Fatalf("ChildCount = %d, want 2", parent.ChildCount())
	}
	if items[0].NextSibling() != items[2] || items[2].PrevSibling() != items[0] {
		t.Error("siblings not relinked after removal")
	}
	if items[1].Parent() != nil {
		t.Error("removed node still has a parent")
	}
}

func TestInvalidMutationsPanic(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	other := doc.CreateElement("div")
	stray := doc.CreateText("stray")
	doc.InsertBefore(other, stray, nil)

	tests := []struct {
		name string
		fn   func()
		want error
	}{
		{"ref not a child", func() { doc.InsertBefore(parent, doc.CreateText("x"), stray) }, ErrNotChild},
		{"remove non-child", func() { doc.RemoveChild(parent, stray) }, ErrNotChild},
		{"cycle", func() { doc.InsertBefore(other, other, nil) }, ErrHierarchy},
		{"attr on text", func() { doc.SetAttr(stray, "a", "b") }, ErrNotElement},
		{"nil parent", func() { doc.InsertBefore(nil, stray, nil) }, ErrNilNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(*MutationError)
				if !ok {
					t.Fatalf("recovered %T, want *MutationError", r)
				}
				if !errors.Is(err, tt.want) {
					t.Errorf("error = %v, want %v", err, tt.want)
				}
			}()
			tt.fn()
		})
	}
}

func TestObserverAndStats(t *testing.T) {
	doc := NewDocument()
	var rec Recorder
	cancel := doc.Observe(rec.Record)

	div := doc.CreateElement("div")
	root := doc.Detached("body")
	doc.InsertBefore(root, div, nil)
	doc.SetAttr(div, "class", "card")
	doc.RemoveAttr(div, "class")
	text := doc.CreateText("hi")
	doc.InsertBefore(div, text, nil)
	doc.SetText(text, "bye")
	doc.RemoveChild(root, div)

	want := []MutationOp{
		OpCreateElement, OpInsertBefore, OpSetAttr, OpRemoveAttr,
		OpCreateText, OpInsertBefore, OpSetText, OpRemoveChild,
	}
	got := rec.Ops()
	if len(got) != len(want) {
		t.Fatalf("recorded %d mutations, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	stats := doc.Stats()
	if stats.Total() != 8 {
		t.Errorf("Total = %d, want 8", stats.Total())
	}
	if stats.Creates != 2 || stats.Inserts != 2 || stats.Removes != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	cancel()
	doc.CreateElement("p")
	if len(rec.Mutations) != 8 {
		t.Error("observer still receives mutations after cancel")
	}

	doc.ResetStats()
	if doc.Stats().Total() != 0 {
		t.Error("ResetStats did not zero counters")
	}
}

func TestOuterHTMLEscapes(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	doc.SetAttr(div, "title", `a "quoted" <b>`)
	doc.SetAttr(div, "class", "x")
	doc.InsertBefore(div, doc.CreateText("1 < 2 & 3"), nil)
	doc.InsertBefore(div, doc.CreateElement("br"), nil)

	want := `<div class="x" title="a &quot;quoted&quot; &lt;b&gt;">1 &lt; 2 &amp; 3<br></div>`
	if got := OuterHTML(div); got != want {
		t.Errorf("OuterHTML = %q, want %q", got, want)
	}
}
