package vdom

import (
	"testing"

	"github.com/vango-dev/reconcile/pkg/dom"
)

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindList, "List"},
		{KindComponent, "Component"},
		{KindPortal, "Portal"},
		{KindSuspense, "Suspense"},
		{KindRef, "Ref"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateElementArguments(t *testing.T) {
	var nilNode *VNode
	node := Div(
		Class("card", "wide"),
		[]Attr{ID("main"), {}},
		WithKey(7),
		nil,
		nilNode,
		"hello",
		Span(),
		[]*VNode{P(), nil, B()},
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("Kind/Tag = %v/%q, want Element/div", node.Kind, node.Tag)
	}
	if node.Props["class"] != "card wide" {
		t.Errorf("class = %v, want %q", node.Props["class"], "card wide")
	}
	if node.Props["id"] != "main" {
		t.Errorf("id = %v, want main", node.Props["id"])
	}
	if node.Key != "7" {
		t.Errorf("Key = %q, want 7", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key must not be stored as an attribute")
	}
	if len(node.Children) != 4 {
		t.Fatalf("len(Children) = %d, want 4", len(node.Children))
	}
	if node.Children[0].Kind != KindText || node.Children[0].Text != "hello" {
		t.Errorf("first child = %+v, want text hello", node.Children[0])
	}
}

func TestListFlattensAndKeys(t *testing.T) {
	node := List(Text("a"), nil, []*VNode{Text("b"), nil}, "c", WithKey("grp"))

	if node.Kind != KindList {
		t.Fatalf("Kind = %v, want List", node.Kind)
	}
	if len(node.Children) != 3 {
		t.Errorf("len(Children) = %d, want 3", len(node.Children))
	}
	if node.Key != "grp" {
		t.Errorf("Key = %q, want grp", node.Key)
	}
}

func TestPortalKeyLooksThroughContent(t *testing.T) {
	doc := dom.NewDocument()
	host := doc.Detached("div")

	p := Portal(Keyed("inner", Span()), host)

	if p.Kind != KindPortal || p.Host != host || p.InnerSibling != nil {
		t.Fatalf("unexpected portal node %+v", p)
	}
	if got := p.NodeKey(); got != "inner" {
		t.Errorf("NodeKey() = %q, want inner", got)
	}

	empty := Portal(nil, host)
	if empty.Children[0].Kind != KindList {
		t.Error("nil portal content should become an empty list")
	}
}

func TestSuspenseAndRef(t *testing.T) {
	doc := dom.NewDocument()
	n := doc.CreateElement("canvas")

	ref := Ref(n)
	if ref.Kind != KindRef || ref.Node != n {
		t.Errorf("unexpected ref node %+v", ref)
	}

	s := SuspenseNode(Text("loading"), true, Div(), P())
	if s.Kind != KindSuspense || !s.Suspended || s.Fallback.Text != "loading" || len(s.Children) != 2 {
		t.Errorf("unexpected suspense node %+v", s)
	}
}

func TestConditionalHelpers(t *testing.T) {
	a, b := Text("a"), Text("b")

	if If(false, a) != nil || If(true, a) != a {
		t.Error("If returned the wrong node")
	}
	if IfElse(false, a, b) != b {
		t.Error("IfElse returned the wrong node")
	}
	called := false
	When(false, func() *VNode { called = true; return a })
	if called {
		t.Error("When evaluated its function for a false condition")
	}

	items := Range([]string{"x", "", "y"}, func(s string, i int) *VNode {
		if s == "" {
			return nil
		}
		return Keyed(s, Li(s))
	})
	if len(items) != 2 || items[1].Key != "y" {
		t.Errorf("Range produced %d items", len(items))
	}
	if Repeat(0, func(int) *VNode { return a }) != nil {
		t.Error("Repeat(0) should return nil")
	}
	if n := len(Repeat(3, func(int) *VNode { return Text("") })); n != 3 {
		t.Errorf("Repeat(3) produced %d nodes", n)
	}
	if n := Nothing(); n.Kind != KindList || len(n.Children) != 0 {
		t.Errorf("Nothing() = %v with %d children, want empty list", n.Kind, len(n.Children))
	}
}
