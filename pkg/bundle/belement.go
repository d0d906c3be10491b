package bundle

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// bElement is the bundle of an element node.
type bElement struct {
	tag      string
	key      vdom.Key
	node     *dom.Node
	props    vdom.Props
	children *bList
	ref      *NodeRef
}

type vElement struct {
	node *vdom.VNode
}

func (v vElement) Attach(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef) (*NodeRef, ReconcileTarget) {
	s := surfaceOf(parentScope)
	el := s.CreateElement(v.node.Tag)

	for _, key := range sortedKeys(v.node.Props) {
		if val, ok := attrValue(v.node.Props[key]); ok {
			s.SetAttr(el, key, val)
		}
	}

	b := &bElement{
		tag:   v.node.Tag,
		key:   v.node.Key,
		node:  el,
		props: v.node.Props,
		ref:   NodeRefOf(el),
	}
	_, b.children = attachList(parentScope, el, nil, v.node.Children)

	s.InsertBefore(parent, el, nextSibling.Get())
	return b.ref, b
}

func (v vElement) ReconcileNode(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, slot *ReconcileTarget) *NodeRef {
	if b, ok := (*slot).(*bElement); ok && b.tag == v.node.Tag && b.key == v.node.Key {
		b.reconcile(parentScope, v.node)
		return b.ref
	}
	return replace(v, parentScope, parent, nextSibling, slot)
}

func (b *bElement) reconcile(parentScope AnyScope, next *vdom.VNode) {
	s := surfaceOf(parentScope)
	diffAttrs(s, b.node, b.props, next.Props)
	b.props = next.Props
	b.children.reconcile(parentScope, b.node, nil, next.Children)
}

func (b *bElement) Detach(s dom.Surface, parent *dom.Node, parentToDetach bool) {
	b.children.Detach(s, b.node, true)
	if !parentToDetach {
		s.RemoveChild(parent, b.node)
	}
}

func (b *bElement) Shift(s dom.Surface, nextParent *dom.Node, nextSibling *NodeRef) {
	s.InsertBefore(nextParent, b.node, nextSibling.Get())
}

func (b *bElement) Key() vdom.Key {
	return b.key
}

// diffAttrs applies the attribute changes between prev and next to el.
func diffAttrs(s dom.Surface, el *dom.Node, prev, next vdom.Props) {
	// Removed or changed
	for _, key := range sortedKeys(prev) {
		if propsEqual(prev[key], next[key]) {
			continue
		}
		prevVal, had := attrValue(prev[key])
		nextVal, has := attrValue(next[key])
		switch {
		case had && !has:
			s.RemoveAttr(el, key)
		case has && (!had || prevVal != nextVal):
			s.SetAttr(el, key, nextVal)
		}
	}

	// Added
	for _, key := range sortedKeys(next) {
		if _, exists := prev[key]; exists {
			continue
		}
		if val, ok := attrValue(next[key]); ok {
			s.SetAttr(el, key, val)
		}
	}
}

// attrValue renders a prop as an attribute value. A nil or false value means
// the attribute is absent; true renders as the empty string.
func attrValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case bool:
		return "", val
	default:
		return propToString(v), true
	}
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// propToString converts a prop value to its attribute text.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(p vdom.Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
