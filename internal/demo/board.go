package demo

import (
	"slices"
	"strings"

	"github.com/vango-dev/reconcile/pkg/bundle"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// board is the root component of the live server. It keeps a keyed list of
// notes driven by text commands:
//
//	+name    append a note
//	-name    remove a note
//	!name    toggle a note
//	reverse  reverse the list
type board struct {
	notes  []string
	scopes map[string]*bundle.Scope[struct{}, string]
	note   *bundle.Definition[struct{}, string]
}

func newBoard() *board {
	b := &board{scopes: make(map[string]*bundle.Scope[struct{}, string])}
	b.note = newToggle("Note", func(label string, s *bundle.Scope[struct{}, string]) {
		b.scopes[label] = s
	})
	return b
}

func (b *board) Update(ctx *bundle.Context[string, struct{}], cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	switch {
	case cmd == "reverse":
		slices.Reverse(b.notes)
	case strings.HasPrefix(cmd, "+") && len(cmd) > 1:
		if slices.Contains(b.notes, cmd[1:]) {
			return false
		}
		b.notes = append(b.notes, cmd[1:])
	case strings.HasPrefix(cmd, "-"):
		i := slices.Index(b.notes, cmd[1:])
		if i < 0 {
			return false
		}
		b.notes = slices.Delete(b.notes, i, i+1)
		delete(b.scopes, cmd[1:])
	case strings.HasPrefix(cmd, "!"):
		if s, ok := b.scopes[cmd[1:]]; ok && !s.Destroyed() {
			s.Send(struct{}{})
		}
		return false
	default:
		ctx.Logger().Debug("unknown board command", "cmd", cmd)
		return false
	}
	return true
}

func (b *board) View(ctx *bundle.Context[string, struct{}]) (*vdom.VNode, error) {
	items := make([]any, 0, len(b.notes)+1)
	items = append(items, vdom.Class("board"))
	for _, n := range b.notes {
		items = append(items, vdom.Keyed(n, vdom.Li(b.note.Node(n))))
	}
	return vdom.Div(
		vdom.H1(vdom.Textf("%d notes", len(b.notes))),
		vdom.Ul(items...),
	), nil
}

// Board is the live server's root component.
var Board = bundle.Define("Board", func(ctx *bundle.Context[string, struct{}]) bundle.Component[string, struct{}] {
	return newBoard()
})

// LiveRoot returns a new root tree for a live session.
func LiveRoot() *vdom.VNode {
	return Board.Node(struct{}{})
}
