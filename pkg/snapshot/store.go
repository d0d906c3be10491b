package snapshot

import (
	"context"
	"errors"
	"strings"

	"github.com/vango-dev/reconcile/pkg/dom"
)

// ErrInvalidName is returned for empty names and names that contain a path
// separator or "..".
var ErrInvalidName = errors.New("snapshot: invalid name")

// Store persists rendered HTML. Put returns where the snapshot was written
// (a file path or an object URI).
type Store interface {
	Put(ctx context.Context, name string, html []byte) (string, error)
}

// Capture returns the outer HTML of n.
func Capture(n *dom.Node) []byte {
	return []byte(dom.OuterHTML(n))
}

// CaptureChildren returns the inner HTML of n, which is the markup of a
// tree mounted under n.
func CaptureChildren(n *dom.Node) []byte {
	return []byte(dom.InnerHTML(n))
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

func fileName(name string) string {
	if strings.HasSuffix(name, ".html") {
		return name
	}
	return name + ".html"
}
