// Package dom provides the external rendering surface the reconciler mutates.
//
// The reconciler never computes geometry or paint. It only needs a small
// tree-mutation primitive, captured by the Surface interface:
//
//	InsertBefore(parent, node, ref)
//	RemoveChild(parent, node)
//	NextSibling(node)
//
// plus node creation and attribute/text updates.
//
// # In-Memory Document
//
// Document is a complete Surface backed by plain Go structs. It is what
// the tests, the CLI demos and the live server mount applications into.
// Every mutation is reported to observers as a Mutation, which lets callers
// count surface calls or stream them to a remote client:
//
//	doc := dom.NewDocument()
//	body := doc.CreateElement("body")
//	doc.Observe(func(m dom.Mutation) {
//	    log.Println(m.Op, m.Target.ID())
//	})
//
// # Serialization
//
// OuterHTML and InnerHTML serialize a subtree with HTML escaping, which is
// how tests assert on the surface layout:
//
//	dom.OuterHTML(body) // "<body><div>hello</div></body>"
package dom
