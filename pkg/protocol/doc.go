// Package protocol encodes surface mutations for streaming to a remote
// client.
//
// Each reconcile flush produces one PatchesFrame. Nodes are named by their
// document ID, so a client that mirrors the document can replay patches in
// order:
//
//	frame := &protocol.PatchesFrame{Seq: seq}
//	for _, m := range recorder.Mutations {
//		frame.Patches = append(frame.Patches, protocol.FromMutation(m))
//	}
//	data, err := protocol.PatchFrame(frame)
//
// # Wire Format
//
// Frames carry a 4-byte header: one type byte and a 24-bit big-endian
// payload length. Payloads use protobuf-style unsigned varints and
// length-prefixed UTF-8 strings. A patch is its opcode byte, the target ID,
// then only the operands its opcode needs.
package protocol
