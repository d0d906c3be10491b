package protocol

import (
	"fmt"

	"github.com/vango-dev/reconcile/pkg/dom"
)

// PatchOp is the wire opcode of a surface mutation.
type PatchOp uint8

const (
	PatchCreateElement PatchOp = 0x01 // Value is the tag
	PatchCreateText    PatchOp = 0x02 // Value is the text
	PatchInsertNode    PatchOp = 0x03 // Target before Ref in Parent, Ref 0 appends
	PatchRemoveNode    PatchOp = 0x04
	PatchSetText       PatchOp = 0x05
	PatchSetAttr       PatchOp = 0x06
	PatchRemoveAttr    PatchOp = 0x07
)

func (op PatchOp) String() string {
	switch op {
	case PatchCreateElement:
		return "CreateElement"
	case PatchCreateText:
		return "CreateText"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	default:
		return fmt.Sprintf("PatchOp(%d)", uint8(op))
	}
}

// Patch is a mutation with nodes replaced by their document IDs.
// A zero ID means "no node".
type Patch struct {
	Op     PatchOp
	Target uint64
	Parent uint64
	Ref    uint64
	Key    string
	Value  string
}

var opFromMutation = map[dom.MutationOp]PatchOp{
	dom.OpCreateElement: PatchCreateElement,
	dom.OpCreateText:    PatchCreateText,
	dom.OpInsertBefore:  PatchInsertNode,
	dom.OpRemoveChild:   PatchRemoveNode,
	dom.OpSetText:       PatchSetText,
	dom.OpSetAttr:       PatchSetAttr,
	dom.OpRemoveAttr:    PatchRemoveAttr,
}

// FromMutation converts a recorded surface mutation.
func FromMutation(m dom.Mutation) Patch {
	return Patch{
		Op:     opFromMutation[m.Op],
		Target: nodeID(m.Target),
		Parent: nodeID(m.Parent),
		Ref:    nodeID(m.Ref),
		Key:    m.Key,
		Value:  m.Value,
	}
}

func nodeID(n *dom.Node) uint64 {
	if n == nil {
		return 0
	}
	return n.ID()
}

// PatchesFrame is one flush worth of patches. Seq increases per session.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a frame payload. Only the fields an opcode uses are
// written.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for _, p := range pf.Patches {
		e.WriteByte(byte(p.Op))
		e.WriteUvarint(p.Target)
		switch p.Op {
		case PatchCreateElement, PatchCreateText, PatchSetText:
			e.WriteString(p.Value)
		case PatchInsertNode:
			e.WriteUvarint(p.Parent)
			e.WriteUvarint(p.Ref)
		case PatchRemoveNode:
			e.WriteUvarint(p.Parent)
		case PatchSetAttr:
			e.WriteString(p.Key)
			e.WriteString(p.Value)
		case PatchRemoveAttr:
			e.WriteString(p.Key)
		}
	}
	return e.Bytes()
}

// DecodePatches is the inverse of EncodePatches.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if count > MaxPatches {
		return nil, ErrTooManyPatches
	}
	pf := &PatchesFrame{Seq: seq, Patches: make([]Patch, 0, count)}
	for i := uint64(0); i < count; i++ {
		p, err := decodePatch(d)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		pf.Patches = append(pf.Patches, p)
	}
	return pf, nil
}

func decodePatch(d *Decoder) (Patch, error) {
	var p Patch
	op, err := d.ReadByte()
	if err != nil {
		return p, err
	}
	p.Op = PatchOp(op)
	if p.Target, err = d.ReadUvarint(); err != nil {
		return p, err
	}
	switch p.Op {
	case PatchCreateElement, PatchCreateText, PatchSetText:
		p.Value, err = d.ReadString()
	case PatchInsertNode:
		if p.Parent, err = d.ReadUvarint(); err == nil {
			p.Ref, err = d.ReadUvarint()
		}
	case PatchRemoveNode:
		p.Parent, err = d.ReadUvarint()
	case PatchSetAttr:
		if p.Key, err = d.ReadString(); err == nil {
			p.Value, err = d.ReadString()
		}
	case PatchRemoveAttr:
		p.Key, err = d.ReadString()
	default:
		return p, fmt.Errorf("unknown opcode 0x%02x", op)
	}
	return p, err
}

// PatchFrame wraps an encoded PatchesFrame in a transport frame.
func PatchFrame(pf *PatchesFrame) ([]byte, error) {
	f := &Frame{Type: FramePatches, Payload: EncodePatches(pf)}
	return f.Encode()
}
