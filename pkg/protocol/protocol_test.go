package protocol

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/vango-dev/reconcile/pkg/dom"
)

func TestUvarint(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 32, ^uint64(0)}
	e := NewEncoder()
	for _, v := range values {
		e.WriteUvarint(v)
	}
	d := NewDecoder(e.Bytes())
	for _, want := range values {
		got, err := d.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint: %v", err)
		}
		if got != want {
			t.Errorf("ReadUvarint = %d, want %d", got, want)
		}
	}
	if d.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", d.Remaining())
	}
}

func TestUvarintOverflow(t *testing.T) {
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0xFF
	}
	if _, err := NewDecoder(buf).ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("err = %v, want ErrVarintOverflow", err)
	}
}

func TestReadStringTruncated(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(10)
	e.WriteByte('a')
	if _, err := NewDecoder(e.Bytes()).ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v, want ErrUnexpectedEOF", err)
	}

	e.Reset()
	e.WriteUvarint(MaxStringLen + 1)
	if _, err := NewDecoder(e.Bytes()).ReadString(); !errors.Is(err, ErrStringTooLong) {
		t.Errorf("err = %v, want ErrStringTooLong", err)
	}
}

func TestPatchesRoundTrip(t *testing.T) {
	in := &PatchesFrame{
		Seq: 42,
		Patches: []Patch{
			{Op: PatchCreateElement, Target: 3, Value: "div"},
			{Op: PatchCreateText, Target: 4, Value: "héllo"},
			{Op: PatchInsertNode, Target: 4, Parent: 3},
			{Op: PatchInsertNode, Target: 3, Parent: 1, Ref: 2},
			{Op: PatchSetAttr, Target: 3, Key: "class", Value: "a b"},
			{Op: PatchRemoveAttr, Target: 3, Key: "id"},
			{Op: PatchSetText, Target: 4, Value: ""},
			{Op: PatchRemoveNode, Target: 2, Parent: 1},
		},
	}

	out, err := DecodePatches(EncodePatches(in))
	if err != nil {
		t.Fatalf("DecodePatches: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestDecodePatchesErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"missing count", []byte{0x01}},
		{"truncated patch", []byte{0x01, 0x01, byte(PatchSetAttr), 0x05}},
		{"unknown opcode", []byte{0x01, 0x01, 0x7F, 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePatches(tt.data); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFromMutation(t *testing.T) {
	doc := dom.NewDocument()
	var rec dom.Recorder
	doc.Observe(rec.Record)

	host := doc.Detached("body")
	div := doc.CreateElement("div")
	doc.SetAttr(div, "id", "x")
	doc.InsertBefore(host, div, nil)
	doc.RemoveChild(host, div)

	want := []Patch{
		{Op: PatchCreateElement, Target: div.ID(), Value: "div"},
		{Op: PatchSetAttr, Target: div.ID(), Key: "id", Value: "x"},
		{Op: PatchInsertNode, Target: div.ID(), Parent: host.ID()},
		{Op: PatchRemoveNode, Target: div.ID(), Parent: host.ID()},
	}
	var got []Patch
	for _, m := range rec.Mutations {
		got = append(got, FromMutation(m))
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("patches = %+v\nwant %+v", got, want)
	}
}

func TestFrame(t *testing.T) {
	data, err := PatchFrame(&PatchesFrame{Seq: 1, Patches: []Patch{{Op: PatchRemoveNode, Target: 9, Parent: 1}}})
	if err != nil {
		t.Fatalf("PatchFrame: %v", err)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.Type != FramePatches {
		t.Errorf("Type = %v, want Patches", f.Type)
	}
	pf, err := DecodePatches(f.Payload)
	if err != nil || pf.Seq != 1 || len(pf.Patches) != 1 {
		t.Errorf("payload = %+v, %v", pf, err)
	}

	if _, err := DecodeFrame(data[:FrameHeaderSize+1]); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short frame err = %v", err)
	}
	if _, err := DecodeFrame([]byte{0xEE, 0, 0, 0}); !errors.Is(err, ErrInvalidFrameType) {
		t.Errorf("bad type err = %v", err)
	}
}

func TestTextFrame(t *testing.T) {
	data, err := TextFrame(FrameError, "E104: boom")
	if err != nil {
		t.Fatal(err)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatal(err)
	}
	s, err := DecodeText(f.Payload)
	if err != nil || s != "E104: boom" || f.Type != FrameError {
		t.Errorf("got %v %q %v", f.Type, s, err)
	}
}
