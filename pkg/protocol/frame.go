package protocol

import (
	"errors"
	"io"
)

// FrameHeaderSize is the size of the frame header in bytes.
const FrameHeaderSize = 4

// MaxPayloadSize is the largest payload a header can describe.
const MaxPayloadSize = 1<<24 - 1

// FrameType identifies the payload of a frame.
type FrameType uint8

const (
	FramePatches FrameType = 0x02 // Server to client mutations
	FrameMessage FrameType = 0x03 // Client to server component message
	FrameError   FrameType = 0x05 // Server to client error text
)

func (ft FrameType) String() string {
	switch ft {
	case FramePatches:
		return "Patches"
	case FrameMessage:
		return "Message"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is a typed payload. On the wire it is preceded by one type byte
// and a 3-byte big-endian payload length.
type Frame struct {
	Type    FrameType
	Payload []byte
}

// Encode returns the header followed by the payload.
func (f *Frame) Encode() ([]byte, error) {
	n := len(f.Payload)
	if n > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, FrameHeaderSize+n)
	buf[0] = byte(f.Type)
	buf[1] = byte(n >> 16)
	buf[2] = byte(n >> 8)
	buf[3] = byte(n)
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf, nil
}

// DecodeFrame parses one complete frame. The payload is copied.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	ft := FrameType(data[0])
	if ft.String() == "Unknown" {
		return nil, ErrInvalidFrameType
	}
	n := int(data[1])<<16 | int(data[2])<<8 | int(data[3])
	if len(data) < FrameHeaderSize+n {
		return nil, io.ErrUnexpectedEOF
	}
	payload := make([]byte, n)
	copy(payload, data[FrameHeaderSize:])
	return &Frame{Type: ft, Payload: payload}, nil
}

// TextFrame encodes a FrameMessage or FrameError carrying s.
func TextFrame(ft FrameType, s string) ([]byte, error) {
	e := NewEncoder()
	e.WriteString(s)
	f := &Frame{Type: ft, Payload: e.Bytes()}
	return f.Encode()
}

// DecodeText reads the string payload of a FrameMessage or FrameError.
func DecodeText(payload []byte) (string, error) {
	return NewDecoder(payload).ReadString()
}
