/*
NAME
  frame.go

DESCRIPTION
  frame.go provides the Frame type, a bounded byte buffer holding one
  raw CEC message: header byte, opcode byte and operand bytes.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package cec provides encoding and decoding of HDMI-CEC messages: the
// frame buffer, the header and opcode bytes, the typed operands, and a
// codec for the full CEC message set. The sibling device/hdmicec
// package carries frames to and from the native line driver.
package cec

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MaxFrameLen is the maximum length of a CEC frame on the wire: one
// header byte, one opcode byte and up to fourteen operand bytes.
const MaxFrameLen = 16

// Byte offsets of the fixed data blocks within a frame.
const (
	headerOffset   = 0
	opcodeOffset   = 1
	operandsOffset = 2
)

// Frame is one raw CEC message. The zero value is an empty frame ready
// for use. A Frame owns its bytes; Bytes borrows them without copy.
type Frame struct {
	buf []byte
}

// NewFrame returns a frame holding a copy of b.
func NewFrame(b []byte) (*Frame, error) {
	if len(b) > MaxFrameLen {
		return nil, errors.Wrapf(ErrInvalidParam, "frame of %d bytes exceeds maximum %d", len(b), MaxFrameLen)
	}
	f := &Frame{buf: make([]byte, len(b), MaxFrameLen)}
	copy(f.buf, b)
	return f, nil
}

// Append appends a single byte to the frame.
func (f *Frame) Append(b byte) error {
	if len(f.buf) >= MaxFrameLen {
		return errors.Wrapf(ErrInvalidParam, "append would exceed maximum frame length %d", MaxFrameLen)
	}
	f.buf = append(f.buf, b)
	return nil
}

// AppendBytes appends b to the frame.
func (f *Frame) AppendBytes(b []byte) error {
	if len(f.buf)+len(b) > MaxFrameLen {
		return errors.Wrapf(ErrInvalidParam, "append of %d bytes would exceed maximum frame length %d", len(b), MaxFrameLen)
	}
	f.buf = append(f.buf, b...)
	return nil
}

// At returns the byte at index i.
func (f *Frame) At(i int) (byte, error) {
	if i < 0 || i >= len(f.buf) {
		return 0, errors.Wrapf(ErrInvalidParam, "index %d out of range for frame of %d bytes", i, len(f.buf))
	}
	return f.buf[i], nil
}

// Len returns the number of bytes in the frame.
func (f *Frame) Len() int {
	return len(f.buf)
}

// Bytes returns the frame's underlying bytes without copying. The
// returned slice is valid until the next Append.
func (f *Frame) Bytes() []byte {
	return f.buf
}

// Reset empties the frame, retaining its storage.
func (f *Frame) Reset() {
	f.buf = f.buf[:0]
}

// Equal reports whether two frames hold the same bytes.
func (f *Frame) Equal(g *Frame) bool {
	return bytes.Equal(f.buf, g.buf)
}

// String returns the frame as space-separated hex octets, e.g.
// "0F 82 10 00".
func (f *Frame) String() string {
	var sb strings.Builder
	for i, b := range f.buf {
		if i != 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
