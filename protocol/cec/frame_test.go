/*
NAME
  frame_test.go

DESCRIPTION
  frame_test.go tests the Frame buffer: bounded append, bounds-checked
  access and value equality.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package cec

import (
	"bytes"
	"errors"
	"testing"
)

// TestFrameCapacity checks that a frame accepts exactly MaxFrameLen
// bytes and that further appends fail with ErrInvalidParam.
func TestFrameCapacity(t *testing.T) {
	var f Frame
	for i := 0; i < MaxFrameLen; i++ {
		if err := f.Append(byte(i)); err != nil {
			t.Fatalf("unexpected error appending byte %d: %v", i, err)
		}
	}
	if f.Len() != MaxFrameLen {
		t.Errorf("unexpected frame length. Got: %v\n Want: %v\n", f.Len(), MaxFrameLen)
	}

	err := f.Append(0xAA)
	if !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam appending past capacity, got: %v", err)
	}

	err = f.AppendBytes([]byte{0x01})
	if !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam appending slice past capacity, got: %v", err)
	}
}

// TestFrameAppendBytes checks that a multi-byte append is refused
// when it would push the frame past capacity, leaving the frame
// unchanged.
func TestFrameAppendBytes(t *testing.T) {
	var f Frame
	if err := f.AppendBytes(make([]byte, MaxFrameLen-1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.AppendBytes([]byte{0x01, 0x02}); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got: %v", err)
	}
	if f.Len() != MaxFrameLen-1 {
		t.Errorf("unexpected frame length after refused append. Got: %v\n Want: %v\n", f.Len(), MaxFrameLen-1)
	}
}

// TestFrameAt checks bounds-checked access.
func TestFrameAt(t *testing.T) {
	f, err := NewFrame([]byte{0x0F, 0x82})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := f.At(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != 0x82 {
		t.Errorf("unexpected byte. Got: %#x\n Want: %#x\n", b, 0x82)
	}

	for _, i := range []int{-1, 2, 100} {
		if _, err := f.At(i); !errors.Is(err, ErrInvalidParam) {
			t.Errorf("expected ErrInvalidParam for index %d, got: %v", i, err)
		}
	}
}

// TestNewFrameTooLong checks that an over-long frame is refused.
func TestNewFrameTooLong(t *testing.T) {
	_, err := NewFrame(make([]byte, MaxFrameLen+1))
	if !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got: %v", err)
	}
}

// TestFrameEqualAndReset checks value equality and reset behaviour.
func TestFrameEqualAndReset(t *testing.T) {
	a, _ := NewFrame([]byte{0x50, 0x00, 0x8C, 0x00})
	b, _ := NewFrame([]byte{0x50, 0x00, 0x8C, 0x00})
	if !a.Equal(b) {
		t.Error("frames with identical bytes not equal")
	}

	b.Reset()
	if a.Equal(b) {
		t.Error("frames equal after reset")
	}
	if b.Len() != 0 {
		t.Errorf("unexpected length after reset. Got: %v\n Want: 0\n", b.Len())
	}
	if !bytes.Equal(a.Bytes(), []byte{0x50, 0x00, 0x8C, 0x00}) {
		t.Errorf("unexpected bytes: %v", a.Bytes())
	}
}

// TestFrameString checks the hex rendering used in logs.
func TestFrameString(t *testing.T) {
	f, _ := NewFrame([]byte{0x0F, 0x82, 0x10, 0x00})
	const want = "0F 82 10 00"
	if f.String() != want {
		t.Errorf("unexpected rendering. Got: %v\n Want: %v\n", f.String(), want)
	}
}
