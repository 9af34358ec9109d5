/*
NAME
  address_test.go

DESCRIPTION
  address_test.go tests logical and physical address packing, parsing
  and classification.

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
	"errors"
	"testing"
)

// TestPhysicalAddressPacking checks nibble packing into the two wire
// bytes and nibble extraction.
func TestPhysicalAddressPacking(t *testing.T) {
	pa := NewPhysicalAddress(0x1, 0x2, 0x3, 0x4)
	if pa[0] != 0x12 || pa[1] != 0x34 {
		t.Errorf("unexpected packed bytes. Got: [%#x %#x]\n Want: [0x12 0x34]\n", pa[0], pa[1])
	}

	for i, want := range []uint8{1, 2, 3, 4} {
		got, err := pa.Nibble(i)
		if err != nil {
			t.Fatalf("unexpected error for nibble %d: %v", i, err)
		}
		if got != want {
			t.Errorf("unexpected nibble %d. Got: %v\n Want: %v\n", i, got, want)
		}
	}

	if _, err := pa.Nibble(4); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam for nibble 4, got: %v", err)
	}

	// Values wider than a nibble are masked.
	pa = NewPhysicalAddress(0xFF, 0x10, 0x2A, 0x3B)
	if pa[0] != 0xF0 || pa[1] != 0xAB {
		t.Errorf("unexpected masked bytes. Got: [%#x %#x]\n Want: [0xf0 0xab]\n", pa[0], pa[1])
	}
}

// TestParsePhysicalAddress checks the dotted-form parser against the
// packed constructor.
func TestParsePhysicalAddress(t *testing.T) {
	got, err := ParsePhysicalAddress("1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != NewPhysicalAddress(1, 2, 3, 4) {
		t.Errorf("unexpected address. Got: %v\n Want: %v\n", got, NewPhysicalAddress(1, 2, 3, 4))
	}

	got, err = ParsePhysicalAddress("a.b.c.f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != NewPhysicalAddress(0xA, 0xB, 0xC, 0xF) {
		t.Errorf("unexpected address. Got: %v\n Want: %v\n", got, NewPhysicalAddress(0xA, 0xB, 0xC, 0xF))
	}

	for _, s := range []string{"", "1.2.3", "1.2.3.4.5", "10.0.0.0", "1,2,3,4", "g.0.0.0"} {
		if _, err := ParsePhysicalAddress(s); !errors.Is(err, ErrInvalidParam) {
			t.Errorf("expected ErrInvalidParam for %q, got: %v", s, err)
		}
	}
}

// TestPhysicalAddressString checks the canonical dotted rendering.
func TestPhysicalAddressString(t *testing.T) {
	tests := []struct {
		pa   PhysicalAddress
		want string
	}{
		{NewPhysicalAddress(1, 0, 0, 0), "1.0.0.0"},
		{NewPhysicalAddress(0xA, 0xB, 0xC, 0xD), "a.b.c.d"},
		{UnknownPhysicalAddress, "f.f.f.f"},
	}
	for _, test := range tests {
		if got := test.pa.String(); got != test.want {
			t.Errorf("unexpected rendering. Got: %v\n Want: %v\n", got, test.want)
		}
	}
}

// TestLogicalAddressType checks the fixed mapping from logical
// address to device-type class.
func TestLogicalAddressType(t *testing.T) {
	tests := []struct {
		la   LogicalAddress
		want DeviceType
	}{
		{AddrTV, DeviceTV},
		{AddrRecordingDevice1, DeviceRecording},
		{AddrRecordingDevice2, DeviceRecording},
		{AddrRecordingDevice3, DeviceRecording},
		{AddrTuner1, DeviceTuner},
		{AddrTuner2, DeviceTuner},
		{AddrTuner3, DeviceTuner},
		{AddrTuner4, DeviceTuner},
		{AddrPlaybackDevice1, DevicePlayback},
		{AddrPlaybackDevice2, DevicePlayback},
		{AddrPlaybackDevice3, DevicePlayback},
		{AddrAudioSystem, DeviceAudioSystem},
		{AddrReserved12, DeviceReserved},
		{AddrReserved13, DeviceReserved},
		{AddrSpecificUse, DeviceReserved},
		{AddrUnregistered, DeviceReserved},
	}
	for _, test := range tests {
		got, err := test.la.Type()
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", test.la, err)
		}
		if got != test.want {
			t.Errorf("unexpected type for %v. Got: %v\n Want: %v\n", test.la, got, test.want)
		}
	}

	if _, err := LogicalAddress(16).Type(); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam for out-of-range address, got: %v", err)
	}
}

// TestHeader checks header packing and parsing.
func TestHeader(t *testing.T) {
	h := Header{From: AddrPlaybackDevice1, To: AddrTV}
	if h.byte() != 0x40 {
		t.Errorf("unexpected header byte. Got: %#x\n Want: 0x40\n", h.byte())
	}

	f, _ := NewFrame([]byte{0x5F})
	got, err := parseHeader(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Header{From: AddrAudioSystem, To: AddrBroadcast}
	if got != want {
		t.Errorf("unexpected header. Got: %+v\n Want: %+v\n", got, want)
	}
	if !got.Broadcast() {
		t.Error("expected broadcast header")
	}

	var empty Frame
	if _, err := parseHeader(&empty); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam for empty frame, got: %v", err)
	}
}
