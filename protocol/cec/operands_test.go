/*
NAME
  operands_test.go

DESCRIPTION
  operands_test.go tests the operand codec: extension-bit parsing,
  packed bit-fields and enumeration validation.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

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

// TestParseExt checks that extension-bit parsing consumes bytes up to
// and including the first byte with bit 7 clear, capped at the
// operand maximum.
func TestParseExt(t *testing.T) {
	tests := []struct {
		in       []byte
		want     []byte
		consumed int
	}{
		{[]byte{0x4A}, []byte{0x4A}, 1},
		{[]byte{0x4A, 0x22}, []byte{0x4A}, 1},
		{[]byte{0x8A, 0x22}, []byte{0x8A, 0x22}, 2},
		{[]byte{0x8A, 0x92, 0x22, 0x55}, []byte{0x8A, 0x92, 0x22}, 3},
		{[]byte{0x8A, 0x92, 0xA2, 0x15}, []byte{0x8A, 0x92, 0xA2, 0x15}, 4},
		// Cap reached with the extension bit still set.
		{[]byte{0x8A, 0x92, 0xA2, 0x95, 0x15}, []byte{0x8A, 0x92, 0xA2, 0x95}, 4},
	}
	for _, test := range tests {
		got, n, err := parseExt(test.in, maxExtLen, "test")
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", test.in, err)
		}
		if !bytes.Equal(got, test.want) {
			t.Errorf("unexpected bytes for %v. Got: %v\n Want: %v\n", test.in, got, test.want)
		}
		if n != test.consumed {
			t.Errorf("unexpected consumed count for %v. Got: %v\n Want: %v\n", test.in, n, test.consumed)
		}
	}

	if _, _, err := parseExt(nil, maxExtLen, "test"); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam for empty input, got: %v", err)
	}
}

// TestValidExt checks the extension-bit invariant: bit 7 set on every
// byte but the last, clear on the last.
func TestValidExt(t *testing.T) {
	tests := []struct {
		in   []byte
		want bool
	}{
		{[]byte{0x4A}, true},
		{[]byte{0x8A, 0x22}, true},
		{[]byte{0x8A, 0x92, 0xA2, 0x15}, true},
		{nil, false},
		{[]byte{0x8A}, false},                         // Last byte has bit 7 set.
		{[]byte{0x4A, 0x22}, false},                   // Early byte has bit 7 clear.
		{[]byte{0x8A, 0x92, 0xA2, 0x95, 0x15}, false}, // Over-long.
	}
	for _, test := range tests {
		if got := validExt(test.in, maxExtLen); got != test.want {
			t.Errorf("unexpected validity for %v. Got: %v\n Want: %v\n", test.in, got, test.want)
		}
	}
}

// TestRcProfile checks the TV/source discriminator and the menu
// handling bits.
func TestRcProfile(t *testing.T) {
	tv := RcProfile{0x0E}
	if !tv.IsTV() || tv.IsSource() {
		t.Error("profile 0x0E should be a TV profile")
	}

	src := RcProfile{0x55}
	if !src.IsSource() || src.IsTV() {
		t.Error("profile 0x55 should be a source profile")
	}
	if !src.RootMenu() || src.SetupMenu() || !src.ContentsMenu() || src.MediaTopMenu() || !src.MediaContextMenu() {
		t.Errorf("unexpected menu bits for profile %#x: root=%v setup=%v contents=%v top=%v context=%v",
			src[0], src.RootMenu(), src.SetupMenu(), src.ContentsMenu(), src.MediaTopMenu(), src.MediaContextMenu())
	}
}

// TestDeviceFeatures checks the feature bits of the first byte.
func TestDeviceFeatures(t *testing.T) {
	f := DeviceFeatures{0x46} // Record TV screen + ARC Rx + sink ARC Tx.
	if !f.RecordTVScreen() {
		t.Error("expected record TV screen support")
	}
	if !f.ARCRx() {
		t.Error("expected ARC Rx support")
	}
	if !f.SinkARCTx() {
		t.Error("expected sink ARC Tx support")
	}
	if f.SetOSDString() || f.ControlledByDeck() || f.SetAudioRate() {
		t.Error("unexpected feature bits set")
	}
}

// TestShortAudioDescriptor checks format code extraction and the
// Atmos derivation: extended format code with non-zero low bits of
// byte 2.
func TestShortAudioDescriptor(t *testing.T) {
	tests := []struct {
		d      ShortAudioDescriptor
		code   uint8
		atmos  bool
	}{
		{ShortAudioDescriptor{0x0F, 0x7F, 0x07}, 1, false},  // LPCM: below extended range.
		{ShortAudioDescriptor{0x57, 0x00, 0x01}, 10, true},  // E-AC3 with Atmos bits.
		{ShortAudioDescriptor{0x57, 0x00, 0x00}, 10, false}, // E-AC3 without Atmos bits.
		{ShortAudioDescriptor{0x4F, 0x00, 0x03}, 9, true},   // One bit audio, Atmos bits.
	}
	for _, test := range tests {
		if got := test.d.FormatCode(); got != test.code {
			t.Errorf("unexpected format code for %v. Got: %v\n Want: %v\n", test.d, got, test.code)
		}
		if got := test.d.Atmos(); got != test.atmos {
			t.Errorf("unexpected Atmos bit for %v. Got: %v\n Want: %v\n", test.d, got, test.atmos)
		}
	}

	d := NewShortAudioDescriptor(0x030257)
	if d != (ShortAudioDescriptor{0x57, 0x02, 0x03}) {
		t.Errorf("unexpected descriptor bytes: %v", d)
	}
	if d.Descriptor() != 0x030257 {
		t.Errorf("unexpected packed value. Got: %#x\n Want: 0x030257\n", d.Descriptor())
	}
}

// TestRequestAudioFormat checks the format ID and code fields.
func TestRequestAudioFormat(t *testing.T) {
	r := NewRequestAudioFormat(1, AudioFormatAC3)
	if r != 0x42 {
		t.Errorf("unexpected packed byte. Got: %#x\n Want: 0x42\n", uint8(r))
	}
	if r.FormatID() != 1 {
		t.Errorf("unexpected format ID. Got: %v\n Want: 1\n", r.FormatID())
	}
	if r.FormatCode() != AudioFormatAC3 {
		t.Errorf("unexpected format code. Got: %v\n Want: %v\n", r.FormatCode(), AudioFormatAC3)
	}
}

// TestAudioStatus checks the mute bit and volume field.
func TestAudioStatus(t *testing.T) {
	s := AudioStatus(0xB2)
	if !s.Mute() {
		t.Error("expected mute on")
	}
	if s.Volume() != 0x32 {
		t.Errorf("unexpected volume. Got: %v\n Want: %v\n", s.Volume(), 0x32)
	}

	s = AudioStatus(0x14)
	if s.Mute() {
		t.Error("expected mute off")
	}
	if s.Volume() != 0x14 {
		t.Errorf("unexpected volume. Got: %v\n Want: %v\n", s.Volume(), 0x14)
	}
}

// TestAllDeviceTypes checks the CEC 2.0 device-type bitfield.
func TestAllDeviceTypes(t *testing.T) {
	types := AllDeviceTypes(0x88) // TV + audio system.
	if !types.IsTV() || !types.IsAudioSystem() {
		t.Error("expected TV and audio system bits")
	}
	if types.IsRecordingDevice() || types.IsTuner() || types.IsPlaybackDevice() || types.IsCECSwitch() {
		t.Error("unexpected device type bits")
	}

	got := types.Types()
	want := []string{"TV", "Audio System"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("unexpected type names. Got: %v\n Want: %v\n", got, want)
	}
}

// TestLatencyInfo checks that the audio output delay is carried only
// when both low flag bits are set.
func TestLatencyInfo(t *testing.T) {
	l := NewLatencyInfo(0x02, 0x03, 0x28)
	if len(l) != 3 {
		t.Fatalf("unexpected length. Got: %v\n Want: 3\n", len(l))
	}
	if l.AudioOutputDelay() != 0x28 {
		t.Errorf("unexpected delay. Got: %#x\n Want: 0x28\n", l.AudioOutputDelay())
	}

	l = NewLatencyInfo(0x02, 0x00, 0x28)
	if len(l) != 2 {
		t.Fatalf("unexpected length. Got: %v\n Want: 2\n", len(l))
	}
	if l.AudioOutputDelay() != 0xFF {
		t.Errorf("expected absent delay to read 0xFF, got: %#x", l.AudioOutputDelay())
	}
	if l.VideoLatency() != 0x02 || l.Flags() != 0x00 {
		t.Errorf("unexpected fields: video=%#x flags=%#x", l.VideoLatency(), l.Flags())
	}

	// A one-byte structure from a non-conforming device.
	one := LatencyInfo{0x01}
	if one.Flags() != 0 {
		t.Errorf("expected zero flags for one-byte structure, got: %#x", one.Flags())
	}
	if one.AudioOutputDelay() != 0xFF {
		t.Errorf("expected absent delay to read 0xFF, got: %#x", one.AudioOutputDelay())
	}
}

// TestEnumValidation checks the validation predicates of the
// enumerated operands.
func TestEnumValidation(t *testing.T) {
	if !AbortUnrecognizedOpcode.Valid() {
		t.Error("abort reason 0 (unrecognized opcode) should be valid")
	}
	if AbortReason(6).Valid() {
		t.Error("abort reason 6 should be invalid")
	}
	if !Version1_3a.Valid() || !Version2_0.Valid() {
		t.Error("defined versions should be valid")
	}
	if Version(3).Valid() || Version(7).Valid() {
		t.Error("reserved versions should be invalid")
	}
	if !PowerTransitionOnToStandby.Valid() {
		t.Error("power transition states should be valid")
	}
	if PowerStatusNotKnown.Valid() {
		t.Error("local-only power states should be invalid on the wire")
	}
	if !DeviceVideoProcessor.Valid() || DeviceType(8).Valid() {
		t.Error("unexpected device type validity")
	}
	if !SystemAudioOn.Valid() || SystemAudioStatus(2).Valid() {
		t.Error("unexpected system audio status validity")
	}
}

// TestOperandRendering checks a sample of the human renderings.
func TestOperandRendering(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{AbortUnrecognizedOpcode.String(), "Unrecognized opcode"},
		{AbortReason(9).String(), "Unknown"},
		{DeviceAudioSystem.String(), "Audio System"},
		{Version1_3a.String(), "Version 1.3a"},
		{PowerStandby.String(), "Standby"},
		{UIVolumeUp.String(), "Volume Up"},
		{UICommand(0x7F).String(), "UI Command 0x7F"},
		{AddrPlaybackDevice2.String(), "Playback Device 2"},
		{SystemAudioOn.String(), "On"},
		{ShortAudioDescriptor{0x57, 0, 0}.String(), "E-AC3"},
		{OpActiveSource.String(), "Active Source"},
		{Opcode(0xFB).String(), "Unknown (0xFB)"},
	}
	for _, test := range tests {
		if test.got != test.want {
			t.Errorf("unexpected rendering. Got: %v\n Want: %v\n", test.got, test.want)
		}
	}
}
