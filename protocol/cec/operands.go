/*
NAME
  operands.go

DESCRIPTION
  operands.go provides the typed operands of the CEC message set and
  their parse, serialize and rendering rules: fixed-width enumerations,
  raw byte strings, packed bit-fields, and the variable-length
  extension-bit operands of CEC 2.0.

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
	"fmt"

	"github.com/pkg/errors"
)

// Maximum encoded lengths of the bounded operands.
const (
	maxOSDNameLen   = 14
	maxOSDStringLen = 13
	languageLen     = 3
	vendorIDLen     = 3
	sadLen          = 3 // One Short Audio Descriptor triple.
	maxExtLen       = 4 // RcProfile and DeviceFeatures.
	maxLatencyLen   = 3
	maxDescriptors  = 4 // Repeat cap for audio descriptor messages.
)

// parseByte reads the single byte of a fixed one-byte operand.
func parseByte(b []byte, what string) (byte, error) {
	if len(b) == 0 {
		return 0, errors.Wrapf(ErrInvalidParam, "no bytes for %s operand", what)
	}
	return b[0], nil
}

// parseExt reads a variable-length extension-bit operand: bytes are
// consumed until one with bit 7 clear is seen, or max bytes have been
// taken, or the input runs out. It returns the operand bytes and the
// count consumed so the next operand starts at the correct offset.
func parseExt(b []byte, max int, what string) ([]byte, int, error) {
	if len(b) == 0 {
		return nil, 0, errors.Wrapf(ErrInvalidParam, "no bytes for %s operand", what)
	}
	n := 0
	for n < len(b) && n < max {
		n++
		if b[n-1]&0x80 == 0 {
			break
		}
	}
	out := make([]byte, n)
	copy(out, b[:n])
	return out, n, nil
}

// validExt reports whether b satisfies the extension-bit invariant:
// bit 7 set on every byte but the last, clear on the last, total
// length within max.
func validExt(b []byte, max int) bool {
	if len(b) == 0 || len(b) > max {
		return false
	}
	for i, v := range b {
		last := i == len(b)-1
		if (v&0x80 != 0) == last {
			return false
		}
	}
	return true
}

// AbortReason is the coded reason carried by Feature Abort.
type AbortReason uint8

// Feature Abort reasons.
const (
	AbortUnrecognizedOpcode AbortReason = iota
	AbortNotInCorrectMode
	AbortCannotProvideSource
	AbortInvalidOperand
	AbortRefused
	AbortUnableToDetermine
)

// Valid reports whether the reason is within the defined range.
// Reason 0, unrecognized opcode, is valid.
func (r AbortReason) Valid() bool {
	return r <= AbortUnableToDetermine
}

func (r AbortReason) String() string {
	names := [...]string{
		"Unrecognized opcode",
		"Not in correct mode to respond",
		"Cannot provide source",
		"Invalid operand",
		"Refused",
		"Unable to determine",
	}
	if !r.Valid() {
		return "Unknown"
	}
	return names[r]
}

// DeviceType is the CEC device-type class.
type DeviceType uint8

// Device types.
const (
	DeviceTV DeviceType = iota
	DeviceRecording
	DeviceReserved
	DeviceTuner
	DevicePlayback
	DeviceAudioSystem
	DevicePureCECSwitch
	DeviceVideoProcessor
)

// Valid reports whether the device type is within the defined range.
func (t DeviceType) Valid() bool {
	return t <= DeviceVideoProcessor
}

func (t DeviceType) String() string {
	names := [...]string{
		"TV",
		"Recording Device",
		"Reserved",
		"Tuner",
		"Playback Device",
		"Audio System",
		"Pure CEC Switch",
		"Video Processor",
	}
	if !t.Valid() {
		return "Unknown"
	}
	return names[t]
}

// Version is the CEC protocol version operand.
type Version uint8

// Defined CEC versions. Values below Version1_3a are reserved.
const (
	Version1_3a Version = 4
	Version1_4  Version = 5
	Version2_0  Version = 6
)

// Valid reports whether the version is one of the defined versions.
func (v Version) Valid() bool {
	return v >= Version1_3a && v <= Version2_0
}

func (v Version) String() string {
	switch v {
	case Version1_3a:
		return "Version 1.3a"
	case Version1_4:
		return "Version 1.4"
	case Version2_0:
		return "Version 2.0"
	}
	return "Unknown"
}

// PowerStatus is the power state reported by Report Power Status.
type PowerStatus uint8

// Power states.
const (
	PowerOn PowerStatus = iota
	PowerStandby
	PowerTransitionStandbyToOn
	PowerTransitionOnToStandby
	PowerStatusNotKnown
	PowerStatusFeatureAbort
)

// Valid reports whether the status is one a device may report on the
// wire; the not-known and feature-abort values are local only.
func (s PowerStatus) Valid() bool {
	return s <= PowerTransitionOnToStandby
}

func (s PowerStatus) String() string {
	names := [...]string{
		"On",
		"Standby",
		"In transition Standby to On",
		"In transition On to Standby",
		"Not Known",
		"Feature Abort",
	}
	if !s.Valid() {
		return "Unknown"
	}
	return names[s]
}

// VendorID is the 3-byte IEEE OUI of a device vendor.
type VendorID [3]byte

func (v VendorID) String() string {
	return fmt.Sprintf("%02x%02x%02x", v[0], v[1], v[2])
}

// parseVendorID reads a vendor ID from the first three bytes of b.
func parseVendorID(b []byte) (VendorID, error) {
	if len(b) < vendorIDLen {
		return VendorID{}, errors.Wrapf(ErrInvalidParam, "vendor ID needs %d bytes, have %d", vendorIDLen, len(b))
	}
	return VendorID{b[0], b[1], b[2]}, nil
}

// OSDName is a device's on-screen name: up to 14 raw bytes with no
// terminator. It is the only operand of its message, so parsing
// consumes the remaining frame bytes up to the maximum.
type OSDName string

// Valid reports whether the name fits the operand.
func (n OSDName) Valid() bool {
	return len(n) > 0 && len(n) <= maxOSDNameLen
}

func parseOSDName(b []byte) (OSDName, error) {
	if len(b) == 0 {
		return "", errors.Wrap(ErrInvalidParam, "no bytes for OSD name operand")
	}
	if len(b) > maxOSDNameLen {
		b = b[:maxOSDNameLen]
	}
	return OSDName(b), nil
}

// OSDString is the text of Set OSD String: up to 13 raw bytes.
type OSDString string

// Valid reports whether the string fits the operand.
func (s OSDString) Valid() bool {
	return len(s) > 0 && len(s) <= maxOSDStringLen
}

func parseOSDString(b []byte) (OSDString, error) {
	if len(b) == 0 {
		return "", errors.Wrap(ErrInvalidParam, "no bytes for OSD string operand")
	}
	if len(b) > maxOSDStringLen {
		b = b[:maxOSDStringLen]
	}
	return OSDString(b), nil
}

// Language is a 3-letter ISO 639-2 menu language code.
type Language string

// Valid reports whether the code is exactly three bytes.
func (l Language) Valid() bool {
	return len(l) == languageLen
}

func parseLanguage(b []byte) (Language, error) {
	if len(b) < languageLen {
		return "", errors.Wrapf(ErrInvalidParam, "language needs %d bytes, have %d", languageLen, len(b))
	}
	return Language(b[:languageLen]), nil
}

// UICommand is a remote-control code carried by User Control Pressed.
type UICommand uint8

// Remote-control codes.
const (
	UISelect           UICommand = 0x00
	UIUp               UICommand = 0x01
	UIDown             UICommand = 0x02
	UILeft             UICommand = 0x03
	UIRight            UICommand = 0x04
	UIHome             UICommand = 0x09
	UIBack             UICommand = 0x0D
	UINum0             UICommand = 0x20
	UINum1             UICommand = 0x21
	UINum2             UICommand = 0x22
	UINum3             UICommand = 0x23
	UINum4             UICommand = 0x24
	UINum5             UICommand = 0x25
	UINum6             UICommand = 0x26
	UINum7             UICommand = 0x27
	UINum8             UICommand = 0x28
	UINum9             UICommand = 0x29
	UIVolumeUp         UICommand = 0x41
	UIVolumeDown       UICommand = 0x42
	UIMute             UICommand = 0x43
	UIMuteFunction     UICommand = 0x65
	UIRestoreFunction  UICommand = 0x66
	UIPowerOffFunction UICommand = 0x6C
	UIPowerOnFunction  UICommand = 0x6D
)

func (c UICommand) String() string {
	names := map[UICommand]string{
		UISelect:           "Select",
		UIUp:               "Up",
		UIDown:             "Down",
		UILeft:             "Left",
		UIRight:            "Right",
		UIHome:             "Home",
		UIBack:             "Back",
		UINum0:             "0",
		UINum1:             "1",
		UINum2:             "2",
		UINum3:             "3",
		UINum4:             "4",
		UINum5:             "5",
		UINum6:             "6",
		UINum7:             "7",
		UINum8:             "8",
		UINum9:             "9",
		UIVolumeUp:         "Volume Up",
		UIVolumeDown:       "Volume Down",
		UIMute:             "Mute",
		UIMuteFunction:     "Mute Function",
		UIRestoreFunction:  "Restore Volume Function",
		UIPowerOffFunction: "Power Off Function",
		UIPowerOnFunction:  "Power On Function",
	}
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("UI Command 0x%02X", uint8(c))
}

// SystemAudioStatus is the on/off state of system audio mode.
type SystemAudioStatus uint8

// System audio states.
const (
	SystemAudioOff SystemAudioStatus = 0
	SystemAudioOn  SystemAudioStatus = 1
)

// Valid reports whether the status is off or on.
func (s SystemAudioStatus) Valid() bool {
	return s <= SystemAudioOn
}

func (s SystemAudioStatus) String() string {
	switch s {
	case SystemAudioOff:
		return "Off"
	case SystemAudioOn:
		return "On"
	}
	return "Unknown"
}

// AudioStatus packs an audio system's mute state and volume into one
// byte: bit 7 is mute, bits 6..0 are the volume.
type AudioStatus uint8

// Mute reports the mute state.
func (s AudioStatus) Mute() bool {
	return s&0x80 != 0
}

// Volume returns the volume, 0..127.
func (s AudioStatus) Volume() int {
	return int(s & 0x7F)
}

func (s AudioStatus) String() string {
	if s.Mute() {
		return "Audio Mute On"
	}
	return "Audio Mute Off"
}

// audioFormatNames is indexed by the low four bits of an audio format
// code. The code field is six bits wide but only fifteen codes are
// defined.
var audioFormatNames = [...]string{
	"Reserved",
	"LPCM",
	"AC3",
	"MPEG1",
	"MP3",
	"MPEG2",
	"AAC",
	"DTS",
	"ATRAC",
	"One Bit Audio",
	"E-AC3",
	"DTS-HD",
	"MAT",
	"DST",
	"WMA PRO",
	"Reserved for Audio format 15",
}

// Audio format codes for Short Audio Descriptors and Request Short
// Audio Descriptor.
const (
	AudioFormatLPCM = 1 + iota
	AudioFormatAC3
	AudioFormatMPEG1
	AudioFormatMP3
	AudioFormatMPEG2
	AudioFormatAACLC
	AudioFormatDTS
	AudioFormatATRAC
	AudioFormatOneBitAudio
	AudioFormatEnhancedAC3
	AudioFormatDTSHD
	AudioFormatMAT
	AudioFormatDST
	AudioFormatWMAPro
	AudioFormatExtended
)

// RequestAudioFormat is one descriptor request byte of Request Short
// Audio Descriptor: the audio format ID in bits 7..6 and the audio
// format code in bits 5..0.
type RequestAudioFormat uint8

// NewRequestAudioFormat packs a format ID and format code.
func NewRequestAudioFormat(id, code uint8) RequestAudioFormat {
	return RequestAudioFormat(id<<6 | code&0x3F)
}

// FormatID returns the audio format ID.
func (r RequestAudioFormat) FormatID() uint8 {
	return uint8(r) >> 6
}

// FormatCode returns the audio format code.
func (r RequestAudioFormat) FormatCode() uint8 {
	return uint8(r) & 0x3F
}

func (r RequestAudioFormat) String() string {
	return audioFormatNames[r&0xF]
}

// ShortAudioDescriptor is the 3-byte audio capability descriptor of
// Report Short Audio Descriptor, as defined by EDID/CEA-861.
type ShortAudioDescriptor [3]byte

// NewShortAudioDescriptor builds a descriptor from its packed 24-bit
// value, byte 0 in the low eight bits.
func NewShortAudioDescriptor(v uint32) ShortAudioDescriptor {
	return ShortAudioDescriptor{byte(v), byte(v >> 8), byte(v >> 16)}
}

// Descriptor returns the packed 24-bit value, byte 0 in the low eight
// bits.
func (d ShortAudioDescriptor) Descriptor() uint32 {
	return uint32(d[0]) | uint32(d[1])<<8 | uint32(d[2])<<16
}

// FormatCode returns the audio format code from bits 6..3 of byte 0.
func (d ShortAudioDescriptor) FormatCode() uint8 {
	return d[0] >> 3 & 0xF
}

// Atmos reports whether the descriptor advertises Atmos capability:
// an extended format code (9 or above) with a non-zero value in the
// low two bits of byte 2.
func (d ShortAudioDescriptor) Atmos() bool {
	return d.FormatCode() >= AudioFormatOneBitAudio && d[2]&0x3 != 0
}

func (d ShortAudioDescriptor) String() string {
	return audioFormatNames[d.FormatCode()]
}

func parseShortAudioDescriptor(b []byte) (ShortAudioDescriptor, error) {
	if len(b) < sadLen {
		return ShortAudioDescriptor{}, errors.Wrapf(ErrInvalidParam, "short audio descriptor needs %d bytes, have %d", sadLen, len(b))
	}
	return ShortAudioDescriptor{b[0], b[1], b[2]}, nil
}

// AllDeviceTypes is the CEC 2.0 device-type bitfield of Report
// Features: TV at bit 7 down to CEC switch at bit 2.
type AllDeviceTypes uint8

// Bit positions within AllDeviceTypes.
const (
	allDeviceCECSwitch = 1 << (2 + iota)
	allDeviceAudioSystem
	allDevicePlayback
	allDeviceTuner
	allDeviceRecording
	allDeviceTV
)

// IsTV reports whether the TV bit is set.
func (t AllDeviceTypes) IsTV() bool { return t&allDeviceTV != 0 }

// IsRecordingDevice reports whether the recording device bit is set.
func (t AllDeviceTypes) IsRecordingDevice() bool { return t&allDeviceRecording != 0 }

// IsTuner reports whether the tuner bit is set.
func (t AllDeviceTypes) IsTuner() bool { return t&allDeviceTuner != 0 }

// IsPlaybackDevice reports whether the playback device bit is set.
func (t AllDeviceTypes) IsPlaybackDevice() bool { return t&allDevicePlayback != 0 }

// IsAudioSystem reports whether the audio system bit is set.
func (t AllDeviceTypes) IsAudioSystem() bool { return t&allDeviceAudioSystem != 0 }

// IsCECSwitch reports whether the CEC switch bit is set.
func (t AllDeviceTypes) IsCECSwitch() bool { return t&allDeviceCECSwitch != 0 }

// Types returns the names of the device types advertised, highest bit
// first.
func (t AllDeviceTypes) Types() []string {
	var out []string
	for _, v := range []struct {
		bit  AllDeviceTypes
		name string
	}{
		{allDeviceTV, "TV"},
		{allDeviceRecording, "Recording Device"},
		{allDeviceTuner, "Tuner"},
		{allDevicePlayback, "Playback Device"},
		{allDeviceAudioSystem, "Audio System"},
		{allDeviceCECSwitch, "CEC Switch"},
	} {
		if t&v.bit != 0 {
			out = append(out, v.name)
		}
	}
	return out
}

// RcProfile is the variable-length remote-control profile operand of
// Report Features: one to four bytes chained by the extension bit,
// with bit 6 of the first byte distinguishing a TV profile from a
// source profile.
type RcProfile []byte

// Bit positions within the first RC profile byte of a source device.
const (
	rcMediaContextMenu = 1 << iota
	rcMediaTopMenu
	rcContentsMenu
	rcDeviceSetupMenu
	rcDeviceRootMenu
	_
	rcProfileSource
)

// Valid reports whether the profile satisfies the extension-bit
// invariant.
func (p RcProfile) Valid() bool {
	return validExt(p, maxExtLen)
}

// IsTV reports whether this is a TV remote-control profile.
func (p RcProfile) IsTV() bool { return p[0]&rcProfileSource == 0 }

// IsSource reports whether this is a source remote-control profile.
func (p RcProfile) IsSource() bool { return p[0]&rcProfileSource != 0 }

// RootMenu reports whether a source can handle the device root menu.
func (p RcProfile) RootMenu() bool { return p[0]&rcDeviceRootMenu != 0 }

// SetupMenu reports whether a source can handle the device setup menu.
func (p RcProfile) SetupMenu() bool { return p[0]&rcDeviceSetupMenu != 0 }

// ContentsMenu reports whether a source can handle the contents menu.
func (p RcProfile) ContentsMenu() bool { return p[0]&rcContentsMenu != 0 }

// MediaTopMenu reports whether a source can handle the media top menu.
func (p RcProfile) MediaTopMenu() bool { return p[0]&rcMediaTopMenu != 0 }

// MediaContextMenu reports whether a source can handle the media
// context-sensitive menu.
func (p RcProfile) MediaContextMenu() bool { return p[0]&rcMediaContextMenu != 0 }

// Profiles returns a rendering of the profile contents.
func (p RcProfile) Profiles() []string {
	if p.IsTV() {
		out := []string{"RC Profile TV"}
		switch {
		case p[0]&0xE == 0xE:
			out = append(out, "RC Profile 4")
		case p[0]&0xA == 0xA:
			out = append(out, "RC Profile 3")
		case p[0]&0x6 == 0x6:
			out = append(out, "RC Profile 2")
		case p[0]&0x2 == 0x2:
			out = append(out, "RC Profile 1")
		default:
			out = append(out, "None of the Profiles")
		}
		return out
	}
	out := []string{"RC Profile Source"}
	for _, v := range []struct {
		bit  byte
		name string
	}{
		{rcDeviceRootMenu, "Device Root Menu"},
		{rcDeviceSetupMenu, "Device Setup Menu"},
		{rcContentsMenu, "Contents Menu"},
		{rcMediaTopMenu, "Media Top Menu"},
		{rcMediaContextMenu, "Media Context-Sensitive Menu"},
	} {
		if p[0]&v.bit != 0 {
			out = append(out, v.name)
		}
	}
	return out
}

// DeviceFeatures is the variable-length feature operand of Report
// Features: one to four bytes chained by the extension bit, feature
// flags in bits 6..1 of the first byte.
type DeviceFeatures []byte

// Bit positions within the first device features byte.
const (
	_ = 1 << iota
	featureARCRx
	featureSinkARCTx
	featureSetAudioRate
	featureControlledByDeck
	featureSetOSDString
	featureRecordTVScreen
)

// Valid reports whether the features satisfy the extension-bit
// invariant.
func (f DeviceFeatures) Valid() bool {
	return validExt(f, maxExtLen)
}

// RecordTVScreen reports whether the TV supports Record TV Screen.
func (f DeviceFeatures) RecordTVScreen() bool { return f[0]&featureRecordTVScreen != 0 }

// SetOSDString reports whether the TV supports Set OSD String.
func (f DeviceFeatures) SetOSDString() bool { return f[0]&featureSetOSDString != 0 }

// ControlledByDeck reports whether the device supports being
// controlled by deck control.
func (f DeviceFeatures) ControlledByDeck() bool { return f[0]&featureControlledByDeck != 0 }

// SetAudioRate reports whether the source supports Set Audio Rate.
func (f DeviceFeatures) SetAudioRate() bool { return f[0]&featureSetAudioRate != 0 }

// SinkARCTx reports whether the sink supports ARC Tx.
func (f DeviceFeatures) SinkARCTx() bool { return f[0]&featureSinkARCTx != 0 }

// ARCRx reports whether the source supports ARC Rx.
func (f DeviceFeatures) ARCRx() bool { return f[0]&featureARCRx != 0 }

// Features returns the names of the features advertised, highest bit
// first.
func (f DeviceFeatures) Features() []string {
	var out []string
	for _, v := range []struct {
		bit  byte
		name string
	}{
		{featureRecordTVScreen, "TV supports Record TV Screen"},
		{featureSetOSDString, "TV supports Set OSD String"},
		{featureControlledByDeck, "Supports being controlled by Deck Control"},
		{featureSetAudioRate, "Source supports Set Audio Rate"},
		{featureSinkARCTx, "Sink supports ARC Tx"},
		{featureARCRx, "Source supports ARC Rx"},
	} {
		if f[0]&v.bit != 0 {
			out = append(out, v.name)
		}
	}
	return out
}

// LatencyInfo is the latency structure of Report Current Latency: the
// video latency byte, the latency flags byte, and an audio output
// delay byte present only when the low two flag bits are both set.
// The raw bytes are retained so a one- or two-byte structure received
// from a non-conforming device reserializes unchanged.
type LatencyInfo []byte

// NewLatencyInfo builds a latency structure. The audio output delay
// is included only when flags&0x3 == 0x3.
func NewLatencyInfo(videoLatency, flags, audioOutputDelay byte) LatencyInfo {
	l := LatencyInfo{videoLatency, flags}
	if flags&0x3 == 0x3 {
		l = append(l, audioOutputDelay)
	}
	return l
}

// VideoLatency returns the video latency byte.
func (l LatencyInfo) VideoLatency() byte {
	return l[0]
}

// Flags returns the latency flags byte, or zero when absent.
func (l LatencyInfo) Flags() byte {
	if len(l) < 2 {
		return 0
	}
	return l[1]
}

// AudioOutputDelay returns the audio output delay, or 0xFF when the
// structure does not carry one.
func (l LatencyInfo) AudioOutputDelay() int {
	if len(l) == 3 && l[1]&0x3 == 0x3 {
		return int(l[2])
	}
	return 0xFF
}

func parseLatencyInfo(b []byte) (LatencyInfo, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(ErrInvalidParam, "no bytes for latency info operand")
	}
	if len(b) > maxLatencyLen {
		b = b[:maxLatencyLen]
	}
	out := make(LatencyInfo, len(b))
	copy(out, b)
	return out, nil
}
