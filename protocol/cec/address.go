/*
NAME
  address.go

DESCRIPTION
  address.go provides the logical and physical address types used
  throughout the CEC message set.

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
	"strings"

	"github.com/pkg/errors"
)

// LogicalAddress is the 4-bit identity of a device on the CEC bus.
type LogicalAddress uint8

// The logical addresses defined by CEC. Address 15 doubles as the
// unregistered initiator and the broadcast destination.
const (
	AddrTV               LogicalAddress = 0
	AddrRecordingDevice1 LogicalAddress = 1
	AddrRecordingDevice2 LogicalAddress = 2
	AddrTuner1           LogicalAddress = 3
	AddrPlaybackDevice1  LogicalAddress = 4
	AddrAudioSystem      LogicalAddress = 5
	AddrTuner2           LogicalAddress = 6
	AddrTuner3           LogicalAddress = 7
	AddrPlaybackDevice2  LogicalAddress = 8
	AddrRecordingDevice3 LogicalAddress = 9
	AddrTuner4           LogicalAddress = 10
	AddrPlaybackDevice3  LogicalAddress = 11
	AddrReserved12       LogicalAddress = 12
	AddrReserved13       LogicalAddress = 13
	AddrSpecificUse      LogicalAddress = 14
	AddrUnregistered     LogicalAddress = 15
	AddrBroadcast                       = AddrUnregistered
)

var logicalAddressNames = [...]string{
	"TV",
	"Recording Device 1",
	"Recording Device 2",
	"Tuner 1",
	"Playback Device 1",
	"Audio System",
	"Tuner 2",
	"Tuner 3",
	"Playback Device 2",
	"Recording Device 3",
	"Tuner 4",
	"Playback Device 3",
	"Reserved 12",
	"Reserved 13",
	"Specific Use",
	"Broadcast/Unregistered",
}

// Valid reports whether the address is within the 4-bit range.
func (la LogicalAddress) Valid() bool {
	return la <= AddrBroadcast
}

// Type returns the device-type class a logical address belongs to.
func (la LogicalAddress) Type() (DeviceType, error) {
	if !la.Valid() {
		return 0, errors.Wrapf(ErrInvalidParam, "logical address %d out of range", la)
	}
	types := [...]DeviceType{
		DeviceTV,
		DeviceRecording,
		DeviceRecording,
		DeviceTuner,
		DevicePlayback,
		DeviceAudioSystem,
		DeviceTuner,
		DeviceTuner,
		DevicePlayback,
		DeviceRecording,
		DeviceTuner,
		DevicePlayback,
		DeviceReserved,
		DeviceReserved,
		DeviceReserved,
		DeviceReserved,
	}
	return types[la], nil
}

// String returns the device name of the address.
func (la LogicalAddress) String() string {
	if !la.Valid() {
		return "Unknown"
	}
	return logicalAddressNames[la]
}

// PhysicalAddress is the 4-nibble topological address of a device in
// the HDMI tree, packed into two bytes as on the wire.
type PhysicalAddress [2]byte

// UnknownPhysicalAddress is the f.f.f.f sentinel: an unknown or absent
// physical address. System Audio Mode Request and Request Current
// Latency omit their address operand when it holds this value.
var UnknownPhysicalAddress = NewPhysicalAddress(0xF, 0xF, 0xF, 0xF)

// NewPhysicalAddress packs the four nibbles a.b.c.d into a physical
// address. Values wider than a nibble are masked.
func NewPhysicalAddress(a, b, c, d uint8) PhysicalAddress {
	return PhysicalAddress{(a&0xF)<<4 | b&0xF, (c&0xF)<<4 | d&0xF}
}

// ParsePhysicalAddress parses the dotted form "a.b.c.d", one hex digit
// per nibble.
func ParsePhysicalAddress(s string) (PhysicalAddress, error) {
	if len(s) != 7 {
		return PhysicalAddress{}, errors.Wrapf(ErrInvalidParam, "physical address %q is not of form a.b.c.d", s)
	}
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return PhysicalAddress{}, errors.Wrapf(ErrInvalidParam, "physical address %q is not of form a.b.c.d", s)
	}
	var n [4]uint8
	for i, p := range parts {
		var v uint8
		if _, err := fmt.Sscanf(p, "%x", &v); err != nil || v > 0xF {
			return PhysicalAddress{}, errors.Wrapf(ErrInvalidParam, "physical address %q has bad nibble %q", s, p)
		}
		n[i] = v
	}
	return NewPhysicalAddress(n[0], n[1], n[2], n[3]), nil
}

// parsePhysicalAddress reads a physical address from the first two
// bytes of b.
func parsePhysicalAddress(b []byte) (PhysicalAddress, error) {
	if len(b) < 2 {
		return PhysicalAddress{}, errors.Wrapf(ErrInvalidParam, "physical address needs 2 bytes, have %d", len(b))
	}
	return PhysicalAddress{b[0], b[1]}, nil
}

// Nibble returns the i-th nibble of the address, 0 being the most
// significant.
func (pa PhysicalAddress) Nibble(i int) (uint8, error) {
	switch i {
	case 0:
		return pa[0] >> 4 & 0xF, nil
	case 1:
		return pa[0] & 0xF, nil
	case 2:
		return pa[1] >> 4 & 0xF, nil
	case 3:
		return pa[1] & 0xF, nil
	}
	return 0, errors.Wrapf(ErrInvalidParam, "nibble index %d out of range", i)
}

// String returns the canonical dotted form of the address.
func (pa PhysicalAddress) String() string {
	return fmt.Sprintf("%x.%x.%x.%x", pa[0]>>4&0xF, pa[0]&0xF, pa[1]>>4&0xF, pa[1]&0xF)
}
