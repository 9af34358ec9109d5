/*
NAME
  opcode.go

DESCRIPTION
  opcode.go provides the Opcode type enumerating the CEC message set.

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

import "fmt"

// Opcode identifies a CEC message. Wire opcodes occupy one byte; the
// type is wider so that the header-only polling message, which has no
// opcode byte at all, is representable as the out-of-band OpPoll.
// Opcodes not in the enumeration are carried as-is, so a receiver can
// answer with Feature Abort (unrecognized opcode).
type Opcode uint16

// The CEC opcodes handled by this package.
const (
	OpFeatureAbort                Opcode = 0x00
	OpImageViewOn                 Opcode = 0x04
	OpTextViewOn                  Opcode = 0x0D
	OpSetMenuLanguage             Opcode = 0x32
	OpStandby                     Opcode = 0x36
	OpUserControlPressed          Opcode = 0x44
	OpUserControlReleased         Opcode = 0x45
	OpGiveOSDName                 Opcode = 0x46
	OpSetOSDName                  Opcode = 0x47
	OpSetOSDString                Opcode = 0x64
	OpSystemAudioModeRequest      Opcode = 0x70
	OpGiveAudioStatus             Opcode = 0x71
	OpSetSystemAudioMode          Opcode = 0x72
	OpReportAudioStatus           Opcode = 0x7A
	OpRoutingChange               Opcode = 0x80
	OpRoutingInformation          Opcode = 0x81
	OpActiveSource                Opcode = 0x82
	OpGivePhysicalAddress         Opcode = 0x83
	OpReportPhysicalAddress       Opcode = 0x84
	OpRequestActiveSource         Opcode = 0x85
	OpSetStreamPath               Opcode = 0x86
	OpDeviceVendorID              Opcode = 0x87
	OpGiveDeviceVendorID          Opcode = 0x8C
	OpGiveDevicePowerStatus       Opcode = 0x8F
	OpReportPowerStatus           Opcode = 0x90
	OpGetMenuLanguage             Opcode = 0x91
	OpInactiveSource              Opcode = 0x9D
	OpCECVersion                  Opcode = 0x9E
	OpGetCECVersion               Opcode = 0x9F
	OpReportShortAudioDescriptor  Opcode = 0xA3
	OpRequestShortAudioDescriptor Opcode = 0xA4
	OpGiveFeatures                Opcode = 0xA5
	OpReportFeatures              Opcode = 0xA6
	OpRequestCurrentLatency       Opcode = 0xA7
	OpReportCurrentLatency        Opcode = 0xA8
	OpInitiateArc                 Opcode = 0xC0
	OpReportArcInitiated          Opcode = 0xC1
	OpReportArcTerminated         Opcode = 0xC2
	OpRequestArcInitiation        Opcode = 0xC3
	OpRequestArcTermination       Opcode = 0xC4
	OpTerminateArc                Opcode = 0xC5
	OpAbort                       Opcode = 0xFF

	// OpPoll is the pseudo-opcode of the header-only polling message.
	// It never appears on the wire.
	OpPoll Opcode = 0x200
)

var opcodeNames = map[Opcode]string{
	OpFeatureAbort:                "Feature Abort",
	OpImageViewOn:                 "Image View On",
	OpTextViewOn:                  "Text View On",
	OpSetMenuLanguage:             "Set Menu Language",
	OpStandby:                     "Standby",
	OpUserControlPressed:          "User Control Pressed",
	OpUserControlReleased:         "User Control Released",
	OpGiveOSDName:                 "Give OSD Name",
	OpSetOSDName:                  "Set OSD Name",
	OpSetOSDString:                "Set OSD String",
	OpSystemAudioModeRequest:      "System Audio Mode Request",
	OpGiveAudioStatus:             "Give Audio Status",
	OpSetSystemAudioMode:          "Set System Audio Mode",
	OpReportAudioStatus:           "Report Audio Status",
	OpRoutingChange:               "Routing Change",
	OpRoutingInformation:          "Routing Information",
	OpActiveSource:                "Active Source",
	OpGivePhysicalAddress:         "Give Physical Address",
	OpReportPhysicalAddress:       "Report Physical Address",
	OpRequestActiveSource:         "Request Active Source",
	OpSetStreamPath:               "Set Stream Path",
	OpDeviceVendorID:              "Device Vendor ID",
	OpGiveDeviceVendorID:          "Give Device Vendor ID",
	OpGiveDevicePowerStatus:       "Give Device Power Status",
	OpReportPowerStatus:           "Report Power Status",
	OpGetMenuLanguage:             "Get Menu Language",
	OpInactiveSource:              "Inactive Source",
	OpCECVersion:                  "CEC Version",
	OpGetCECVersion:               "Get CEC Version",
	OpReportShortAudioDescriptor:  "Report Short Audio Descriptor",
	OpRequestShortAudioDescriptor: "Request Short Audio Descriptor",
	OpGiveFeatures:                "Give Features",
	OpReportFeatures:              "Report Features",
	OpRequestCurrentLatency:       "Request Current Latency",
	OpReportCurrentLatency:        "Report Current Latency",
	OpInitiateArc:                 "Initiate ARC",
	OpReportArcInitiated:          "Report ARC Initiated",
	OpReportArcTerminated:         "Report ARC Terminated",
	OpRequestArcInitiation:        "Request ARC Initiation",
	OpRequestArcTermination:       "Request ARC Termination",
	OpTerminateArc:                "Terminate ARC",
	OpAbort:                       "Abort",
	OpPoll:                        "Polling",
}

// String returns the name of the opcode, or its hex value for opcodes
// outside the known message set.
func (o Opcode) String() string {
	if n, ok := opcodeNames[o]; ok {
		return n
	}
	return fmt.Sprintf("Unknown (0x%02X)", uint16(o))
}
