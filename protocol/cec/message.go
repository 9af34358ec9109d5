/*
NAME
  message.go

DESCRIPTION
  message.go provides the Message interface and the frame-level encode
  and decode entry points of the CEC codec.

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

import "github.com/pkg/errors"

// Message is one CEC message, identified by its opcode. The message
// set is closed: every implementation lives in this package, and
// Decode maps an opcode outside the set to UnknownMessage rather than
// failing, so a receiver can answer with Feature Abort.
type Message interface {
	// Opcode identifies the message.
	Opcode() Opcode

	// encode appends the message's operand bytes to f.
	encode(f *Frame) error
}

// Encode serializes a message into a frame: header byte, opcode byte,
// operand bytes. The polling message encodes to its header byte alone.
func Encode(h Header, m Message) (*Frame, error) {
	f := &Frame{buf: make([]byte, 0, MaxFrameLen)}
	if err := f.Append(h.byte()); err != nil {
		return nil, err
	}
	if m.Opcode() == OpPoll {
		return f, nil
	}
	if err := f.Append(byte(m.Opcode())); err != nil {
		return nil, err
	}
	if err := m.encode(f); err != nil {
		return nil, errors.Wrapf(err, "could not encode %v", m.Opcode())
	}
	return f, nil
}

// Decode parses a frame into its header and typed message. A frame of
// one byte is the polling message; an opcode outside the known set
// decodes to UnknownMessage carrying the raw operand tail.
func Decode(f *Frame) (Header, Message, error) {
	h, err := parseHeader(f)
	if err != nil {
		return Header{}, nil, err
	}
	if f.Len() == 1 {
		return h, Polling{}, nil
	}

	op := Opcode(f.buf[opcodeOffset])
	body := f.buf[operandsOffset:]

	var m Message
	switch op {
	case OpActiveSource:
		m, err = decodeActiveSource(body)
	case OpImageViewOn:
		m = ImageViewOn{}
	case OpTextViewOn:
		m = TextViewOn{}
	case OpInactiveSource:
		m, err = decodeInactiveSource(body)
	case OpRequestActiveSource:
		m = RequestActiveSource{}
	case OpStandby:
		m = Standby{}
	case OpGetCECVersion:
		m = GetCECVersion{}
	case OpCECVersion:
		m, err = decodeCECVersion(body)
	case OpSetMenuLanguage:
		m, err = decodeSetMenuLanguage(body)
	case OpGetMenuLanguage:
		m = GetMenuLanguage{}
	case OpGiveOSDName:
		m = GiveOSDName{}
	case OpSetOSDName:
		m, err = decodeSetOSDName(body)
	case OpSetOSDString:
		m, err = decodeSetOSDString(body)
	case OpGivePhysicalAddress:
		m = GivePhysicalAddress{}
	case OpReportPhysicalAddress:
		m, err = decodeReportPhysicalAddress(body)
	case OpGiveDeviceVendorID:
		m = GiveDeviceVendorID{}
	case OpDeviceVendorID:
		m, err = decodeDeviceVendorID(body)
	case OpGiveDevicePowerStatus:
		m = GiveDevicePowerStatus{}
	case OpReportPowerStatus:
		m, err = decodeReportPowerStatus(body)
	case OpAbort:
		m = Abort{}
	case OpFeatureAbort:
		m, err = decodeFeatureAbort(body)
	case OpRoutingChange:
		m, err = decodeRoutingChange(body)
	case OpRoutingInformation:
		m, err = decodeRoutingInformation(body)
	case OpSetStreamPath:
		m, err = decodeSetStreamPath(body)
	case OpRequestShortAudioDescriptor:
		m, err = decodeRequestShortAudioDescriptor(body)
	case OpReportShortAudioDescriptor:
		m, err = decodeReportShortAudioDescriptor(body)
	case OpSystemAudioModeRequest:
		m, err = decodeSystemAudioModeRequest(body)
	case OpSetSystemAudioMode:
		m, err = decodeSetSystemAudioMode(body)
	case OpGiveAudioStatus:
		m = GiveAudioStatus{}
	case OpReportAudioStatus:
		m, err = decodeReportAudioStatus(body)
	case OpUserControlPressed:
		m, err = decodeUserControlPressed(body)
	case OpUserControlReleased:
		m = UserControlReleased{}
	case OpRequestArcInitiation:
		m = RequestArcInitiation{}
	case OpReportArcInitiated:
		m = ReportArcInitiated{}
	case OpRequestArcTermination:
		m = RequestArcTermination{}
	case OpReportArcTerminated:
		m = ReportArcTerminated{}
	case OpInitiateArc:
		m = InitiateArc{}
	case OpTerminateArc:
		m = TerminateArc{}
	case OpGiveFeatures:
		m = GiveFeatures{}
	case OpReportFeatures:
		m, err = decodeReportFeatures(body)
	case OpRequestCurrentLatency:
		m, err = decodeRequestCurrentLatency(body)
	case OpReportCurrentLatency:
		m, err = decodeReportCurrentLatency(body)
	default:
		tail := make([]byte, len(body))
		copy(tail, body)
		m = UnknownMessage{Op: op, Body: tail}
	}
	if err != nil {
		return Header{}, nil, errors.Wrapf(err, "could not decode %v", op)
	}
	return h, m, nil
}
