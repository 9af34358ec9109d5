/*
NAME
  messages.go

DESCRIPTION
  messages.go provides the typed CEC messages: addressing and routing,
  power, OSD, vendor and version exchange, audio control, ARC
  signaling, feature reporting and latency reporting. Each message
  serializes its operands in the field order fixed by the CEC
  specification.

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

import "github.com/pkg/errors"

// Polling is the header-only probe used to discover devices on the
// bus. It carries no opcode byte.
type Polling struct{}

func (Polling) Opcode() Opcode { return OpPoll }
func (Polling) encode(f *Frame) error { return nil }

// ActiveSource declares the sender the active source at the given
// physical address. Always broadcast.
type ActiveSource struct {
	PhysicalAddress PhysicalAddress
}

func (ActiveSource) Opcode() Opcode { return OpActiveSource }

func (m ActiveSource) encode(f *Frame) error { return f.AppendBytes(m.PhysicalAddress[:]) }

func decodeActiveSource(b []byte) (Message, error) {
	pa, err := parsePhysicalAddress(b)
	return ActiveSource{PhysicalAddress: pa}, err
}

// ImageViewOn asks the TV to display the sender's image.
type ImageViewOn struct{}

func (ImageViewOn) Opcode() Opcode { return OpImageViewOn }
func (ImageViewOn) encode(f *Frame) error { return nil }

// TextViewOn asks the TV to display the sender's text.
type TextViewOn struct{}

func (TextViewOn) Opcode() Opcode { return OpTextViewOn }
func (TextViewOn) encode(f *Frame) error { return nil }

// InactiveSource tells the TV the sender has stopped being the source.
type InactiveSource struct {
	PhysicalAddress PhysicalAddress
}

func (InactiveSource) Opcode() Opcode { return OpInactiveSource }

func (m InactiveSource) encode(f *Frame) error { return f.AppendBytes(m.PhysicalAddress[:]) }

func decodeInactiveSource(b []byte) (Message, error) {
	pa, err := parsePhysicalAddress(b)
	return InactiveSource{PhysicalAddress: pa}, err
}

// RequestActiveSource asks the active source to identify itself.
type RequestActiveSource struct{}

func (RequestActiveSource) Opcode() Opcode { return OpRequestActiveSource }
func (RequestActiveSource) encode(f *Frame) error { return nil }

// Standby puts the destination, or the whole bus, into standby.
type Standby struct{}

func (Standby) Opcode() Opcode { return OpStandby }
func (Standby) encode(f *Frame) error { return nil }

// GetCECVersion asks the destination for its CEC version.
type GetCECVersion struct{}

func (GetCECVersion) Opcode() Opcode { return OpGetCECVersion }
func (GetCECVersion) encode(f *Frame) error { return nil }

// CECVersion reports the sender's CEC version.
type CECVersion struct {
	Version Version
}

func (CECVersion) Opcode() Opcode { return OpCECVersion }

func (m CECVersion) encode(f *Frame) error { return f.Append(byte(m.Version)) }

func decodeCECVersion(b []byte) (Message, error) {
	v, err := parseByte(b, "version")
	return CECVersion{Version: Version(v)}, err
}

// SetMenuLanguage broadcasts the TV's menu language.
type SetMenuLanguage struct {
	Language Language
}

func (SetMenuLanguage) Opcode() Opcode { return OpSetMenuLanguage }

func (m SetMenuLanguage) encode(f *Frame) error { return f.AppendBytes([]byte(m.Language)) }

func decodeSetMenuLanguage(b []byte) (Message, error) {
	l, err := parseLanguage(b)
	return SetMenuLanguage{Language: l}, err
}

// GetMenuLanguage asks the TV for its menu language.
type GetMenuLanguage struct{}

func (GetMenuLanguage) Opcode() Opcode { return OpGetMenuLanguage }
func (GetMenuLanguage) encode(f *Frame) error { return nil }

// GiveOSDName asks the destination for its on-screen name.
type GiveOSDName struct{}

func (GiveOSDName) Opcode() Opcode { return OpGiveOSDName }
func (GiveOSDName) encode(f *Frame) error { return nil }

// SetOSDName reports the sender's on-screen name.
type SetOSDName struct {
	Name OSDName
}

func (SetOSDName) Opcode() Opcode { return OpSetOSDName }

func (m SetOSDName) encode(f *Frame) error { return f.AppendBytes([]byte(m.Name)) }

func decodeSetOSDName(b []byte) (Message, error) {
	n, err := parseOSDName(b)
	return SetOSDName{Name: n}, err
}

// SetOSDString asks the TV to display a text string.
type SetOSDString struct {
	Text OSDString
}

func (SetOSDString) Opcode() Opcode { return OpSetOSDString }

func (m SetOSDString) encode(f *Frame) error { return f.AppendBytes([]byte(m.Text)) }

func decodeSetOSDString(b []byte) (Message, error) {
	s, err := parseOSDString(b)
	return SetOSDString{Text: s}, err
}

// GivePhysicalAddress asks the destination to broadcast its physical
// address.
type GivePhysicalAddress struct{}

func (GivePhysicalAddress) Opcode() Opcode { return OpGivePhysicalAddress }
func (GivePhysicalAddress) encode(f *Frame) error { return nil }

// ReportPhysicalAddress broadcasts the sender's physical address and
// device type.
type ReportPhysicalAddress struct {
	PhysicalAddress PhysicalAddress
	DeviceType      DeviceType
}

func (ReportPhysicalAddress) Opcode() Opcode { return OpReportPhysicalAddress }

func (m ReportPhysicalAddress) encode(f *Frame) error {
	if err := f.AppendBytes(m.PhysicalAddress[:]); err != nil {
		return err
	}
	return f.Append(byte(m.DeviceType))
}

func decodeReportPhysicalAddress(b []byte) (Message, error) {
	pa, err := parsePhysicalAddress(b)
	if err != nil {
		return nil, err
	}
	t, err := parseByte(b[2:], "device type")
	return ReportPhysicalAddress{PhysicalAddress: pa, DeviceType: DeviceType(t)}, err
}

// GiveDeviceVendorID asks the destination to broadcast its vendor ID.
type GiveDeviceVendorID struct{}

func (GiveDeviceVendorID) Opcode() Opcode { return OpGiveDeviceVendorID }
func (GiveDeviceVendorID) encode(f *Frame) error { return nil }

// DeviceVendorID broadcasts the sender's vendor ID.
type DeviceVendorID struct {
	VendorID VendorID
}

func (DeviceVendorID) Opcode() Opcode { return OpDeviceVendorID }

func (m DeviceVendorID) encode(f *Frame) error { return f.AppendBytes(m.VendorID[:]) }

func decodeDeviceVendorID(b []byte) (Message, error) {
	v, err := parseVendorID(b)
	return DeviceVendorID{VendorID: v}, err
}

// GiveDevicePowerStatus asks the destination for its power status.
type GiveDevicePowerStatus struct{}

func (GiveDevicePowerStatus) Opcode() Opcode { return OpGiveDevicePowerStatus }
func (GiveDevicePowerStatus) encode(f *Frame) error { return nil }

// ReportPowerStatus reports the sender's power status.
type ReportPowerStatus struct {
	Status PowerStatus
}

func (ReportPowerStatus) Opcode() Opcode { return OpReportPowerStatus }

func (m ReportPowerStatus) encode(f *Frame) error { return f.Append(byte(m.Status)) }

func decodeReportPowerStatus(b []byte) (Message, error) {
	s, err := parseByte(b, "power status")
	return ReportPowerStatus{Status: PowerStatus(s)}, err
}

// Abort is the test message a device must answer with Feature Abort.
type Abort struct{}

func (Abort) Opcode() Opcode { return OpAbort }
func (Abort) encode(f *Frame) error { return nil }

// FeatureAbort rejects an incoming opcode with a coded reason.
type FeatureAbort struct {
	Feature Opcode
	Reason  AbortReason
}

func (FeatureAbort) Opcode() Opcode { return OpFeatureAbort }

func (m FeatureAbort) encode(f *Frame) error {
	if err := f.Append(byte(m.Feature)); err != nil {
		return err
	}
	return f.Append(byte(m.Reason))
}

func decodeFeatureAbort(b []byte) (Message, error) {
	op, err := parseByte(b, "feature opcode")
	if err != nil {
		return nil, err
	}
	r, err := parseByte(b[1:], "abort reason")
	return FeatureAbort{Feature: Opcode(op), Reason: AbortReason(r)}, err
}

// RoutingChange announces a switch of the active route.
type RoutingChange struct {
	From PhysicalAddress
	To   PhysicalAddress
}

func (RoutingChange) Opcode() Opcode { return OpRoutingChange }

func (m RoutingChange) encode(f *Frame) error {
	if err := f.AppendBytes(m.From[:]); err != nil {
		return err
	}
	return f.AppendBytes(m.To[:])
}

func decodeRoutingChange(b []byte) (Message, error) {
	from, err := parsePhysicalAddress(b)
	if err != nil {
		return nil, err
	}
	to, err := parsePhysicalAddress(b[2:])
	return RoutingChange{From: from, To: to}, err
}

// RoutingInformation announces the active route to the sink.
type RoutingInformation struct {
	ToSink PhysicalAddress
}

func (RoutingInformation) Opcode() Opcode { return OpRoutingInformation }

func (m RoutingInformation) encode(f *Frame) error { return f.AppendBytes(m.ToSink[:]) }

func decodeRoutingInformation(b []byte) (Message, error) {
	pa, err := parsePhysicalAddress(b)
	return RoutingInformation{ToSink: pa}, err
}

// SetStreamPath asks the device at the given physical address to
// become the source.
type SetStreamPath struct {
	ToSink PhysicalAddress
}

func (SetStreamPath) Opcode() Opcode { return OpSetStreamPath }

func (m SetStreamPath) encode(f *Frame) error { return f.AppendBytes(m.ToSink[:]) }

func decodeSetStreamPath(b []byte) (Message, error) {
	pa, err := parsePhysicalAddress(b)
	return SetStreamPath{ToSink: pa}, err
}

// RequestShortAudioDescriptor asks an audio system for the short
// audio descriptors of up to four audio formats.
type RequestShortAudioDescriptor struct {
	Formats []RequestAudioFormat
}

func (RequestShortAudioDescriptor) Opcode() Opcode { return OpRequestShortAudioDescriptor }

func (m RequestShortAudioDescriptor) encode(f *Frame) error {
	formats := m.Formats
	if len(formats) > maxDescriptors {
		formats = formats[:maxDescriptors]
	}
	for _, r := range formats {
		if err := f.Append(byte(r)); err != nil {
			return err
		}
	}
	return nil
}

func decodeRequestShortAudioDescriptor(b []byte) (Message, error) {
	n := len(b)
	if n > maxDescriptors {
		n = maxDescriptors
	}
	m := RequestShortAudioDescriptor{}
	for i := 0; i < n; i++ {
		m.Formats = append(m.Formats, RequestAudioFormat(b[i]))
	}
	return m, nil
}

// ReportShortAudioDescriptor answers Request Short Audio Descriptor
// with up to four descriptor triples.
type ReportShortAudioDescriptor struct {
	Descriptors []ShortAudioDescriptor
}

func (ReportShortAudioDescriptor) Opcode() Opcode { return OpReportShortAudioDescriptor }

func (m ReportShortAudioDescriptor) encode(f *Frame) error {
	descriptors := m.Descriptors
	if len(descriptors) > maxDescriptors {
		descriptors = descriptors[:maxDescriptors]
	}
	for _, d := range descriptors {
		if err := f.AppendBytes(d[:]); err != nil {
			return err
		}
	}
	return nil
}

func decodeReportShortAudioDescriptor(b []byte) (Message, error) {
	n := len(b) / sadLen
	if n > maxDescriptors {
		n = maxDescriptors
	}
	m := ReportShortAudioDescriptor{}
	for i := 0; i < n; i++ {
		d, err := parseShortAudioDescriptor(b[i*sadLen:])
		if err != nil {
			return nil, err
		}
		m.Descriptors = append(m.Descriptors, d)
	}
	return m, nil
}

// SystemAudioModeRequest asks an audio system to enter system audio
// mode for the source at the given physical address. With
// UnknownPhysicalAddress the address operand is omitted, which asks
// the audio system to leave system audio mode.
type SystemAudioModeRequest struct {
	PhysicalAddress PhysicalAddress
}

func (SystemAudioModeRequest) Opcode() Opcode { return OpSystemAudioModeRequest }

func (m SystemAudioModeRequest) encode(f *Frame) error {
	if m.PhysicalAddress == UnknownPhysicalAddress {
		return nil
	}
	return f.AppendBytes(m.PhysicalAddress[:])
}

func decodeSystemAudioModeRequest(b []byte) (Message, error) {
	if len(b) == 0 {
		return SystemAudioModeRequest{PhysicalAddress: UnknownPhysicalAddress}, nil
	}
	pa, err := parsePhysicalAddress(b)
	return SystemAudioModeRequest{PhysicalAddress: pa}, err
}

// SetSystemAudioMode reports whether system audio mode is on.
type SetSystemAudioMode struct {
	Status SystemAudioStatus
}

func (SetSystemAudioMode) Opcode() Opcode { return OpSetSystemAudioMode }

func (m SetSystemAudioMode) encode(f *Frame) error { return f.Append(byte(m.Status)) }

func decodeSetSystemAudioMode(b []byte) (Message, error) {
	s, err := parseByte(b, "system audio status")
	return SetSystemAudioMode{Status: SystemAudioStatus(s)}, err
}

// GiveAudioStatus asks an audio system for its mute and volume state.
type GiveAudioStatus struct{}

func (GiveAudioStatus) Opcode() Opcode { return OpGiveAudioStatus }
func (GiveAudioStatus) encode(f *Frame) error { return nil }

// ReportAudioStatus reports an audio system's mute and volume state.
type ReportAudioStatus struct {
	Status AudioStatus
}

func (ReportAudioStatus) Opcode() Opcode { return OpReportAudioStatus }

func (m ReportAudioStatus) encode(f *Frame) error { return f.Append(byte(m.Status)) }

func decodeReportAudioStatus(b []byte) (Message, error) {
	s, err := parseByte(b, "audio status")
	return ReportAudioStatus{Status: AudioStatus(s)}, err
}

// UserControlPressed forwards a remote-control key press.
type UserControlPressed struct {
	Command UICommand
}

func (UserControlPressed) Opcode() Opcode { return OpUserControlPressed }

func (m UserControlPressed) encode(f *Frame) error { return f.Append(byte(m.Command)) }

func decodeUserControlPressed(b []byte) (Message, error) {
	c, err := parseByte(b, "UI command")
	return UserControlPressed{Command: UICommand(c)}, err
}

// UserControlReleased forwards a remote-control key release.
type UserControlReleased struct{}

func (UserControlReleased) Opcode() Opcode { return OpUserControlReleased }
func (UserControlReleased) encode(f *Frame) error { return nil }

// RequestArcInitiation asks the ARC Tx device to start ARC.
type RequestArcInitiation struct{}

func (RequestArcInitiation) Opcode() Opcode { return OpRequestArcInitiation }
func (RequestArcInitiation) encode(f *Frame) error { return nil }

// ReportArcInitiated confirms ARC has started.
type ReportArcInitiated struct{}

func (ReportArcInitiated) Opcode() Opcode { return OpReportArcInitiated }
func (ReportArcInitiated) encode(f *Frame) error { return nil }

// RequestArcTermination asks the ARC Tx device to stop ARC.
type RequestArcTermination struct{}

func (RequestArcTermination) Opcode() Opcode { return OpRequestArcTermination }
func (RequestArcTermination) encode(f *Frame) error { return nil }

// ReportArcTerminated confirms ARC has stopped.
type ReportArcTerminated struct{}

func (ReportArcTerminated) Opcode() Opcode { return OpReportArcTerminated }
func (ReportArcTerminated) encode(f *Frame) error { return nil }

// InitiateArc asks the ARC Rx device to enable its ARC audio input.
type InitiateArc struct{}

func (InitiateArc) Opcode() Opcode { return OpInitiateArc }
func (InitiateArc) encode(f *Frame) error { return nil }

// TerminateArc asks the ARC Rx device to disable its ARC audio input.
type TerminateArc struct{}

func (TerminateArc) Opcode() Opcode { return OpTerminateArc }
func (TerminateArc) encode(f *Frame) error { return nil }

// GiveFeatures asks a CEC 2.0 device to broadcast its features.
type GiveFeatures struct{}

func (GiveFeatures) Opcode() Opcode { return OpGiveFeatures }
func (GiveFeatures) encode(f *Frame) error { return nil }

// ReportFeatures broadcasts a CEC 2.0 device's version, device types,
// remote-control profile and feature set. The two trailing operands
// are variable length, chained by the extension bit.
type ReportFeatures struct {
	Version        Version
	AllDeviceTypes AllDeviceTypes
	RcProfile      RcProfile
	DeviceFeatures DeviceFeatures
}

func (ReportFeatures) Opcode() Opcode { return OpReportFeatures }

func (m ReportFeatures) encode(f *Frame) error {
	if err := f.Append(byte(m.Version)); err != nil {
		return err
	}
	if err := f.Append(byte(m.AllDeviceTypes)); err != nil {
		return err
	}
	if err := f.AppendBytes(m.RcProfile); err != nil {
		return err
	}
	return f.AppendBytes(m.DeviceFeatures)
}

func decodeReportFeatures(b []byte) (Message, error) {
	if len(b) < 2 {
		return nil, errors.Wrapf(ErrInvalidParam, "report features needs at least 2 bytes, have %d", len(b))
	}
	m := ReportFeatures{Version: Version(b[0]), AllDeviceTypes: AllDeviceTypes(b[1])}

	rc, n, err := parseExt(b[2:], maxExtLen, "RC profile")
	if err != nil {
		return nil, err
	}
	m.RcProfile = RcProfile(rc)

	df, _, err := parseExt(b[2+n:], maxExtLen, "device features")
	if err != nil {
		return nil, err
	}
	m.DeviceFeatures = DeviceFeatures(df)
	return m, nil
}

// RequestCurrentLatency asks the device at the given physical address
// to broadcast its latency. With UnknownPhysicalAddress the address
// operand is omitted.
type RequestCurrentLatency struct {
	PhysicalAddress PhysicalAddress
}

func (RequestCurrentLatency) Opcode() Opcode { return OpRequestCurrentLatency }

func (m RequestCurrentLatency) encode(f *Frame) error {
	if m.PhysicalAddress == UnknownPhysicalAddress {
		return nil
	}
	return f.AppendBytes(m.PhysicalAddress[:])
}

func decodeRequestCurrentLatency(b []byte) (Message, error) {
	if len(b) == 0 {
		return RequestCurrentLatency{PhysicalAddress: UnknownPhysicalAddress}, nil
	}
	pa, err := parsePhysicalAddress(b)
	return RequestCurrentLatency{PhysicalAddress: pa}, err
}

// ReportCurrentLatency broadcasts a device's latency: the physical
// address followed by one latency structure.
type ReportCurrentLatency struct {
	PhysicalAddress PhysicalAddress
	Latency         LatencyInfo
}

func (ReportCurrentLatency) Opcode() Opcode { return OpReportCurrentLatency }

func (m ReportCurrentLatency) encode(f *Frame) error {
	if err := f.AppendBytes(m.PhysicalAddress[:]); err != nil {
		return err
	}
	return f.AppendBytes(m.Latency)
}

func decodeReportCurrentLatency(b []byte) (Message, error) {
	pa, err := parsePhysicalAddress(b)
	if err != nil {
		return nil, err
	}
	l, err := parseLatencyInfo(b[2:])
	return ReportCurrentLatency{PhysicalAddress: pa, Latency: l}, err
}

// UnknownMessage carries an opcode outside the known message set
// together with its raw operand tail, so a receiver can reply with
// Feature Abort (unrecognized opcode) and a tester can reserialize
// the frame unchanged.
type UnknownMessage struct {
	Op   Opcode
	Body []byte
}

func (m UnknownMessage) Opcode() Opcode { return m.Op }

func (m UnknownMessage) encode(f *Frame) error { return f.AppendBytes(m.Body) }
