/*
NAME
  sim.go

DESCRIPTION
  sim.go provides Sim, an in-memory Native implementation modelling a
  small CEC bus. It allows the driver, and tools built on it, to run
  without CEC hardware.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package hdmicec

import (
	"sync"

	"github.com/ausocean/cec/protocol/cec"
)

// simHandle is the handle value issued by Sim.
const simHandle = 1

// Sim is a Native modelling a bus with a fixed set of present
// devices. Directed frames to a present device are acknowledged and
// answered where the device has an obvious reply; frames to an absent
// device are sent but not acknowledged. Broadcast frames are not
// acknowledged, as on a real bus.
type Sim struct {
	mu      sync.Mutex
	opened  bool
	rx      RxFunc
	tx      TxFunc
	present map[cec.LogicalAddress]cec.PhysicalAddress
	held    []cec.LogicalAddress
	physical cec.PhysicalAddress
}

// NewSim returns a Sim with the given devices present on the bus.
// The simulated device itself sits at physical address 1.0.0.0.
func NewSim(present map[cec.LogicalAddress]cec.PhysicalAddress) *Sim {
	if present == nil {
		present = map[cec.LogicalAddress]cec.PhysicalAddress{
			cec.AddrTV: cec.NewPhysicalAddress(0, 0, 0, 0),
		}
	}
	return &Sim{present: present, physical: cec.NewPhysicalAddress(1, 0, 0, 0)}
}

// Open implements Native.Open.
func (s *Sim) Open() (int, Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opened {
		return 0, ResultInvalidState
	}
	s.opened = true
	return simHandle, ResultSuccess
}

// Close implements Native.Close.
func (s *Sim) Close(handle int) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened || handle != simHandle {
		return ResultInvalidHandle
	}
	s.opened = false
	s.held = nil
	return ResultSuccess
}

// Tx implements Native.Tx against the simulated bus.
func (s *Sim) Tx(handle int, data []byte) (send, res Result) {
	s.mu.Lock()
	if !s.opened || handle != simHandle {
		s.mu.Unlock()
		return ResultGeneralError, ResultInvalidHandle
	}
	if len(data) == 0 {
		s.mu.Unlock()
		return ResultGeneralError, ResultInvalidArgument
	}
	to := cec.LogicalAddress(data[0] & 0x0F)
	pa, ok := s.present[to]
	rx := s.rx
	s.mu.Unlock()

	if to == cec.AddrBroadcast {
		return ResultSentButNotAcked, ResultSuccess
	}
	if !ok {
		return ResultSentButNotAcked, ResultSuccess
	}
	if reply := simReply(data, to, pa); reply != nil && rx != nil {
		go rx(reply)
	}
	return ResultSuccess, ResultSuccess
}

// TxAsync implements Native.TxAsync. The outcome is delivered on a
// separate goroutine, as a real driver delivers it on its own thread.
func (s *Sim) TxAsync(handle int, data []byte) Result {
	buf := make([]byte, len(data))
	copy(buf, data)
	go func() {
		send, res := s.Tx(handle, buf)
		s.mu.Lock()
		tx := s.tx
		s.mu.Unlock()
		if tx == nil {
			return
		}
		if res != ResultSuccess {
			tx(res)
			return
		}
		tx(send)
	}()
	return ResultSuccess
}

// SetRxCallback implements Native.SetRxCallback.
func (s *Sim) SetRxCallback(handle int, fn RxFunc) {
	s.mu.Lock()
	s.rx = fn
	s.mu.Unlock()
}

// SetTxCallback implements Native.SetTxCallback.
func (s *Sim) SetTxCallback(handle int, fn TxFunc) {
	s.mu.Lock()
	s.tx = fn
	s.mu.Unlock()
}

// AddLogicalAddress implements Native.AddLogicalAddress. An address
// already present on the simulated bus is unavailable.
func (s *Sim) AddLogicalAddress(handle int, la cec.LogicalAddress) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened || handle != simHandle {
		return ResultInvalidHandle
	}
	if _, ok := s.present[la]; ok {
		return ResultAddressUnavailable
	}
	s.held = append(s.held, la)
	return ResultSuccess
}

// RemoveLogicalAddress implements Native.RemoveLogicalAddress.
func (s *Sim) RemoveLogicalAddress(handle int, la cec.LogicalAddress) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.held {
		if a == la {
			s.held = append(s.held[:i], s.held[i+1:]...)
			break
		}
	}
	return ResultSuccess
}

// GetLogicalAddress implements Native.GetLogicalAddress, returning
// the first held address, or unregistered when none is held.
func (s *Sim) GetLogicalAddress(handle int) (cec.LogicalAddress, Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.held) == 0 {
		return cec.AddrUnregistered, ResultSuccess
	}
	return s.held[0], ResultSuccess
}

// GetPhysicalAddress implements Native.GetPhysicalAddress.
func (s *Sim) GetPhysicalAddress(handle int) (cec.PhysicalAddress, Result) {
	return s.physical, ResultSuccess
}

// simReply builds a present device's response to a directed frame, or
// nil where the device would not respond.
func simReply(data []byte, from cec.LogicalAddress, pa cec.PhysicalAddress) []byte {
	f, err := cec.NewFrame(data)
	if err != nil {
		return nil
	}
	h, m, err := cec.Decode(f)
	if err != nil {
		return nil
	}

	var reply cec.Message
	to := h.From
	switch m.(type) {
	case cec.Polling:
		return nil
	case cec.GivePhysicalAddress:
		t, _ := from.Type()
		reply = cec.ReportPhysicalAddress{PhysicalAddress: pa, DeviceType: t}
		to = cec.AddrBroadcast
	case cec.GiveDevicePowerStatus:
		reply = cec.ReportPowerStatus{Status: cec.PowerOn}
	case cec.GetCECVersion:
		reply = cec.CECVersion{Version: cec.Version1_4}
	case cec.GiveOSDName:
		reply = cec.SetOSDName{Name: "SimDevice"}
	default:
		return nil
	}

	out, err := cec.Encode(cec.Header{From: from, To: to}, reply)
	if err != nil {
		return nil
	}
	return out.Bytes()
}
