/*
NAME
  native.go

DESCRIPTION
  native.go defines the interface to the platform's native HDMI-CEC
  line driver and the status codes it reports.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package hdmicec

import "github.com/ausocean/cec/protocol/cec"

// Result is a status code reported by the native line driver, for
// both the call itself and the outcome of a transmission.
type Result int

// Native driver status codes.
const (
	ResultSuccess Result = iota
	ResultInvalidState
	ResultInvalidArgument
	ResultInvalidHandle
	ResultAddressUnavailable
	ResultSentFailed
	ResultSentButNotAcked
	ResultGeneralError
)

func (r Result) String() string {
	names := [...]string{
		"success",
		"invalid state",
		"invalid argument",
		"invalid handle",
		"logical address unavailable",
		"sent failed",
		"sent but not acknowledged",
		"general error",
	}
	if int(r) >= len(names) {
		return "unknown"
	}
	return names[r]
}

// RxFunc receives the raw bytes of one frame from the native driver.
// It is invoked on a thread of the native driver's choosing.
type RxFunc func(data []byte)

// TxFunc receives the outcome of an asynchronous transmission. It is
// invoked on a thread of the native driver's choosing.
type TxFunc func(res Result)

// Native is the platform HDMI-CEC line driver consumed by Driver. The
// native driver performs bus arbitration and line-level timing; this
// interface carries whole frames and status codes only.
type Native interface {
	// Open acquires the driver and returns a handle for subsequent
	// calls.
	Open() (handle int, res Result)

	// Close releases the driver.
	Close(handle int) Result

	// Tx transmits a frame synchronously. The first result is the
	// outcome of the transmission; the second is the status of the
	// call itself.
	Tx(handle int, data []byte) (send, res Result)

	// TxAsync queues a frame for transmission. The outcome is
	// delivered to the registered TxFunc.
	TxAsync(handle int, data []byte) Result

	// SetRxCallback registers the receiver of incoming frames.
	SetRxCallback(handle int, fn RxFunc)

	// SetTxCallback registers the receiver of asynchronous
	// transmission outcomes.
	SetTxCallback(handle int, fn TxFunc)

	// AddLogicalAddress claims a logical address on the bus.
	AddLogicalAddress(handle int, la cec.LogicalAddress) Result

	// RemoveLogicalAddress releases a claimed logical address.
	RemoveLogicalAddress(handle int, la cec.LogicalAddress) Result

	// GetLogicalAddress returns the logical address held by the
	// driver.
	GetLogicalAddress(handle int) (cec.LogicalAddress, Result)

	// GetPhysicalAddress returns the device's physical address from
	// the HDMI topology.
	GetPhysicalAddress(handle int) (cec.PhysicalAddress, Result)
}
