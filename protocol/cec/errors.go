/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the closed set of error kinds surfaced by the CEC
  codec and driver packages.

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

// The error kinds used across the CEC packages. Callers discriminate
// with errors.Is; sites that fail wrap these with context using
// errors.Wrap, so the kind is preserved through the call chain.
var (
	// ErrInvalidParam indicates a malformed frame, an out-of-range
	// operand value, an out-of-bounds index, or an over-long operand.
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrInvalidState indicates an operation invoked while the driver
	// is not in a state that permits it.
	ErrInvalidState = errors.New("invalid state")

	// ErrIO indicates a failure reported by the native line driver.
	ErrIO = errors.New("driver I/O failure")

	// ErrNoAck indicates a directed send, or a broadcast Report
	// Physical Address, that was transmitted but not acknowledged.
	ErrNoAck = errors.New("message not acknowledged")

	// ErrAddressNotAvailable indicates a logical address assignment
	// refused by the native driver.
	ErrAddressNotAvailable = errors.New("logical address not available")
)
