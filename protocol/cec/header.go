/*
NAME
  header.go

DESCRIPTION
  header.go provides the Header type, the first byte of a CEC frame
  carrying the initiator and destination logical addresses.

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
	"fmt"

	"github.com/pkg/errors"
)

// Header is the initiator and destination pair from the first byte of
// a CEC frame. A destination of AddrBroadcast addresses every device
// on the bus.
type Header struct {
	From LogicalAddress
	To   LogicalAddress
}

// byte packs the header into its wire form, initiator in the high
// nibble, destination in the low.
func (h Header) byte() byte {
	return byte(h.From&0xF)<<4 | byte(h.To&0xF)
}

// parseHeader reads the header from byte 0 of f.
func parseHeader(f *Frame) (Header, error) {
	b, err := f.At(headerOffset)
	if err != nil {
		return Header{}, errors.Wrap(err, "no header byte")
	}
	return Header{
		From: LogicalAddress(b >> 4 & 0xF),
		To:   LogicalAddress(b & 0xF),
	}, nil
}

// Broadcast reports whether the header addresses the whole bus.
func (h Header) Broadcast() bool {
	return h.To == AddrBroadcast
}

// String returns the header as "<initiator> to <destination>".
func (h Header) String() string {
	return fmt.Sprintf("%v to %v", h.From, h.To)
}
