/*
NAME
  driver.go

DESCRIPTION
  driver.go provides Driver, the shim between the native HDMI-CEC line
  driver and application code. The driver owns the incoming frame
  queue, performs synchronous and asynchronous transmission with
  NACK-aware result translation, and tracks the logical addresses held
  by this device.

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

// Package hdmicec provides access to an HDMI-CEC bus through a
// platform native line driver. Frames read from and written to the
// bus are raw cec.Frame values; the protocol/cec package encodes and
// decodes them.
package hdmicec

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/ausocean/cec/protocol/cec"
	"github.com/ausocean/utils/logging"
)

const pkg = "hdmicec: "

// Driver states. "opened" means the native handle is live and frames
// flow; "closing" means a close is underway and blocked readers are
// being woken; "closed" means the native handle is released.
const (
	closed = iota
	closing
	opened
)

// Driver is the shim over the native line driver. It is safe for use
// by multiple goroutines; the native driver's callbacks may arrive on
// any thread.
type Driver struct {
	l      logging.Logger       // Logger for the driver's routines to log to.
	mu     sync.Mutex           // Guards status, handle and addrs.
	status uint8                // One of closed, closing, opened.
	native Native               // The platform line driver.
	handle int                  // Native handle, valid while opened.
	queue  *frameQueue          // Incoming frames from the receive callback.
	addrs  []cec.LogicalAddress // Logical addresses held by this device.
}

// New returns a Driver over the given native line driver which has
// its logger set as the given logger.
func New(n Native, l logging.Logger) *Driver {
	return &Driver{l: l, native: n, queue: newFrameQueue()}
}

// Open acquires the native driver and registers the receive and
// transmit callbacks. Open on an already opened driver is a no-op.
func (d *Driver) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != closed {
		return nil
	}

	handle, res := d.native.Open()
	if res != ResultSuccess {
		return errors.Wrapf(cec.ErrIO, "could not open native driver: %v", res)
	}
	d.handle = handle
	d.queue = newFrameQueue()
	d.native.SetRxCallback(handle, d.receive)
	d.native.SetTxCallback(handle, d.transmitted)
	d.status = opened
	d.l.Debug(pkg + "driver opened")
	return nil
}

// Close wakes any blocked readers, releases the native driver and
// discards queued frames. Close on a driver that is not opened is a
// no-op.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != opened {
		return nil
	}
	d.status = closing

	// Wake readers blocked in Read before the handle goes away.
	d.queue.close()

	if res := d.native.Close(d.handle); res != ResultSuccess {
		return errors.Wrapf(cec.ErrIO, "could not close native driver: %v", res)
	}
	d.status = closed
	d.l.Debug(pkg + "driver closed")
	return nil
}

// Read blocks until a frame arrives from the bus and copies it into
// f, replacing f's contents. If the driver is closed while Read is
// blocked, Read discards any queued frames and fails with
// cec.ErrInvalidState.
func (d *Driver) Read(f *cec.Frame) error {
	d.mu.Lock()
	if d.status != opened {
		d.mu.Unlock()
		return errors.Wrap(cec.ErrInvalidState, "read on driver that is not opened")
	}
	q := d.queue
	d.mu.Unlock()

	in, ok := q.poll()
	if !ok {
		return errors.Wrap(cec.ErrInvalidState, "driver closed while reading")
	}
	f.Reset()
	return f.AppendBytes(in.Bytes())
}

// Write transmits a frame synchronously and waits for the line-level
// outcome. A directed frame that is sent but not acknowledged fails
// with cec.ErrNoAck. A broadcast frame that is not acknowledged is a
// success, except for Report Physical Address, whose NACK is
// surfaced as cec.ErrNoAck so the caller can retry it once.
func (d *Driver) Write(f *cec.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != opened {
		return errors.Wrap(cec.ErrInvalidState, "write on driver that is not opened")
	}
	d.logFrame(f)

	send, res := d.native.Tx(d.handle, f.Bytes())
	if res != ResultSuccess {
		return errors.Wrapf(cec.ErrIO, "native transmit failed: %v", res)
	}

	switch send {
	case ResultSuccess:
		return nil
	case ResultSentButNotAcked:
		b0, err := f.At(0)
		if err != nil {
			return errors.Wrap(err, "no header byte in transmitted frame")
		}
		directed := b0&0x0F != 0x0F
		if directed {
			return errors.Wrap(cec.ErrNoAck, "directed send not acknowledged")
		}
		// CEC CTS 9-3-3: a broadcast Report Physical Address that is
		// negatively acknowledged must be retried, so its NACK is
		// surfaced to the caller.
		if b1, err := f.At(1); err == nil && cec.Opcode(b1) == cec.OpReportPhysicalAddress {
			return errors.Wrap(cec.ErrNoAck, "broadcast report physical address not acknowledged")
		}
		return nil
	default:
		return errors.Wrapf(cec.ErrIO, "transmit result: %v", send)
	}
}

// WriteAsync hands a frame to the native driver for asynchronous
// transmission. The outcome arrives on the transmit callback and is
// logged; WriteAsync does not wait for the acknowledgment.
func (d *Driver) WriteAsync(f *cec.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != opened {
		return errors.Wrap(cec.ErrInvalidState, "write on driver that is not opened")
	}
	d.logFrame(f)

	if res := d.native.TxAsync(d.handle, f.Bytes()); res != ResultSuccess {
		return errors.Wrapf(cec.ErrIO, "native async transmit failed: %v", res)
	}
	return nil
}

// AddLogicalAddress claims a logical address on the bus and records
// it in the driver's held set.
func (d *Driver) AddLogicalAddress(la cec.LogicalAddress) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != opened {
		return errors.Wrap(cec.ErrInvalidState, "add logical address on driver that is not opened")
	}

	switch res := d.native.AddLogicalAddress(d.handle, la); res {
	case ResultAddressUnavailable:
		return errors.Wrapf(cec.ErrAddressNotAvailable, "%v refused", la)
	case ResultSuccess:
		d.addrs = append(d.addrs, la)
		d.l.Info(pkg+"acquired logical address", "address", la.String())
		return nil
	default:
		return errors.Wrapf(cec.ErrIO, "could not add %v: %v", la, res)
	}
}

// RemoveLogicalAddress releases a logical address. Removing an
// address that is not held is not an error.
func (d *Driver) RemoveLogicalAddress(la cec.LogicalAddress) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != opened {
		return errors.Wrap(cec.ErrInvalidState, "remove logical address on driver that is not opened")
	}

	for i, a := range d.addrs {
		if a == la {
			d.addrs = append(d.addrs[:i], d.addrs[i+1:]...)
			break
		}
	}
	d.native.RemoveLogicalAddress(d.handle, la)
	return nil
}

// IsValidLogicalAddress reports whether la is held by this device.
func (d *Driver) IsValidLogicalAddress(la cec.LogicalAddress) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.addrs {
		if a == la {
			return true
		}
	}
	return false
}

// LogicalAddresses returns a snapshot of the logical addresses held
// by this device.
func (d *Driver) LogicalAddresses() []cec.LogicalAddress {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]cec.LogicalAddress, len(d.addrs))
	copy(out, d.addrs)
	return out
}

// LogicalAddress returns the logical address held by the native
// driver. The native driver is not queried per device type; t only
// appears in the error message.
func (d *Driver) LogicalAddress(t cec.DeviceType) (cec.LogicalAddress, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != opened {
		return 0, errors.Wrap(cec.ErrInvalidState, "get logical address on driver that is not opened")
	}
	la, res := d.native.GetLogicalAddress(d.handle)
	if res != ResultSuccess {
		return 0, errors.Wrapf(cec.ErrIO, "could not get logical address for %v: %v", t, res)
	}
	return la, nil
}

// PhysicalAddress returns the device's physical address from the HDMI
// topology.
func (d *Driver) PhysicalAddress() (cec.PhysicalAddress, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != opened {
		return cec.PhysicalAddress{}, errors.Wrap(cec.ErrInvalidState, "get physical address on driver that is not opened")
	}
	pa, res := d.native.GetPhysicalAddress(d.handle)
	if res != ResultSuccess {
		return cec.PhysicalAddress{}, errors.Wrapf(cec.ErrIO, "could not get physical address: %v", res)
	}
	return pa, nil
}

// Poll probes a logical address with the header-only polling message.
// An error of kind cec.ErrNoAck means no device acknowledged at to,
// so the address is free; nil means the address is occupied. The
// interpretation is the caller's.
func (d *Driver) Poll(from, to cec.LogicalAddress) error {
	var f cec.Frame
	if err := f.Append(byte(from&0xF)<<4 | byte(to&0xF)); err != nil {
		return err
	}
	d.l.Debug(pkg+"polling", "from", from.String(), "to", to.String())
	return d.Write(&f)
}

// receive is the native driver's receive callback. It copies the
// frame into the incoming queue. Errors never propagate to the native
// driver: an unqueueable frame is logged and dropped.
func (d *Driver) receive(data []byte) {
	f, err := cec.NewFrame(data)
	if err != nil {
		d.l.Warning(pkg+"dropping received frame", "error", err.Error(), "length", len(data))
		return
	}
	d.l.Debug(pkg+"received frame", "frame", f.String())
	if err := d.queue.offer(f); err != nil {
		d.l.Warning(pkg+"could not queue received frame, discarding", "error", err.Error())
	}
}

// transmitted is the native driver's transmit callback for
// asynchronous sends. Failures are logged; driver state is unchanged.
func (d *Driver) transmitted(res Result) {
	if res != ResultSuccess {
		d.l.Warning(pkg+"async transmit failed", "result", res.String())
	}
}

// logFrame logs an outgoing frame as "<from> to <to>: opcode" with
// the raw bytes.
func (d *Driver) logFrame(f *cec.Frame) {
	h, m, err := cec.Decode(f)
	if err != nil {
		d.l.Debug(pkg+"sending frame", "frame", f.String())
		return
	}
	d.l.Info(pkg+"sending frame", "header", h.String(), "opcode", m.Opcode().String(), "frame", f.String())
}
