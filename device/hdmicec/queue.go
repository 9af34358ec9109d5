/*
NAME
  queue.go

DESCRIPTION
  queue.go provides the blocking FIFO that carries received frames
  from the native driver's callback thread to readers of the driver.

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

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/ausocean/cec/protocol/cec"
)

// maxQueued bounds the number of frames held for readers. The bus
// delivers at most a few hundred bytes per second, so a reader this
// far behind has stopped.
const maxQueued = 64

// frameQueue is a bounded blocking FIFO of frames with a closed flag.
// offer never blocks; poll blocks until a frame is available or the
// queue is closed. Closing wakes all blocked readers.
type frameQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	frames []*cec.Frame
	closed bool
}

func newFrameQueue() *frameQueue {
	q := &frameQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// offer appends a frame to the queue and wakes one reader.
func (q *frameQueue) offer(f *cec.Frame) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return errors.Wrap(cec.ErrInvalidState, "queue closed")
	}
	if len(q.frames) >= maxQueued {
		return errors.Wrapf(cec.ErrInvalidParam, "queue full at %d frames", maxQueued)
	}
	q.frames = append(q.frames, f)
	q.cond.Signal()
	return nil
}

// poll removes and returns the oldest frame, blocking while the queue
// is empty and open. Once the queue is closed, poll discards any
// remaining frames and reports !ok, and every subsequent call reports
// !ok immediately.
func (q *frameQueue) poll() (f *cec.Frame, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.frames) == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		q.frames = nil
		return nil, false
	}
	f = q.frames[0]
	q.frames = q.frames[1:]
	return f, true
}

// size returns the number of queued frames.
func (q *frameQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

// close marks the queue closed and wakes all blocked readers.
func (q *frameQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
