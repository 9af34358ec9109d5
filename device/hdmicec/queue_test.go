/*
NAME
  queue_test.go

DESCRIPTION
  queue_test.go tests the blocking frame FIFO: ordering, blocking
  behaviour and shutdown.

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
	"errors"
	"testing"
	"time"

	"github.com/ausocean/cec/protocol/cec"
)

// TestQueueFIFO checks that frames come out in the order they went
// in.
func TestQueueFIFO(t *testing.T) {
	q := newFrameQueue()
	for i := 0; i < 5; i++ {
		f, _ := cec.NewFrame([]byte{byte(i)})
		if err := q.offer(f); err != nil {
			t.Fatalf("unexpected error offering frame %d: %v", i, err)
		}
	}
	for i := 0; i < 5; i++ {
		f, ok := q.poll()
		if !ok {
			t.Fatal("queue unexpectedly closed")
		}
		b, _ := f.At(0)
		if b != byte(i) {
			t.Errorf("unexpected frame order. Got: %v\n Want: %v\n", b, i)
		}
	}
}

// TestQueueBlockingPoll checks that a reader blocked on an empty
// queue is woken by an offer.
func TestQueueBlockingPoll(t *testing.T) {
	q := newFrameQueue()
	done := make(chan *cec.Frame)
	go func() {
		f, ok := q.poll()
		if !ok {
			t.Error("queue unexpectedly closed")
		}
		done <- f
	}()

	// Give the reader a chance to block before the offer.
	time.Sleep(10 * time.Millisecond)
	want, _ := cec.NewFrame([]byte{0x40})
	if err := q.offer(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case f := <-done:
		if !f.Equal(want) {
			t.Errorf("unexpected frame: %v", f)
		}
	case <-time.After(time.Second):
		t.Fatal("reader did not wake")
	}
}

// TestQueueClose checks that closing wakes a blocked reader, that
// offers after close fail, and that later polls report closed.
func TestQueueClose(t *testing.T) {
	q := newFrameQueue()
	woken := make(chan bool)
	go func() {
		_, ok := q.poll()
		woken <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.close()

	select {
	case ok := <-woken:
		if ok {
			t.Error("expected poll to report closed")
		}
	case <-time.After(time.Second):
		t.Fatal("reader did not wake on close")
	}

	f, _ := cec.NewFrame([]byte{0x40})
	if err := q.offer(f); !errors.Is(err, cec.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState offering to closed queue, got: %v", err)
	}

	if _, ok := q.poll(); ok {
		t.Error("expected poll on closed queue to report closed")
	}
}

// TestQueueCloseDrains checks that frames still queued at close are
// discarded rather than delivered.
func TestQueueCloseDrains(t *testing.T) {
	q := newFrameQueue()
	f, _ := cec.NewFrame([]byte{0x40})
	if err := q.offer(f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q.close()
	if _, ok := q.poll(); ok {
		t.Error("expected poll to discard queued frames after close")
	}
	if q.size() != 0 {
		t.Errorf("expected empty queue after drain, have %d frames", q.size())
	}
}

// TestQueueBound checks that the queue refuses frames past its bound.
func TestQueueBound(t *testing.T) {
	q := newFrameQueue()
	f, _ := cec.NewFrame([]byte{0x40})
	for i := 0; i < maxQueued; i++ {
		if err := q.offer(f); err != nil {
			t.Fatalf("unexpected error at frame %d: %v", i, err)
		}
	}
	if err := q.offer(f); !errors.Is(err, cec.ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam offering past bound, got: %v", err)
	}
}
