package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// FrameBuffer is a latest-value mailbox between the capture goroutine and
// the processing loop. The producer overwrites the pending frame instead of
// blocking, and the dropped frame is closed immediately; the consumer only
// ever sees the most recent capture. Exactly one producer and one consumer
// are expected.
type FrameBuffer struct {
	mu      sync.Mutex
	frame   *gocv.Mat
	dropped uint64
}

// NewFrameBuffer creates an empty FrameBuffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Put stores frame as the pending value, closing any frame it replaces.
// The buffer takes ownership of frame.
func (b *FrameBuffer) Put(frame *gocv.Mat) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame != nil {
		b.frame.Close()
		b.dropped++
	}
	b.frame = frame
}

// Take removes and returns the pending frame, or nil if none arrived since
// the last Take. The caller owns the returned frame and must close it.
func (b *FrameBuffer) Take() *gocv.Mat {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame := b.frame
	b.frame = nil
	return frame
}

// Dropped returns how many frames were overwritten before being consumed.
func (b *FrameBuffer) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Close discards any pending frame.
func (b *FrameBuffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame != nil {
		b.frame.Close()
		b.frame = nil
	}
}
