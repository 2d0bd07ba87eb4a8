package playground

import (
	"context"
	"errors"
	"io"
	"sync"
)

// chanReader is the line source of a playground run. Lines arrive from the
// connection's read loop; ReadLine blocks until one is queued, the run is
// cancelled or the queue is closed.
type chanReader struct {
	lines chan string

	mu     sync.Mutex
	closed bool
}

func newChanReader(capacity int) *chanReader {
	return &chanReader{lines: make(chan string, capacity)}
}

// errInputClosed is returned by push after close
var errInputClosed = errors.New("input is closed")

// errInputFull is returned by push when the queue has no free slot
var errInputFull = errors.New("input queue is full")

// push queues a line without blocking
func (r *chanReader) push(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errInputClosed
	}
	select {
	case r.lines <- line:
		return nil
	default:
		return errInputFull
	}
}

// close makes pending and future reads return io.EOF once the queue drains.
// Closing twice is a no-op.
func (r *chanReader) close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.closed {
		r.closed = true
		close(r.lines)
	}
}

func (r *chanReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}
