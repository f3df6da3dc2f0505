// Package progress turns byte or line counts into the fraction-complete
// signal reported by split and merge operations.
package progress

import (
	"context"
	"errors"
	"io"
)

// BufferSize is the streaming buffer used for byte copies.
const BufferSize = 32 * 1024

// Func receives the completed fraction in [0,1]. It runs on the goroutine
// executing the operation.
type Func func(fraction float64)

// Tracker accumulates work units against a known total and reports a
// monotonically non-decreasing fraction. A nil Func is allowed.
type Tracker struct {
	fn    Func
	total int64
	done  int64
	last  float64
}

func NewTracker(total int64, fn Func) *Tracker {
	return &Tracker{fn: fn, total: total, last: -1}
}

// Add records n more units of work and reports progress.
func (t *Tracker) Add(n int64) {
	t.done += n
	if t.total <= 0 {
		return
	}
	f := float64(t.done) / float64(t.total)
	if f > 1 {
		f = 1
	}
	t.report(f)
}

// Done returns the units recorded so far.
func (t *Tracker) Done() int64 { return t.done }

// Finish reports completion unless 1.0 was already reported.
func (t *Tracker) Finish() {
	t.report(1)
}

func (t *Tracker) report(f float64) {
	if f < t.last || (f == t.last && f == 1) {
		return
	}
	t.last = f
	if t.fn != nil {
		t.fn(f)
	}
}

// Copy streams src into dst through buf, adding every written block to t.
// ctx is checked between blocks. Read errors are returned as ReadError so
// callers can tell which side failed.
func Copy(ctx context.Context, dst io.Writer, src io.Reader, buf []byte, t *Tracker) (int64, error) {
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, werr
			}
			if w != n {
				return written, io.ErrShortWrite
			}
			t.Add(int64(n))
		}
		if errors.Is(rerr, io.EOF) {
			return written, nil
		}
		if rerr != nil {
			return written, &ReadError{Err: rerr}
		}
	}
}

// ReadError marks a failure on the reading side of Copy.
type ReadError struct{ Err error }

func (e *ReadError) Error() string { return e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }
