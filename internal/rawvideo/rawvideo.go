// Package rawvideo moves headerless raw video streams (concatenated, tightly
// packed frames of a fixed size) between io.Readers and io.Writers.
package rawvideo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrShortFrame is returned when a stream ends in the middle of a frame.
var ErrShortFrame = errors.New("rawvideo: stream ends with a partial frame")

// Reader reads fixed-size frames.
type Reader struct {
	r         *bufio.Reader
	frameSize int
	frames    int
}

// NewReader returns a Reader for frames of frameSize bytes.
func NewReader(r io.Reader, frameSize int) (*Reader, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("rawvideo: invalid frame size %d", frameSize)
	}
	return &Reader{r: bufio.NewReaderSize(r, frameSize), frameSize: frameSize}, nil
}

// FrameSize returns the size of one frame in bytes.
func (r *Reader) FrameSize() int { return r.frameSize }

// Frames returns the number of complete frames read so far.
func (r *Reader) Frames() int { return r.frames }

// ReadFrame reads the next frame into a new slice. It returns io.EOF at a
// clean end of stream and ErrShortFrame if the stream stops mid-frame.
func (r *Reader) ReadFrame() ([]byte, error) {
	buf := make([]byte, r.frameSize)
	_, err := io.ReadFull(r.r, buf)
	switch {
	case err == nil:
		r.frames++
		return buf, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("%w: after %d frames", ErrShortFrame, r.frames)
	default:
		return nil, err
	}
}

// Writer writes frames through a buffer. Call Flush when done.
type Writer struct {
	w      *bufio.Writer
	frames int
	bytes  int64
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteFrame writes one frame.
func (w *Writer) WriteFrame(frame []byte) error {
	n, err := w.w.Write(frame)
	w.bytes += int64(n)
	if err != nil {
		return err
	}
	w.frames++
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Frames returns the number of frames written.
func (w *Writer) Frames() int { return w.frames }

// Bytes returns the number of bytes written.
func (w *Writer) Bytes() int64 { return w.bytes }

// FrameFunc transforms one input frame into one output frame.
type FrameFunc func(frame []byte) ([]byte, error)

// Pump reads frames from r, passes each through fn and writes the result to
// w until r is exhausted, fn or I/O fails, or ctx is done. The context is
// checked between frames. w is flushed before Pump returns. It returns the
// number of frames written.
func Pump(ctx context.Context, r *Reader, w *Writer, fn FrameFunc) (int, error) {
	err := pump(ctx, r, w, fn)
	if ferr := w.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	return w.Frames(), err
}

func pump(ctx context.Context, r *Reader, w *Writer, fn FrameFunc) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		in, err := r.ReadFrame()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		out, err := fn(in)
		if err != nil {
			return fmt.Errorf("frame %d: %w", r.Frames()-1, err)
		}
		if err := w.WriteFrame(out); err != nil {
			return fmt.Errorf("writing frame %d: %w", r.Frames()-1, err)
		}
	}
}
