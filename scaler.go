//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LetterboxScaler resizes I420 frames to a fixed target size while
// preserving aspect ratio, centering the resized image and painting the
// borders black.
//
// The scaled and output buffers are allocated once and reused, so a
// LetterboxScaler is not safe for concurrent use.
type LetterboxScaler struct {
	engine Engine
	log    *logrus.Entry

	ctx       Context
	scaledBuf *PlanarBuffer
	outputBuf *PlanarBuffer

	geometry Geometry
	src      ImageSpec
	scaled   ImageSpec
	output   ImageSpec

	inSize  int
	outSize int
}

// NewLetterboxScaler creates a scaler from srcWidth x srcHeight to
// targetWidth x targetHeight, both in PixelFormatYUV420P.
func NewLetterboxScaler(srcWidth, srcHeight, targetWidth, targetHeight int, opts ...Option) (*LetterboxScaler, error) {
	o := newOptions(opts)
	if err := o.engine.Load(); err != nil {
		return nil, err
	}

	g, err := ComputeGeometry(
		Resolution{Width: srcWidth, Height: srcHeight},
		Resolution{Width: targetWidth, Height: targetHeight},
	)
	if err != nil {
		return nil, err
	}

	s := &LetterboxScaler{
		engine:   o.engine,
		log:      o.logger,
		geometry: g,
		src:      yuv420p(g.Source),
		scaled:   yuv420p(g.Scaled),
		output:   yuv420p(g.Target),
	}
	if s.inSize, err = s.engine.BufferSize(s.src); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDimensions, s.src, err)
	}

	s.ctx, err = s.engine.NewContext(s.src, s.scaled, AlgorithmBilinear)
	if err != nil {
		logEngineError(s.log, "new_context", err)
		return nil, fmt.Errorf("%w: %w", ErrContextCreationFailed, err)
	}

	s.scaledBuf, err = s.engine.AllocImage(s.scaled)
	if err != nil {
		s.release()
		logEngineError(s.log, "alloc_image", err)
		return nil, fmt.Errorf("%w: %w", ErrScaledBufferAllocationFailed, err)
	}

	s.outputBuf, err = s.engine.AllocImage(s.output)
	if err == nil {
		s.outSize, err = s.engine.BufferSize(s.output)
	}
	if err != nil {
		s.release()
		logEngineError(s.log, "alloc_image", err)
		return nil, fmt.Errorf("%w: %w", ErrOutputBufferAllocationFailed, err)
	}

	s.log.WithFields(logrus.Fields{
		"geometry": g.String(),
	}).Debug("letterbox scaler ready")
	return s, nil
}

func yuv420p(r Resolution) ImageSpec {
	return ImageSpec{Width: r.Width, Height: r.Height, Format: PixelFormatYUV420P}
}

// Scale letterboxes one tightly packed I420 source frame and returns a
// newly allocated, tightly packed I420 frame of the target size. input must
// hold at least InputSize bytes; extra bytes are ignored.
//
// A failed call leaves the scaler usable.
func (s *LetterboxScaler) Scale(input []byte) ([]byte, error) {
	if s.ctx == nil {
		return nil, ErrClosed
	}
	if len(input) < s.inSize {
		return nil, fmt.Errorf("%w: got %d bytes, %s needs %d", ErrFillInputFailed, len(input), s.src, s.inSize)
	}

	src, err := s.engine.FillArrays(s.src, input)
	if err != nil {
		logEngineError(s.log, "fill_arrays", err)
		return nil, fmt.Errorf("%w: %w", ErrFillInputFailed, err)
	}
	defer src.Free()

	if err := s.ctx.Scale(src, s.scaledBuf); err != nil {
		logEngineError(s.log, "scale", err)
		return nil, fmt.Errorf("%w: %w", ErrScalingFailed, err)
	}

	if err := Pad(s.outputBuf, s.scaledBuf, s.geometry); err != nil {
		return nil, err
	}

	out := make([]byte, s.outSize)
	n, err := s.engine.CopyToBuffer(out, s.outputBuf)
	if err != nil {
		logEngineError(s.log, "copy_to_buffer", err)
		return nil, fmt.Errorf("%w: %w", ErrCopyToBufferFailed, err)
	}
	return out[:n], nil
}

// Close releases the context and both buffers.
// Safe to call multiple times.
func (s *LetterboxScaler) Close() error {
	s.release()
	return nil
}

func (s *LetterboxScaler) release() {
	s.outputBuf.Free()
	s.outputBuf = nil
	s.scaledBuf.Free()
	s.scaledBuf = nil
	if s.ctx != nil {
		s.ctx.Free()
		s.ctx = nil
	}
}

// Geometry returns the fitted geometry.
func (s *LetterboxScaler) Geometry() Geometry { return s.geometry }

// SourceResolution returns the input frame size.
func (s *LetterboxScaler) SourceResolution() Resolution { return s.geometry.Source }

// TargetResolution returns the output frame size.
func (s *LetterboxScaler) TargetResolution() Resolution { return s.geometry.Target }

// InputSize returns the byte size of one packed source frame.
func (s *LetterboxScaler) InputSize() int { return s.inSize }

// OutputSize returns the byte size of one packed output frame.
func (s *LetterboxScaler) OutputSize() int { return s.outSize }

func (s *LetterboxScaler) String() string {
	return fmt.Sprintf("LetterboxScaler(%s)", s.geometry)
}
