//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Converter converts frames between two pixel formats, optionally resizing
// them, through one persistent context (bicubic unless configured).
//
// A Converter is not safe for concurrent use; its destination buffer is
// reused by every Process call.
type Converter struct {
	engine Engine
	log    *logrus.Entry

	ctx    Context
	dstBuf *PlanarBuffer

	src       ImageSpec
	dst       ImageSpec
	algorithm Algorithm

	inSize  int
	outSize int
}

// ConverterConfig contains configuration for creating a Converter.
// Formats are pipeline names ("I420", "RGBA", ...). A zero destination
// size means the source size; a zero Algorithm means AlgorithmBicubic.
type ConverterConfig struct {
	SrcWidth  int
	SrcHeight int
	SrcFormat string

	DstWidth  int
	DstHeight int
	DstFormat string

	Algorithm Algorithm
}

// NewConverter creates a converter that keeps the frame size and only
// changes the pixel format.
func NewConverter(width, height int, srcFormat, dstFormat string, opts ...Option) (*Converter, error) {
	return NewConverterWithConfig(ConverterConfig{
		SrcWidth:  width,
		SrcHeight: height,
		SrcFormat: srcFormat,
		DstFormat: dstFormat,
	}, opts...)
}

// NewConverterWithConfig creates a converter for the given configuration.
//
// Formats are checked before geometry: an unknown source name fails with
// ErrInvalidInputFormat, a source the engine cannot read with
// ErrUnsupportedInputFormat, then the same for the destination.
func NewConverterWithConfig(cfg ConverterConfig, opts ...Option) (*Converter, error) {
	o := newOptions(opts)
	if err := o.engine.Load(); err != nil {
		return nil, err
	}

	srcFmt, err := ParsePixelFormat(cfg.SrcFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInputFormat, cfg.SrcFormat)
	}
	if !o.engine.IsSupportedInput(srcFmt) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedInputFormat, cfg.SrcFormat, srcFmt)
	}
	dstFmt, err := ParsePixelFormat(cfg.DstFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOutputFormat, cfg.DstFormat)
	}
	if !o.engine.IsSupportedOutput(dstFmt) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedOutputFormat, cfg.DstFormat, dstFmt)
	}

	dstW, dstH := cfg.DstWidth, cfg.DstHeight
	if dstW == 0 && dstH == 0 {
		dstW, dstH = cfg.SrcWidth, cfg.SrcHeight
	}
	c := &Converter{
		engine:    o.engine,
		log:       o.logger,
		src:       ImageSpec{Width: cfg.SrcWidth, Height: cfg.SrcHeight, Format: srcFmt},
		dst:       ImageSpec{Width: dstW, Height: dstH, Format: dstFmt},
		algorithm: cfg.Algorithm,
	}
	if c.algorithm == 0 {
		c.algorithm = AlgorithmBicubic
	}
	if !c.src.Resolution().Valid() || !c.dst.Resolution().Valid() {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidDimensions, c.src.Resolution(), c.dst.Resolution())
	}

	if c.inSize, err = c.engine.BufferSize(c.src); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDimensions, c.src, err)
	}

	c.ctx, err = c.engine.NewContext(c.src, c.dst, c.algorithm)
	if err != nil {
		logEngineError(c.log, "new_context", err)
		return nil, fmt.Errorf("%w: %w", ErrContextCreationFailed, err)
	}

	if c.outSize, err = c.engine.BufferSize(c.dst); err != nil {
		c.release()
		logEngineError(c.log, "buffer_size", err)
		return nil, fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}
	c.dstBuf, err = c.engine.AllocImage(c.dst)
	if err != nil {
		c.release()
		logEngineError(c.log, "alloc_image", err)
		return nil, fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}

	c.log.WithFields(logrus.Fields{
		"src":       c.src.String(),
		"dst":       c.dst.String(),
		"algorithm": c.algorithm.String(),
	}).Debug("converter ready")
	return c, nil
}

// Process converts one tightly packed source frame and returns a newly
// allocated, tightly packed destination frame. input must hold at least
// InputSize bytes; extra bytes are ignored.
//
// A failed call leaves the converter usable.
func (c *Converter) Process(input []byte) ([]byte, error) {
	if c.ctx == nil {
		return nil, ErrClosed
	}
	if len(input) < c.inSize {
		return nil, fmt.Errorf("%w: got %d bytes, %s needs %d", ErrFillInputFailed, len(input), c.src, c.inSize)
	}

	src, err := c.engine.FillArrays(c.src, input)
	if err != nil {
		logEngineError(c.log, "fill_arrays", err)
		return nil, fmt.Errorf("%w: %w", ErrFillInputFailed, err)
	}
	defer src.Free()

	if err := c.ctx.Scale(src, c.dstBuf); err != nil {
		logEngineError(c.log, "scale", err)
		return nil, fmt.Errorf("%w: %w", ErrScalingFailed, err)
	}

	out := make([]byte, c.outSize)
	n, err := c.engine.CopyToBuffer(out, c.dstBuf)
	if err != nil {
		logEngineError(c.log, "copy_to_buffer", err)
		return nil, fmt.Errorf("%w: %w", ErrCopyToBufferFailed, err)
	}
	return out[:n], nil
}

// Close releases the context and the destination buffer.
// Safe to call multiple times.
func (c *Converter) Close() error {
	c.release()
	return nil
}

func (c *Converter) release() {
	c.dstBuf.Free()
	c.dstBuf = nil
	if c.ctx != nil {
		c.ctx.Free()
		c.ctx = nil
	}
}

// SrcWidth returns the source width.
func (c *Converter) SrcWidth() int { return c.src.Width }

// SrcHeight returns the source height.
func (c *Converter) SrcHeight() int { return c.src.Height }

// SrcFormat returns the source pixel format.
func (c *Converter) SrcFormat() PixelFormat { return c.src.Format }

// DstWidth returns the destination width.
func (c *Converter) DstWidth() int { return c.dst.Width }

// DstHeight returns the destination height.
func (c *Converter) DstHeight() int { return c.dst.Height }

// DstFormat returns the destination pixel format.
func (c *Converter) DstFormat() PixelFormat { return c.dst.Format }

// InputSize returns the byte size of one packed source frame.
func (c *Converter) InputSize() int { return c.inSize }

// Algorithm returns the resampling filter of the context.
func (c *Converter) Algorithm() Algorithm { return c.algorithm }

// OutputSize returns the byte size of one packed destination frame.
func (c *Converter) OutputSize() int { return c.outSize }

func (c *Converter) String() string {
	return fmt.Sprintf("Converter(%s -> %s)", c.src, c.dst)
}
