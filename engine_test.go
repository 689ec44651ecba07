//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/ffswscale/avutil"
)

// memEngine is an in-memory Engine for tests. Images are tightly packed Go
// slices and scaling is nearest-neighbour per plane, so results are exact
// and nothing needs FFmpeg.
type memEngine struct {
	loadErr        error
	unsupportedIn  map[PixelFormat]bool
	unsupportedOut map[PixelFormat]bool

	failContext bool
	failAllocAt int // 1-based AllocImage call to fail, 0 = never
	failFill    bool
	failScale   bool
	failCopy    bool

	allocCalls   int
	allocs       int
	frees        int
	contexts     int
	contextFrees int
}

func newMemEngine() *memEngine {
	return &memEngine{}
}

// live reports resources not yet released.
func (e *memEngine) live() int {
	return e.allocs - e.frees + e.contexts - e.contextFrees
}

type planeDim struct{ w, h int }

// memLayout returns the byte width and row count of every plane.
func memLayout(spec ImageSpec) ([]planeDim, error) {
	w, h := spec.Width, spec.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("bad size %dx%d", w, h)
	}
	cw, ch := (w+1)/2, (h+1)/2
	switch spec.Format {
	case PixelFormatYUV420P:
		return []planeDim{{w, h}, {cw, ch}, {cw, ch}}, nil
	case PixelFormatYUVA420P:
		return []planeDim{{w, h}, {cw, ch}, {cw, ch}, {w, h}}, nil
	case PixelFormatYUV422P:
		return []planeDim{{w, h}, {cw, h}, {cw, h}}, nil
	case PixelFormatYUV444P:
		return []planeDim{{w, h}, {w, h}, {w, h}}, nil
	case PixelFormatNV12, PixelFormatNV21:
		return []planeDim{{w, h}, {2 * cw, ch}}, nil
	case PixelFormatRGB24:
		return []planeDim{{3 * w, h}}, nil
	case PixelFormatRGBA:
		return []planeDim{{4 * w, h}}, nil
	}
	return nil, fmt.Errorf("no layout for %s", spec.Format)
}

func (e *memEngine) Load() error { return e.loadErr }

func (e *memEngine) IsSupportedInput(f PixelFormat) bool { return !e.unsupportedIn[f] }

func (e *memEngine) IsSupportedOutput(f PixelFormat) bool { return !e.unsupportedOut[f] }

func (e *memEngine) NewContext(src, dst ImageSpec, algorithm Algorithm) (Context, error) {
	if e.failContext {
		return nil, errors.New("context refused")
	}
	e.contexts++
	return &memContext{engine: e, src: src, dst: dst, algorithm: algorithm}, nil
}

func (e *memEngine) BufferSize(spec ImageSpec) (int, error) {
	dims, err := memLayout(spec)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, d := range dims {
		n += d.w * d.h
	}
	return n, nil
}

func (e *memEngine) AllocImage(spec ImageSpec) (*PlanarBuffer, error) {
	e.allocCalls++
	if e.failAllocAt == e.allocCalls {
		return nil, &avutil.Error{Code: avutil.AVERROR_ENOMEM, Message: "out of memory", Op: "av_image_alloc"}
	}
	size, err := e.BufferSize(spec)
	if err != nil {
		return nil, err
	}
	e.allocs++
	return e.view(spec, make([]byte, size), func() { e.frees++ })
}

func (e *memEngine) FillArrays(spec ImageSpec, data []byte) (*PlanarBuffer, error) {
	if e.failFill {
		return nil, &avutil.Error{Code: avutil.AVERROR_EINVAL, Message: "invalid argument", Op: "av_image_fill_arrays"}
	}
	size, err := e.BufferSize(spec)
	if err != nil {
		return nil, err
	}
	if len(data) < size {
		return nil, avutil.ErrBufferTooSmall
	}
	return e.view(spec, data[:size], nil)
}

func (e *memEngine) view(spec ImageSpec, block []byte, release func()) (*PlanarBuffer, error) {
	dims, err := memLayout(spec)
	if err != nil {
		return nil, err
	}
	var planes [4][]byte
	var strides [4]int
	off := 0
	for i, d := range dims {
		n := d.w * d.h
		planes[i] = block[off : off+n : off+n]
		strides[i] = d.w
		off += n
	}
	return NewPlanarBuffer(spec, planes, strides, release), nil
}

func (e *memEngine) CopyToBuffer(dst []byte, src *PlanarBuffer) (int, error) {
	if e.failCopy {
		return 0, &avutil.Error{Code: avutil.AVERROR_EINVAL, Message: "invalid argument", Op: "av_image_copy_to_buffer"}
	}
	dims, err := memLayout(src.Spec())
	if err != nil {
		return 0, err
	}
	off := 0
	for i, d := range dims {
		p, stride := src.Plane(PlaneIndex(i)), src.Stride(PlaneIndex(i))
		for r := 0; r < d.h; r++ {
			if off+d.w > len(dst) {
				return 0, avutil.ErrBufferTooSmall
			}
			copy(dst[off:off+d.w], p[r*stride:r*stride+d.w])
			off += d.w
		}
	}
	return off, nil
}

type memContext struct {
	engine    *memEngine
	src, dst  ImageSpec
	algorithm Algorithm
	freed     bool
}

// Scale resamples each destination plane from the source plane with the same
// index (or the last source plane) by nearest neighbour on bytes.
func (c *memContext) Scale(src, dst *PlanarBuffer) error {
	if c.engine.failScale {
		return &avutil.Error{Code: avutil.AVERROR_EINVAL, Message: "invalid argument", Op: "sws_scale"}
	}
	if src.Spec() != c.src || dst.Spec() != c.dst {
		return ErrGeometryMismatch
	}
	sdims, err := memLayout(c.src)
	if err != nil {
		return err
	}
	ddims, err := memLayout(c.dst)
	if err != nil {
		return err
	}
	for i, dd := range ddims {
		si := i
		if si >= len(sdims) {
			si = len(sdims) - 1
		}
		sd := sdims[si]
		sp, ss := src.Plane(PlaneIndex(si)), src.Stride(PlaneIndex(si))
		dp, ds := dst.Plane(PlaneIndex(i)), dst.Stride(PlaneIndex(i))
		for r := 0; r < dd.h; r++ {
			sr := r * sd.h / dd.h
			for col := 0; col < dd.w; col++ {
				dp[r*ds+col] = sp[sr*ss+col*sd.w/dd.w]
			}
		}
	}
	return nil
}

func (c *memContext) Free() {
	if c.freed {
		return
	}
	c.freed = true
	c.engine.contextFrees++
}
