//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/obinnaokechukwu/ffswscale/avutil"
	"github.com/obinnaokechukwu/ffswscale/internal/bindings"
	"github.com/obinnaokechukwu/ffswscale/swscale"
)

// TransportAlign is the row alignment of every image crossing the API
// boundary: 1, i.e. tightly packed with no row padding.
const TransportAlign = 1

type swsEngine struct{}

// Swscale returns the Engine backed by libswscale and libavutil, loaded at
// runtime with purego.
func Swscale() Engine {
	return swsEngine{}
}

func (swsEngine) Load() error {
	if err := bindings.Load(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotLoaded, err)
	}
	if !bindings.HasSWScale() {
		return fmt.Errorf("%w: swscale library not available", ErrNotLoaded)
	}
	return nil
}

func (swsEngine) IsSupportedInput(f PixelFormat) bool {
	return swscale.IsSupportedInput(f)
}

func (swsEngine) IsSupportedOutput(f PixelFormat) bool {
	return swscale.IsSupportedOutput(f)
}

func (swsEngine) NewContext(src, dst ImageSpec, algorithm Algorithm) (Context, error) {
	ctx := swscale.GetContext(
		src.Width, src.Height, src.Format,
		dst.Width, dst.Height, dst.Format,
		int32(algorithm), nil, nil, nil,
	)
	if ctx == nil {
		return nil, errors.New("ffswscale: sws_getContext returned NULL")
	}
	return &swsContext{ctx: ctx, src: src, dst: dst}, nil
}

func (swsEngine) BufferSize(spec ImageSpec) (int, error) {
	return avutil.ImageGetBufferSize(spec.Format, spec.Width, spec.Height, TransportAlign)
}

func (swsEngine) AllocImage(spec ImageSpec) (*PlanarBuffer, error) {
	img, size, err := avutil.ImageAlloc(spec.Width, spec.Height, spec.Format, TransportAlign)
	if err != nil {
		return nil, err
	}
	block := unsafe.Slice((*byte)(img.Data[0]), size)
	planes, strides := splitPlanes(block, &img)
	return NewPlanarBuffer(spec, planes, strides, func() { avutil.ImageFree(&img) }), nil
}

func (swsEngine) FillArrays(spec ImageSpec, data []byte) (*PlanarBuffer, error) {
	img, size, err := avutil.ImageFillArrays(data, spec.Format, spec.Width, spec.Height, TransportAlign)
	if err != nil {
		return nil, err
	}
	planes, strides := splitPlanes(data[:size], &img)
	return NewPlanarBuffer(spec, planes, strides, nil), nil
}

func (swsEngine) CopyToBuffer(dst []byte, src *PlanarBuffer) (int, error) {
	var pinner runtime.Pinner
	defer pinner.Unpin()

	img := pinnedImage(&pinner, src)
	spec := src.Spec()
	return avutil.ImageCopyToBuffer(dst, img, spec.Format, spec.Width, spec.Height, TransportAlign)
}

// swsContext owns one SwsContext.
type swsContext struct {
	ctx      swscale.Context
	src, dst ImageSpec
}

func (c *swsContext) Scale(src, dst *PlanarBuffer) error {
	if c.ctx == nil {
		return ErrClosed
	}
	if src.Spec() != c.src || dst.Spec() != c.dst {
		return fmt.Errorf("%w: context %s -> %s, buffers %s -> %s",
			ErrGeometryMismatch, c.src, c.dst, src.Spec(), dst.Spec())
	}

	var pinner runtime.Pinner
	defer pinner.Unpin()

	in := pinnedImage(&pinner, src)
	out := pinnedImage(&pinner, dst)
	ret := swscale.Scale(c.ctx, &in.Data, &in.Linesize, 0, int32(c.src.Height), &out.Data, &out.Linesize)
	if ret < 0 {
		return avutil.NewError(ret, "sws_scale")
	}
	return nil
}

func (c *swsContext) Free() {
	if c.ctx == nil {
		return
	}
	swscale.FreeContext(c.ctx)
	c.ctx = nil
}

// pinnedImage builds the data/linesize arrays for b. Go-allocated planes
// (views over caller memory) and the arrays themselves are pinned so C may
// read them until pinner is unpinned; Pin is a no-op for FFmpeg memory.
func pinnedImage(pinner *runtime.Pinner, b *PlanarBuffer) *avutil.Image {
	img := new(avutil.Image)
	for i := PlaneIndex(0); i < maxPlanes; i++ {
		p := b.Plane(i)
		if len(p) == 0 {
			continue
		}
		pinner.Pin(&p[0])
		img.Data[i] = unsafe.Pointer(&p[0])
		img.Linesize[i] = int32(b.Stride(i))
	}
	pinner.Pin(img)
	return img
}

// splitPlanes cuts a contiguous image block into per-plane slices using the
// plane pointers FFmpeg laid out inside it.
func splitPlanes(block []byte, img *avutil.Image) ([4][]byte, [4]int) {
	var planes [4][]byte
	var strides [4]int

	base := uintptr(img.Data[0])
	var offsets []int
	for i := 0; i < maxPlanes && img.Data[i] != nil; i++ {
		offsets = append(offsets, int(uintptr(img.Data[i])-base))
	}
	for i, off := range offsets {
		end := len(block)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		planes[i] = block[off:end:end]
		strides[i] = int(img.Linesize[i])
	}
	return planes, strides
}
