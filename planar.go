//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import "fmt"

// ImageSpec is the geometry and pixel format of an image.
type ImageSpec struct {
	Width  int
	Height int
	Format PixelFormat
}

// Resolution returns the spec's size.
func (s ImageSpec) Resolution() Resolution {
	return Resolution{Width: s.Width, Height: s.Height}
}

func (s ImageSpec) String() string {
	return fmt.Sprintf("%dx%d:%s", s.Width, s.Height, s.Format)
}

// PlaneIndex selects one plane of a PlanarBuffer.
type PlaneIndex int

// Plane indices for planar YUV layouts. Packed formats use PlaneY only;
// semi-planar formats (NV12/NV21) use PlaneY and PlaneU.
const (
	PlaneY PlaneIndex = iota
	PlaneU
	PlaneV
	PlaneA

	maxPlanes = 4
)

// PlanarBuffer is an image stored as up to four planes with per-plane
// strides (linesizes).
//
// A buffer either owns its memory (allocated by an Engine and released by
// Free) or is a view over memory owned by someone else, in which case Free
// only drops the references.
type PlanarBuffer struct {
	spec    ImageSpec
	planes  [maxPlanes][]byte
	strides [maxPlanes]int
	release func()
}

// NewPlanarBuffer assembles a buffer from planes and strides. release, if
// non-nil, is called once by Free. Engines use this to hand out buffers;
// callers can use it to wrap their own memory for Pad.
func NewPlanarBuffer(spec ImageSpec, planes [4][]byte, strides [4]int, release func()) *PlanarBuffer {
	return &PlanarBuffer{
		spec:    spec,
		planes:  planes,
		strides: strides,
		release: release,
	}
}

// Spec returns the buffer's geometry and format.
func (b *PlanarBuffer) Spec() ImageSpec { return b.spec }

// Width returns the image width in pixels.
func (b *PlanarBuffer) Width() int { return b.spec.Width }

// Height returns the image height in pixels.
func (b *PlanarBuffer) Height() int { return b.spec.Height }

// Format returns the pixel format.
func (b *PlanarBuffer) Format() PixelFormat { return b.spec.Format }

// Plane returns the bytes of plane i, or nil if the format has no such plane.
func (b *PlanarBuffer) Plane(i PlaneIndex) []byte {
	if i < 0 || i >= maxPlanes {
		return nil
	}
	return b.planes[i]
}

// Stride returns the linesize of plane i in bytes.
func (b *PlanarBuffer) Stride(i PlaneIndex) int {
	if i < 0 || i >= maxPlanes {
		return 0
	}
	return b.strides[i]
}

// Luma returns the Y plane.
func (b *PlanarBuffer) Luma() []byte { return b.planes[PlaneY] }

// ChromaU returns the U (Cb) plane.
func (b *PlanarBuffer) ChromaU() []byte { return b.planes[PlaneU] }

// ChromaV returns the V (Cr) plane.
func (b *PlanarBuffer) ChromaV() []byte { return b.planes[PlaneV] }

// Alpha returns the alpha plane, nil for formats without one.
func (b *PlanarBuffer) Alpha() []byte { return b.planes[PlaneA] }

// NumPlanes returns the number of non-empty planes.
func (b *PlanarBuffer) NumPlanes() int {
	n := 0
	for _, p := range b.planes {
		if len(p) > 0 {
			n++
		}
	}
	return n
}

// Free releases the buffer's memory if it owns any and drops all plane
// references. Safe to call on nil and more than once.
func (b *PlanarBuffer) Free() {
	if b == nil {
		return
	}
	if b.release != nil {
		b.release()
		b.release = nil
	}
	b.planes = [maxPlanes][]byte{}
	b.strides = [maxPlanes]int{}
}
