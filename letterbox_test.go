//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStridedYUV builds an I420 buffer with extra bytes at the end of every
// row, so tests catch code that assumes stride == width.
func newStridedYUV(w, h, extra int, y, u, v byte) *PlanarBuffer {
	cw, ch := chromaSize(Resolution{w, h})
	plane := func(pw, ph int, val byte) ([]byte, int) {
		stride := pw + extra
		b := make([]byte, stride*ph)
		for i := range b {
			b[i] = 0xEE
		}
		for r := 0; r < ph; r++ {
			fillBytes(b[r*stride:r*stride+pw], val)
		}
		return b, stride
	}
	yp, ys := plane(w, h, y)
	up, us := plane(cw, ch, u)
	vp, vs := plane(cw, ch, v)
	return NewPlanarBuffer(
		ImageSpec{Width: w, Height: h, Format: PixelFormatYUV420P},
		[4][]byte{yp, up, vp},
		[4]int{ys, us, vs},
		nil,
	)
}

// checkPlane verifies that every pixel inside [x0,x1)x[y0,y1) equals inside
// and every other pixel of the w x h plane equals border.
func checkPlane(t *testing.T, name string, p []byte, stride, w, h, x0, y0, x1, y1 int, inside, border byte) {
	t.Helper()
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			want := border
			if c >= x0 && c < x1 && r >= y0 && r < y1 {
				want = inside
			}
			if got := p[r*stride+c]; got != want {
				t.Fatalf("%s(%d,%d) = %d, want %d", name, c, r, got, want)
			}
		}
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name           string
		source, target Resolution
	}{
		{"top/bottom", Resolution{360, 640}, Resolution{200, 750}},
		{"left/right", Resolution{640, 360}, Resolution{750, 200}},
		{"left/right shrunk", Resolution{1080, 1920}, Resolution{1282, 720}},
		{"top/bottom shrunk", Resolution{1920, 1080}, Resolution{1280, 722}},
		{"odd target width", Resolution{64, 64}, Resolution{101, 40}},
		{"odd target height", Resolution{64, 32}, Resolution{40, 77}},
		{"odd both", Resolution{30, 50}, Resolution{45, 45}},
		{"no padding", Resolution{64, 48}, Resolution{64, 48}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ComputeGeometry(tt.source, tt.target)
			require.NoError(t, err)

			scaled := newStridedYUV(g.Scaled.Width, g.Scaled.Height, 3, 200, 60, 90)
			output := newStridedYUV(g.Target.Width, g.Target.Height, 5, 77, 77, 77)

			require.NoError(t, Pad(output, scaled, g))

			x, y := g.Offset()
			checkPlane(t, "Y", output.Luma(), output.Stride(PlaneY),
				g.Target.Width, g.Target.Height,
				x, y, x+g.Scaled.Width, y+g.Scaled.Height,
				200, BlackLuma)

			ocw, och := chromaSize(g.Target)
			scw, sch := chromaSize(g.Scaled)
			checkPlane(t, "U", output.ChromaU(), output.Stride(PlaneU),
				ocw, och, x/2, y/2, x/2+scw, y/2+sch, 60, NeutralChroma)
			checkPlane(t, "V", output.ChromaV(), output.Stride(PlaneV),
				ocw, och, x/2, y/2, x/2+scw, y/2+sch, 90, NeutralChroma)

			// Stride padding bytes are untouched.
			assert.Equal(t, byte(0xEE), output.Luma()[g.Target.Width])
		})
	}
}

func TestPadOddOffsetTruncatesChroma(t *testing.T) {
	g, err := ComputeGeometry(Resolution{64, 64}, Resolution{101, 40})
	require.NoError(t, err)
	require.Equal(t, Resolution{38, 40}, g.Scaled)

	x, y := g.Offset()
	require.Equal(t, 31, x)
	require.Equal(t, 0, y)

	scaled := newStridedYUV(38, 40, 0, 200, 60, 90)
	output := newStridedYUV(101, 40, 0, 77, 77, 77)
	require.NoError(t, Pad(output, scaled, g))

	// Luma starts at column 31; chroma at 15, which covers luma 30 and 31.
	assert.Equal(t, BlackLuma, output.Luma()[30])
	assert.Equal(t, byte(200), output.Luma()[31])
	assert.Equal(t, NeutralChroma, output.ChromaU()[14])
	assert.Equal(t, byte(60), output.ChromaU()[15])
	assert.Equal(t, byte(60), output.ChromaU()[15+19-1])
	assert.Equal(t, NeutralChroma, output.ChromaU()[15+19])
}

func TestPadCopiesPixels(t *testing.T) {
	g, err := ComputeGeometry(Resolution{4, 2}, Resolution{8, 2})
	require.NoError(t, err)
	require.Equal(t, Resolution{4, 2}, g.Scaled)

	scaled := newStridedYUV(4, 2, 1, 0, 0, 0)
	luma := scaled.Luma()
	for r := 0; r < 2; r++ {
		for c := 0; c < 4; c++ {
			luma[r*scaled.Stride(PlaneY)+c] = byte(10*r + c + 1)
		}
	}
	output := newStridedYUV(8, 2, 0, 99, 99, 99)

	require.NoError(t, Pad(output, scaled, g))

	assert.Equal(t, []byte{0, 0, 1, 2, 3, 4, 0, 0}, output.Luma()[0:8])
	assert.Equal(t, []byte{0, 0, 11, 12, 13, 14, 0, 0}, output.Luma()[8:16])
	assert.Equal(t, []byte{128, 0, 0, 128}, output.ChromaU())
}

func TestPadRejectsMismatchedBuffers(t *testing.T) {
	g, err := ComputeGeometry(Resolution{640, 360}, Resolution{750, 200})
	require.NoError(t, err)

	good := func() (*PlanarBuffer, *PlanarBuffer) {
		return newStridedYUV(750, 200, 0, 0, 0, 0), newStridedYUV(354, 200, 0, 0, 0, 0)
	}

	t.Run("nil", func(t *testing.T) {
		_, scaled := good()
		assert.ErrorIs(t, Pad(nil, scaled, g), ErrGeometryMismatch)
	})

	t.Run("wrong scaled size", func(t *testing.T) {
		output, _ := good()
		assert.ErrorIs(t, Pad(output, newStridedYUV(350, 200, 0, 0, 0, 0), g), ErrGeometryMismatch)
	})

	t.Run("wrong format", func(t *testing.T) {
		output, scaled := good()
		rgb := NewPlanarBuffer(
			ImageSpec{Width: 750, Height: 200, Format: PixelFormatRGB24},
			[4][]byte{output.Luma(), output.ChromaU(), output.ChromaV()},
			[4]int{750, 375, 375}, nil)
		assert.ErrorIs(t, Pad(rgb, scaled, g), ErrGeometryMismatch)
	})

	t.Run("short plane", func(t *testing.T) {
		output, scaled := good()
		short := NewPlanarBuffer(output.Spec(),
			[4][]byte{output.Luma()[:100], output.ChromaU(), output.ChromaV()},
			[4]int{750, 375, 375}, nil)
		assert.ErrorIs(t, Pad(short, scaled, g), ErrGeometryMismatch)
	})

	t.Run("stride below width", func(t *testing.T) {
		output, scaled := good()
		narrow := NewPlanarBuffer(output.Spec(),
			[4][]byte{output.Luma(), output.ChromaU(), output.ChromaV()},
			[4]int{700, 375, 375}, nil)
		assert.ErrorIs(t, Pad(narrow, scaled, g), ErrGeometryMismatch)
	})
}

func TestPlanarBufferFree(t *testing.T) {
	released := 0
	b := NewPlanarBuffer(ImageSpec{Width: 2, Height: 2, Format: PixelFormatYUV420P},
		[4][]byte{make([]byte, 4), {1}, {2}}, [4]int{2, 1, 1},
		func() { released++ })

	assert.Equal(t, 3, b.NumPlanes())
	assert.Nil(t, b.Alpha())
	assert.Nil(t, b.Plane(PlaneIndex(9)))
	assert.Zero(t, b.Stride(PlaneIndex(-1)))

	b.Free()
	b.Free()
	assert.Equal(t, 1, released)
	assert.Zero(t, b.NumPlanes())

	var nilBuf *PlanarBuffer
	nilBuf.Free()
}
