//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import "fmt"

// Border values for YUV 4:2:0 letterboxing.
const (
	BlackLuma     byte = 0
	NeutralChroma byte = 128
)

// Pad centers scaled inside output according to g and paints everything
// outside the scaled image with BlackLuma / NeutralChroma.
//
// Both buffers must be PixelFormatYUV420P with the sizes recorded in g
// (output = g.Target, scaled = g.Scaled). Chroma planes are handled with
// halved offsets; chroma rows and columns not covered by the scaled image
// are filled, including the extra column/row of odd-sized targets.
//
// An odd luma offset is truncated for chroma (x/2, y/2), so the scaled
// chroma then starts one luma pixel, half a chroma sample, ahead of the
// scaled luma.
func Pad(output, scaled *PlanarBuffer, g Geometry) error {
	if err := checkPadBuffers(output, scaled, g); err != nil {
		return err
	}

	x, y := g.Offset()

	padPlane(
		output.Luma(), output.Stride(PlaneY), g.Target.Width, g.Target.Height,
		scaled.Luma(), scaled.Stride(PlaneY), g.Scaled.Width, g.Scaled.Height,
		x, y, BlackLuma,
	)

	ocw, och := chromaSize(g.Target)
	scw, sch := chromaSize(g.Scaled)
	for _, p := range []PlaneIndex{PlaneU, PlaneV} {
		padPlane(
			output.Plane(p), output.Stride(p), ocw, och,
			scaled.Plane(p), scaled.Stride(p), scw, sch,
			x/2, y/2, NeutralChroma,
		)
	}
	return nil
}

// padPlane writes one plane of the letterboxed image. The scaled plane
// (srcW x srcH) lands at (x0, y0); every other pixel of the dstW x dstH
// plane gets fill.
func padPlane(
	dst []byte, dstStride, dstW, dstH int,
	src []byte, srcStride, srcW, srcH int,
	x0, y0 int, fill byte,
) {
	x1, y1 := x0+srcW, y0+srcH
	for h := 0; h < dstH; h++ {
		row := dst[h*dstStride : h*dstStride+dstW]
		if h < y0 || h >= y1 {
			fillBytes(row, fill)
			continue
		}
		srcRow := src[(h-y0)*srcStride:]
		fillBytes(row[:x0], fill)
		copy(row[x0:x1], srcRow[:srcW])
		fillBytes(row[x1:], fill)
	}
}

func fillBytes(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

// chromaSize returns the 4:2:0 chroma plane size for a luma size.
func chromaSize(r Resolution) (w, h int) {
	return (r.Width + 1) / 2, (r.Height + 1) / 2
}

func checkPadBuffers(output, scaled *PlanarBuffer, g Geometry) error {
	if output == nil || scaled == nil {
		return fmt.Errorf("%w: nil buffer", ErrGeometryMismatch)
	}
	if output.Format() != PixelFormatYUV420P || scaled.Format() != PixelFormatYUV420P {
		return fmt.Errorf("%w: padding needs %s, got %s and %s",
			ErrGeometryMismatch, PixelFormatYUV420P, output.Format(), scaled.Format())
	}
	if output.Spec().Resolution() != g.Target || scaled.Spec().Resolution() != g.Scaled {
		return fmt.Errorf("%w: buffers %s/%s, geometry %s",
			ErrGeometryMismatch, output.Spec(), scaled.Spec(), g)
	}
	if g.Scaled.Width > g.Target.Width || g.Scaled.Height > g.Target.Height {
		return fmt.Errorf("%w: %s larger than %s", ErrGeometryMismatch, g.Scaled, g.Target)
	}

	ocw, och := chromaSize(g.Target)
	scw, sch := chromaSize(g.Scaled)
	planes := []struct {
		b    *PlanarBuffer
		p    PlaneIndex
		w, h int
	}{
		{output, PlaneY, g.Target.Width, g.Target.Height},
		{output, PlaneU, ocw, och},
		{output, PlaneV, ocw, och},
		{scaled, PlaneY, g.Scaled.Width, g.Scaled.Height},
		{scaled, PlaneU, scw, sch},
		{scaled, PlaneV, scw, sch},
	}
	for _, pl := range planes {
		stride := pl.b.Stride(pl.p)
		if stride < pl.w || len(pl.b.Plane(pl.p)) < stride*(pl.h-1)+pl.w {
			return fmt.Errorf("%w: plane %d of %s too small", ErrGeometryMismatch, pl.p, pl.b.Spec())
		}
	}
	return nil
}
