//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"fmt"

	"github.com/obinnaokechukwu/ffswscale/avutil"
)

// PixelFormat represents video pixel formats.
type PixelFormat = avutil.PixelFormat

// Pixel formats reachable through the name table.
const (
	PixelFormatNone     = avutil.PixelFormatNone
	PixelFormatYUV420P  = avutil.PixelFormatYUV420P
	PixelFormatYUV422P  = avutil.PixelFormatYUV422P
	PixelFormatYUV444P  = avutil.PixelFormatYUV444P
	PixelFormatRGB24    = avutil.PixelFormatRGB24
	PixelFormatRGBA     = avutil.PixelFormatRGBA
	PixelFormatNV12     = avutil.PixelFormatNV12
	PixelFormatNV21     = avutil.PixelFormatNV21
	PixelFormatYUVA420P = avutil.PixelFormatYUVA420P
)

// formatNames maps the pipeline's format names to FFmpeg pixel formats.
//
// YV12 maps to yuva420p (4:2:0 with an alpha plane), not to chroma-swapped
// yuv420p. Frames tagged YV12 upstream are therefore expected to carry four
// planes. See DESIGN.md before changing it.
var formatNames = []struct {
	name   string
	format PixelFormat
}{
	{"I420", PixelFormatYUV420P},
	{"I422", PixelFormatYUV422P},
	{"I444", PixelFormatYUV444P},
	{"RGB", PixelFormatRGB24},
	{"RGBA", PixelFormatRGBA},
	{"NV12", PixelFormatNV12},
	{"NV21", PixelFormatNV21},
	{"YV12", PixelFormatYUVA420P},
}

// ParsePixelFormat looks up a pipeline format name (case-sensitive, e.g.
// "I420", "RGBA"). Unknown names return PixelFormatNone and an error
// wrapping ErrInvalidFormat.
func ParsePixelFormat(name string) (PixelFormat, error) {
	for _, e := range formatNames {
		if e.name == name {
			return e.format, nil
		}
	}
	return PixelFormatNone, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// PixelFormatName returns the pipeline name of a format, or "" when the
// format has no entry in the table.
func PixelFormatName(f PixelFormat) string {
	for _, e := range formatNames {
		if e.format == f {
			return e.name
		}
	}
	return ""
}

// PixelFormatNames returns every recognised format name, in table order.
func PixelFormatNames() []string {
	names := make([]string, len(formatNames))
	for i, e := range formatNames {
		names[i] = e.name
	}
	return names
}
