//go:build !ios && !android && (amd64 || arm64)

package avutil

import "strconv"

// PixelFormat represents FFmpeg pixel formats (enum AVPixelFormat).
type PixelFormat int32

// Pixel formats used by ffswscale (from FFmpeg's pixfmt.h)
const (
	PixelFormatNone     PixelFormat = -1
	PixelFormatYUV420P  PixelFormat = 0  // Planar YUV 4:2:0
	PixelFormatYUYV422  PixelFormat = 1  // Packed YUV 4:2:2
	PixelFormatRGB24    PixelFormat = 2  // Packed RGB 8:8:8
	PixelFormatBGR24    PixelFormat = 3  // Packed BGR 8:8:8
	PixelFormatYUV422P  PixelFormat = 4  // Planar YUV 4:2:2
	PixelFormatYUV444P  PixelFormat = 5  // Planar YUV 4:4:4
	PixelFormatYUV410P  PixelFormat = 6  // Planar YUV 4:1:0
	PixelFormatYUV411P  PixelFormat = 7  // Planar YUV 4:1:1
	PixelFormatGray8    PixelFormat = 8  // 8-bit grayscale
	PixelFormatYUVJ420P PixelFormat = 12 // Planar YUV 4:2:0 (JPEG)

	PixelFormatNV12     PixelFormat = 23 // Semi-planar YUV 4:2:0 (UV interleaved)
	PixelFormatNV21     PixelFormat = 24 // Semi-planar YUV 4:2:0 (VU interleaved)
	PixelFormatARGB     PixelFormat = 25 // Packed ARGB 8:8:8:8
	PixelFormatRGBA     PixelFormat = 26 // Packed RGBA 8:8:8:8
	PixelFormatABGR     PixelFormat = 27 // Packed ABGR 8:8:8:8
	PixelFormatBGRA     PixelFormat = 28 // Packed BGRA 8:8:8:8
	PixelFormatYUVA420P PixelFormat = 33 // Planar YUV 4:2:0 with alpha plane
)

var pixelFormatNames = map[PixelFormat]string{
	PixelFormatNone:     "none",
	PixelFormatYUV420P:  "yuv420p",
	PixelFormatYUYV422:  "yuyv422",
	PixelFormatRGB24:    "rgb24",
	PixelFormatBGR24:    "bgr24",
	PixelFormatYUV422P:  "yuv422p",
	PixelFormatYUV444P:  "yuv444p",
	PixelFormatYUV410P:  "yuv410p",
	PixelFormatYUV411P:  "yuv411p",
	PixelFormatGray8:    "gray",
	PixelFormatYUVJ420P: "yuvj420p",
	PixelFormatNV12:     "nv12",
	PixelFormatNV21:     "nv21",
	PixelFormatARGB:     "argb",
	PixelFormatRGBA:     "rgba",
	PixelFormatABGR:     "abgr",
	PixelFormatBGRA:     "bgra",
	PixelFormatYUVA420P: "yuva420p",
}

// String returns FFmpeg's short name for the format (as printed by
// `ffmpeg -pix_fmts`), or the numeric value for formats not listed here.
func (f PixelFormat) String() string {
	if name, ok := pixelFormatNames[f]; ok {
		return name
	}
	return "pix_fmt(" + strconv.Itoa(int(f)) + ")"
}
