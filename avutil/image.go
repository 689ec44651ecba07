//go:build !ios && !android && (amd64 || arm64)

package avutil

import (
	"errors"
	"unsafe"

	"github.com/obinnaokechukwu/ffswscale/internal/bindings"
)

// ErrBufferTooSmall is returned when a caller-provided byte slice cannot hold
// an image of the requested format and geometry.
var ErrBufferTooSmall = errors.New("ffswscale: buffer too small for image")

// Image holds the plane pointers and linesizes filled in by av_image_alloc
// or av_image_fill_arrays (uint8_t *data[4], int linesize[4]).
type Image struct {
	Data     [4]unsafe.Pointer
	Linesize [4]int32
}

// ImageAlloc allocates an image with av_image_alloc and returns it together
// with the size in bytes of the allocated block. The block starts at
// Data[0] and must be released with ImageFree.
func ImageAlloc(width, height int, format PixelFormat, align int) (Image, int, error) {
	if avImageAlloc == nil {
		return Image{}, 0, bindings.ErrNotLoaded
	}

	var img Image
	ret := avImageAlloc(
		unsafe.Pointer(&img.Data), unsafe.Pointer(&img.Linesize),
		int32(width), int32(height), int32(format), int32(align),
	)
	if ret < 0 {
		return Image{}, 0, NewError(ret, "av_image_alloc")
	}
	return img, int(ret), nil
}

// ImageFree releases an image allocated by ImageAlloc and clears its pointers.
// Safe to call more than once.
func ImageFree(img *Image) {
	if img == nil {
		return
	}
	Freep(&img.Data[0])
	img.Data = [4]unsafe.Pointer{}
	img.Linesize = [4]int32{}
}

// ImageGetBufferSize returns the number of bytes needed to store an image
// with the given parameters.
func ImageGetBufferSize(format PixelFormat, width, height, align int) (int, error) {
	if avImageGetBufferSize == nil {
		return 0, bindings.ErrNotLoaded
	}
	ret := avImageGetBufferSize(int32(format), int32(width), int32(height), int32(align))
	if ret < 0 {
		return 0, NewError(ret, "av_image_get_buffer_size")
	}
	return int(ret), nil
}

// ImageFillArrays points the planes of an Image into buf without copying.
// The returned Image aliases buf; the caller must keep buf alive (and pinned
// while it is handed to C) for as long as the Image is used.
func ImageFillArrays(buf []byte, format PixelFormat, width, height, align int) (Image, int, error) {
	if avImageFillArrays == nil {
		return Image{}, 0, bindings.ErrNotLoaded
	}

	size, err := ImageGetBufferSize(format, width, height, align)
	if err != nil {
		return Image{}, 0, err
	}
	if len(buf) < size || size == 0 {
		return Image{}, 0, ErrBufferTooSmall
	}

	var img Image
	ret := avImageFillArrays(
		unsafe.Pointer(&img.Data), unsafe.Pointer(&img.Linesize),
		unsafe.Pointer(&buf[0]),
		int32(format), int32(width), int32(height), int32(align),
	)
	if ret < 0 {
		return Image{}, 0, NewError(ret, "av_image_fill_arrays")
	}
	return img, int(ret), nil
}

// ImageCopyToBuffer packs the planes of img into dst and returns the number
// of bytes written.
func ImageCopyToBuffer(dst []byte, img *Image, format PixelFormat, width, height, align int) (int, error) {
	if avImageCopyToBuffer == nil {
		return 0, bindings.ErrNotLoaded
	}
	if len(dst) == 0 {
		return 0, ErrBufferTooSmall
	}

	ret := avImageCopyToBuffer(
		unsafe.Pointer(&dst[0]), int32(len(dst)),
		unsafe.Pointer(&img.Data), unsafe.Pointer(&img.Linesize),
		int32(format), int32(width), int32(height), int32(align),
	)
	if ret < 0 {
		return 0, NewError(ret, "av_image_copy_to_buffer")
	}
	return int(ret), nil
}
