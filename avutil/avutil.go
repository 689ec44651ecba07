//go:build !ios && !android && (amd64 || arm64)

// Package avutil provides bindings to the parts of FFmpeg's libavutil that
// ffswscale needs: image buffer helpers (imgutils), memory release, error
// strings and log level control.
package avutil

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffswscale/internal/bindings"
)

// Function bindings - registered when init() is called
var (
	avFreep func(ptr unsafe.Pointer)

	avImageAlloc         func(pointers, linesizes unsafe.Pointer, w, h, pixFmt, align int32) int32
	avImageFillArrays    func(dstData, dstLinesize, src unsafe.Pointer, pixFmt, w, h, align int32) int32
	avImageGetBufferSize func(pixFmt, w, h, align int32) int32
	avImageCopyToBuffer  func(dst unsafe.Pointer, dstSize int32, srcData, srcLinesize unsafe.Pointer, pixFmt, w, h, align int32) int32

	avStrerror func(errnum int32, errbuf unsafe.Pointer, errbufSize uintptr) int32

	avLogSetLevel func(level int32)
	avLogGetLevel func() int32

	bindingsRegistered bool
)

func init() {
	registerBindings()
}

func registerBindings() {
	if bindingsRegistered {
		return
	}

	if err := bindings.Load(); err != nil {
		return // Will fail later when functions are called
	}

	lib := bindings.LibAVUtil()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&avFreep, lib, "av_freep")

	purego.RegisterLibFunc(&avImageAlloc, lib, "av_image_alloc")
	purego.RegisterLibFunc(&avImageFillArrays, lib, "av_image_fill_arrays")
	purego.RegisterLibFunc(&avImageGetBufferSize, lib, "av_image_get_buffer_size")
	purego.RegisterLibFunc(&avImageCopyToBuffer, lib, "av_image_copy_to_buffer")

	purego.RegisterLibFunc(&avStrerror, lib, "av_strerror")

	purego.RegisterLibFunc(&avLogSetLevel, lib, "av_log_set_level")
	purego.RegisterLibFunc(&avLogGetLevel, lib, "av_log_get_level")

	bindingsRegistered = true
}

// Freep frees memory allocated by FFmpeg and sets the pointer to nil.
// Safe to call with a nil pointer or a pointer to nil.
func Freep(ptr *unsafe.Pointer) {
	if ptr == nil || *ptr == nil || avFreep == nil {
		return
	}
	avFreep(unsafe.Pointer(ptr))
	*ptr = nil
}

// ErrorString returns a human-readable error message for an FFmpeg error code.
func ErrorString(errnum int32) string {
	if avStrerror == nil {
		return "unknown error (FFmpeg not loaded)"
	}

	buf := make([]byte, 256)
	avStrerror(errnum, unsafe.Pointer(&buf[0]), uintptr(len(buf)))

	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// LogSetLevel sets FFmpeg's global log level (AV_LOG_*).
func LogSetLevel(level int32) error {
	if avLogSetLevel == nil {
		return bindings.ErrNotLoaded
	}
	avLogSetLevel(level)
	return nil
}

// LogGetLevel returns FFmpeg's global log level.
// Returns -8 (quiet) if libavutil is not loaded.
func LogGetLevel() int32 {
	if avLogGetLevel == nil {
		return -8
	}
	return avLogGetLevel()
}
