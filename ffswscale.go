//go:build !ios && !android && (amd64 || arm64)

// Package ffswscale drives FFmpeg's libswscale without cgo, using purego.
//
// It provides two frame processors with fixed geometry:
//
//   - Converter converts tightly packed frames between pixel formats
//     ("I420", "RGBA", "NV12", ...), optionally resizing them.
//   - LetterboxScaler resizes I420 frames into a fixed canvas while
//     preserving aspect ratio, padding the borders black.
//
// Both are created once (context and buffer allocation) and then fed frames
// repeatedly. Every returned frame is a fresh slice owned by the caller.
// All frames crossing the API are packed with an alignment of 1.
//
// The low-level packages (avutil, swscale) are available for advanced use.
package ffswscale

import (
	"github.com/obinnaokechukwu/ffswscale/internal/bindings"
)

// Init loads the FFmpeg libraries. This is called automatically when
// creating a Converter or LetterboxScaler, but can be called explicitly to
// check for errors. It is safe to call multiple times.
func Init() error {
	return Swscale().Load()
}

// IsLoaded returns true if FFmpeg libraries have been successfully loaded.
func IsLoaded() bool {
	return bindings.IsLoaded()
}

// Version returns the libavutil and libswscale versions
// (major<<16 | minor<<8 | micro), or zeros if not loaded.
func Version() (avutil, swscale uint32) {
	return bindings.AVUtilVersion(), bindings.SWScaleVersion()
}
