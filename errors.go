//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"errors"
	"strings"

	"github.com/obinnaokechukwu/ffswscale/avutil"
)

// FFmpegError is an error from FFmpeg operations.
// It contains the raw FFmpeg error code and a human-readable message.
type FFmpegError = avutil.Error

// kindError is a sentinel with a stable snake_case name. Role-specific
// sentinels unwrap to their kind, so errors.Is works at both levels.
type kindError struct {
	name   string
	parent error
}

func newKind(name string, parent error) error {
	return &kindError{name: name, parent: parent}
}

func (e *kindError) Error() string {
	return "ffswscale: " + strings.ReplaceAll(e.name, "_", " ")
}

func (e *kindError) Unwrap() error {
	return e.parent
}

// Error kinds.
var (
	ErrInvalidFormat          = newKind("invalid_format", nil)
	ErrUnsupportedFormat      = newKind("unsupported_format", nil)
	ErrContextCreationFailed  = newKind("context_creation_failed", nil)
	ErrBufferAllocationFailed = newKind("buffer_allocation_failed", nil)
	ErrFillInputFailed        = newKind("fill_input_failed", nil)
	ErrScalingFailed          = newKind("scaling_failed", nil)
	ErrCopyToBufferFailed     = newKind("copy_to_buffer_failed", nil)

	// ErrInvalidDimensions indicates a non-positive size or a target too
	// small to hold an even, symmetrically padded image.
	ErrInvalidDimensions = newKind("invalid_dimensions", nil)

	// ErrGeometryMismatch indicates buffers that do not match the geometry
	// they are padded with.
	ErrGeometryMismatch = newKind("geometry_mismatch", nil)

	// ErrNotLoaded indicates the FFmpeg libraries could not be loaded.
	ErrNotLoaded = newKind("not_loaded", nil)

	// ErrClosed indicates the handle has been closed.
	ErrClosed = newKind("closed", nil)
)

// Role-specific errors.
var (
	ErrInvalidInputFormat  = newKind("invalid_input_format", ErrInvalidFormat)
	ErrInvalidOutputFormat = newKind("invalid_output_format", ErrInvalidFormat)

	ErrUnsupportedInputFormat  = newKind("unsupported_input_format", ErrUnsupportedFormat)
	ErrUnsupportedOutputFormat = newKind("unsupported_output_format", ErrUnsupportedFormat)

	// ErrAllocationFailed is the Converter's destination buffer failure.
	ErrAllocationFailed             = newKind("allocation_failed", ErrBufferAllocationFailed)
	ErrScaledBufferAllocationFailed = newKind("scaled_buffer_allocation_failed", ErrBufferAllocationFailed)
	ErrOutputBufferAllocationFailed = newKind("output_buffer_allocation_failed", ErrBufferAllocationFailed)
)

// Kind returns the stable snake_case name of the most specific ffswscale
// error in err's chain (for example "unsupported_input_format"), or "" if
// err carries none. The name is suitable for crossing process or language
// boundaries.
func Kind(err error) string {
	var k *kindError
	if errors.As(err, &k) {
		return k.name
	}
	return ""
}

// ErrorCode returns the FFmpeg error code from an error, or 0 if not an FFmpeg error.
func ErrorCode(err error) int32 {
	return avutil.Code(err)
}
