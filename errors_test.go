//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obinnaokechukwu/ffswscale/avutil"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err    error
		kind   string
		parent error
	}{
		{ErrInvalidFormat, "invalid_format", nil},
		{ErrUnsupportedFormat, "unsupported_format", nil},
		{ErrContextCreationFailed, "context_creation_failed", nil},
		{ErrBufferAllocationFailed, "buffer_allocation_failed", nil},
		{ErrFillInputFailed, "fill_input_failed", nil},
		{ErrScalingFailed, "scaling_failed", nil},
		{ErrCopyToBufferFailed, "copy_to_buffer_failed", nil},
		{ErrInvalidDimensions, "invalid_dimensions", nil},
		{ErrGeometryMismatch, "geometry_mismatch", nil},
		{ErrNotLoaded, "not_loaded", nil},
		{ErrClosed, "closed", nil},
		{ErrInvalidInputFormat, "invalid_input_format", ErrInvalidFormat},
		{ErrInvalidOutputFormat, "invalid_output_format", ErrInvalidFormat},
		{ErrUnsupportedInputFormat, "unsupported_input_format", ErrUnsupportedFormat},
		{ErrUnsupportedOutputFormat, "unsupported_output_format", ErrUnsupportedFormat},
		{ErrAllocationFailed, "allocation_failed", ErrBufferAllocationFailed},
		{ErrScaledBufferAllocationFailed, "scaled_buffer_allocation_failed", ErrBufferAllocationFailed},
		{ErrOutputBufferAllocationFailed, "output_buffer_allocation_failed", ErrBufferAllocationFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, Kind(tt.err))

		wrapped := fmt.Errorf("%w: context", tt.err)
		assert.Equal(t, tt.kind, Kind(wrapped))
		assert.ErrorIs(t, wrapped, tt.err)
		if tt.parent != nil {
			assert.ErrorIs(t, wrapped, tt.parent, tt.kind)
		}
	}

	assert.False(t, errors.Is(ErrInvalidInputFormat, ErrUnsupportedFormat))
	assert.False(t, errors.Is(ErrInvalidFormat, ErrInvalidInputFormat))
	assert.Empty(t, Kind(errors.New("other")))
	assert.Empty(t, Kind(nil))
}

func TestKindErrorMessage(t *testing.T) {
	assert.Equal(t, "ffswscale: scaled buffer allocation failed", ErrScaledBufferAllocationFailed.Error())
}

func TestKindKeepsEngineError(t *testing.T) {
	engineErr := &avutil.Error{Code: avutil.AVERROR_ENOMEM, Message: "out of memory", Op: "av_image_alloc"}
	err := fmt.Errorf("%w: %w", ErrOutputBufferAllocationFailed, engineErr)

	assert.Equal(t, "output_buffer_allocation_failed", Kind(err))
	assert.Equal(t, avutil.AVERROR_ENOMEM, ErrorCode(err))

	var ffErr *FFmpegError
	assert.True(t, errors.As(err, &ffErr))
	assert.Equal(t, "av_image_alloc", ffErr.Op)
}
