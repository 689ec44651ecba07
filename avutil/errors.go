//go:build !ios && !android && (amd64 || arm64)

package avutil

import (
	"errors"
	"fmt"
	"syscall"
)

// Common FFmpeg error codes (AVERROR values)
const (
	AVERROR_EINVAL int32 = -int32(syscall.EINVAL) // Invalid argument
	AVERROR_ENOMEM int32 = -int32(syscall.ENOMEM) // Out of memory
)

// Error represents an FFmpeg error.
type Error struct {
	Code    int32  // Raw FFmpeg error code
	Message string // Human-readable message
	Op      string // Operation that failed
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("ffmpeg %s: %s (code %d)", e.Op, e.Message, e.Code)
}

// NewError creates a new FFmpeg error from an error code.
func NewError(code int32, op string) error {
	if code >= 0 {
		return nil
	}
	return &Error{
		Code:    code,
		Message: ErrorString(code),
		Op:      op,
	}
}

// IsOutOfMemory returns true if the error is AVERROR(ENOMEM).
func IsOutOfMemory(err error) bool {
	var ffErr *Error
	if errors.As(err, &ffErr) {
		return ffErr.Code == AVERROR_ENOMEM
	}
	return false
}

// Code returns the FFmpeg error code from an error, or 0 if not an FFmpeg error.
func Code(err error) int32 {
	var ffErr *Error
	if errors.As(err, &ffErr) {
		return ffErr.Code
	}
	return 0
}
