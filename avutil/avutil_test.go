//go:build !ios && !android && (amd64 || arm64)

package avutil

import (
	"errors"
	"os"
	"testing"
	"unsafe"

	"github.com/obinnaokechukwu/ffswscale/internal/bindings"
)

var ffmpegAvailable bool

func TestMain(m *testing.M) {
	if err := bindings.Load(); err == nil {
		ffmpegAvailable = true
	}
	os.Exit(m.Run())
}

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if !ffmpegAvailable {
		t.Skip("FFmpeg not available")
	}
}

func TestPixelFormatString(t *testing.T) {
	tests := []struct {
		format PixelFormat
		want   string
	}{
		{PixelFormatYUV420P, "yuv420p"},
		{PixelFormatRGBA, "rgba"},
		{PixelFormatYUVA420P, "yuva420p"},
		{PixelFormatNone, "none"},
		{PixelFormat(999), "pix_fmt(999)"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestNewErrorNonNegative(t *testing.T) {
	if err := NewError(0, "noop"); err != nil {
		t.Errorf("NewError(0) = %v, want nil", err)
	}
	if err := NewError(42, "noop"); err != nil {
		t.Errorf("NewError(42) = %v, want nil", err)
	}
}

func TestErrorHelpers(t *testing.T) {
	err := &Error{Code: AVERROR_EINVAL, Message: "Invalid argument", Op: "sws_scale"}
	wrapped := errors.Join(errors.New("context"), err)

	if IsOutOfMemory(wrapped) {
		t.Error("IsOutOfMemory should be false for EINVAL")
	}
	if !IsOutOfMemory(errors.Join(errors.New("alloc"), &Error{Code: AVERROR_ENOMEM, Op: "av_image_alloc"})) {
		t.Error("IsOutOfMemory should see through wrapping")
	}
	if Code(wrapped) != AVERROR_EINVAL {
		t.Errorf("Code = %d, want %d", Code(wrapped), AVERROR_EINVAL)
	}
	if Code(errors.New("plain")) != 0 {
		t.Error("Code of a non-FFmpeg error should be 0")
	}
	if got, want := err.Error(), "ffmpeg sws_scale: Invalid argument (code -22)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorString(t *testing.T) {
	skipIfNoFFmpeg(t)
	msg := ErrorString(AVERROR_EINVAL)
	if msg == "" {
		t.Error("ErrorString should return non-empty string for AVERROR(EINVAL)")
	}
	t.Logf("AVERROR(EINVAL) message: %s", msg)

	msg = ErrorString(-999999)
	if msg == "" {
		t.Error("ErrorString should return non-empty string for unknown error")
	}
}

func TestLogLevel(t *testing.T) {
	skipIfNoFFmpeg(t)
	prev := LogGetLevel()
	defer LogSetLevel(prev)

	if err := LogSetLevel(16); err != nil {
		t.Fatalf("LogSetLevel failed: %v", err)
	}
	if got := LogGetLevel(); got != 16 {
		t.Errorf("LogGetLevel = %d, want 16", got)
	}
}

func TestFreepNil(t *testing.T) {
	// Must not panic whether or not FFmpeg is loaded.
	Freep(nil)
	var p unsafe.Pointer
	Freep(&p)
	ImageFree(nil)
}
