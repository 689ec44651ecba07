//go:build !ios && !android && (amd64 || arm64)

// Package bindings handles loading the FFmpeg shared libraries used by
// ffswscale (libavutil and libswscale) and exposes their handles so the
// avutil and swscale packages can register function bindings with purego.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/ffswscale/internal/platform"
)

// ErrNotLoaded is returned when FFmpeg functions are called before Load().
var ErrNotLoaded = errors.New("ffswscale: FFmpeg libraries not loaded; call ffswscale.Init() first")

// ErrLibraryNotFound is returned when a required FFmpeg library cannot be found.
var ErrLibraryNotFound = errors.New("ffswscale: FFmpeg library not found")

// Supported major versions, newest first.
var (
	AVUtilVersions  = []int{60, 59, 58, 57, 56}
	SWScaleVersions = []int{9, 8, 7, 6, 5}
)

// Library handles
var (
	libAVUtil  uintptr
	libSWScale uintptr

	loaded   bool
	loadOnce sync.Once
	loadErr  error
)

// Version function bindings
var (
	avutilVersion  func() uint32
	swscaleVersion func() uint32
)

// IsLoaded returns true if FFmpeg libraries have been successfully loaded.
func IsLoaded() bool {
	return loaded
}

// Load loads libavutil and libswscale.
// It is safe to call multiple times; subsequent calls return the first result.
func Load() error {
	loadOnce.Do(func() {
		loadErr = doLoad()
		if loadErr == nil {
			loaded = true
		}
	})
	return loadErr
}

func doLoad() error {
	var err error

	// avutil first: swscale has undefined references into it.
	libAVUtil, err = loadLibrary("avutil", AVUtilVersions)
	if err != nil {
		return fmt.Errorf("loading libavutil: %w", err)
	}

	libSWScale, err = loadLibrary("swscale", SWScaleVersions)
	if err != nil {
		return fmt.Errorf("loading libswscale: %w", err)
	}

	purego.RegisterLibFunc(&avutilVersion, libAVUtil, "avutil_version")
	purego.RegisterLibFunc(&swscaleVersion, libSWScale, "swscale_version")
	return nil
}

// loadLibrary attempts to load a library by trying versioned names.
func loadLibrary(name string, versions []int) (uintptr, error) {
	for _, candidate := range candidatePaths(name, versions) {
		if lib, err := tryOpen(candidate); err == nil {
			return lib, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// candidatePaths lists every path loadLibrary tries, in order: each search
// directory with versioned then unversioned names, then bare names for the
// system loader.
func candidatePaths(name string, versions []int) []string {
	var out []string
	for _, dir := range LibrarySearchPaths() {
		for _, ver := range versions {
			out = append(out, filepath.Join(dir, platform.FormatLibraryName(name, ver)))
		}
		out = append(out, filepath.Join(dir, platform.FormatLibraryName(name, 0)))
	}
	for _, ver := range versions {
		out = append(out, platform.FormatLibraryName(name, ver))
	}
	return append(out, platform.FormatLibraryName(name, 0))
}

// tryOpen opens a library with RTLD_NOW | RTLD_GLOBAL.
// RTLD_GLOBAL is required: the FFmpeg libraries reference each other's symbols.
func tryOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// FindLibrary searches the search paths for a library and returns its full path.
// Useful for diagnostics.
func FindLibrary(name string, versions []int) (string, error) {
	for _, candidate := range candidatePaths(name, versions) {
		if !filepath.IsAbs(candidate) {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// LibrarySearchPaths returns platform-specific library search paths.
func LibrarySearchPaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "linux", "freebsd":
		if ldPath := os.Getenv("LD_LIBRARY_PATH"); ldPath != "" {
			paths = append(paths, filepath.SplitList(ldPath)...)
		}
		paths = append(paths,
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/local/lib",
			"/usr/lib",
			"/lib/x86_64-linux-gnu",
			"/lib",
		)

	case "darwin":
		if dyldPath := os.Getenv("DYLD_LIBRARY_PATH"); dyldPath != "" {
			paths = append(paths, filepath.SplitList(dyldPath)...)
		}
		paths = append(paths,
			"/opt/homebrew/lib",            // Apple Silicon
			"/usr/local/lib",               // Intel
			"/opt/homebrew/opt/ffmpeg/lib", // Homebrew FFmpeg
			"/usr/local/opt/ffmpeg/lib",    // Homebrew FFmpeg (Intel)
		)

	case "windows":
		if winPath := os.Getenv("PATH"); winPath != "" {
			paths = append(paths, filepath.SplitList(winPath)...)
		}
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Dir(exe))
		}
		paths = append(paths,
			"C:\\ffmpeg\\bin",
			"C:\\Program Files\\ffmpeg\\bin",
		)
	}

	return paths
}

// AVUtilVersion returns the avutil library version.
// Returns 0 if libraries are not loaded.
func AVUtilVersion() uint32 {
	if !loaded || avutilVersion == nil {
		return 0
	}
	return avutilVersion()
}

// SWScaleVersion returns the swscale library version.
// Returns 0 if libraries are not loaded.
func SWScaleVersion() uint32 {
	if !loaded || swscaleVersion == nil {
		return 0
	}
	return swscaleVersion()
}

// LibAVUtil returns the avutil library handle.
func LibAVUtil() uintptr {
	return libAVUtil
}

// LibSWScale returns the swscale library handle.
func LibSWScale() uintptr {
	return libSWScale
}

// HasSWScale returns true if swscale library is available.
func HasSWScale() bool {
	return libSWScale != 0
}
