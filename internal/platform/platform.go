//go:build !ios && !android && (amd64 || arm64)

// Package platform resolves platform-specific shared library names for the
// FFmpeg libraries ffswscale binds at runtime.
package platform

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Is64Bit indicates whether the platform is 64-bit.
// purego only supports 64-bit targets.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// LibraryPrefix is the prefix for shared library names on this platform.
var LibraryPrefix string

func init() {
	LibraryPrefix, LibraryExtension = libraryAffixes(runtime.GOOS)
}

func libraryAffixes(goos string) (prefix, ext string) {
	switch goos {
	case "darwin":
		return "lib", ".dylib"
	case "windows":
		return "", ".dll"
	default: // linux, freebsd, etc.
		return "lib", ".so"
	}
}

// FormatLibraryName returns the platform-specific library filename.
// If version is 0, returns the unversioned library name.
//
// Examples:
//   - Linux:   FormatLibraryName("swscale", 8) -> "libswscale.so.8"
//   - macOS:   FormatLibraryName("swscale", 8) -> "libswscale.8.dylib"
//   - Windows: FormatLibraryName("swscale", 8) -> "swscale-8.dll"
func FormatLibraryName(name string, version int) string {
	return formatLibraryName(runtime.GOOS, name, version)
}

func formatLibraryName(goos, name string, version int) string {
	prefix, ext := libraryAffixes(goos)
	if version <= 0 {
		return prefix + name + ext
	}
	switch goos {
	case "darwin":
		return fmt.Sprintf("%s%s.%d%s", prefix, name, version, ext)
	case "windows":
		return fmt.Sprintf("%s%s-%d%s", prefix, name, version, ext)
	default:
		return fmt.Sprintf("%s%s%s.%d", prefix, name, ext, version)
	}
}
