//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"fmt"
	"strings"

	"github.com/obinnaokechukwu/ffswscale/swscale"
)

// Algorithm selects the resampling filter. The zero value lets each
// component pick its own default.
type Algorithm int32

const (
	// AlgorithmFastBilinear uses fast bilinear scaling (lowest quality, fastest).
	AlgorithmFastBilinear Algorithm = swscale.FlagFastBilinear

	// AlgorithmBilinear uses bilinear scaling. LetterboxScaler uses it.
	AlgorithmBilinear Algorithm = swscale.FlagBilinear

	// AlgorithmBicubic uses bicubic scaling. Converter defaults to it.
	AlgorithmBicubic Algorithm = swscale.FlagBicubic

	// AlgorithmLanczos uses Lanczos scaling (highest quality, slowest).
	AlgorithmLanczos Algorithm = swscale.FlagLanczos

	// AlgorithmPoint uses nearest neighbor (fastest, no interpolation).
	AlgorithmPoint Algorithm = swscale.FlagPoint
)

var algorithmNames = map[Algorithm]string{
	AlgorithmFastBilinear: "fast_bilinear",
	AlgorithmBilinear:     "bilinear",
	AlgorithmBicubic:      "bicubic",
	AlgorithmLanczos:      "lanczos",
	AlgorithmPoint:        "point",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	if a == 0 {
		return "default"
	}
	return fmt.Sprintf("Algorithm(%d)", int32(a))
}

// ParseAlgorithm maps a name such as "bicubic" or "fast_bilinear" to an
// Algorithm. An empty name yields the zero value.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, nil
	}
	for a, n := range algorithmNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q", name)
}

// Engine is the resampling backend. Converter and LetterboxScaler only talk
// to the engine through this interface; the default is Swscale().
//
// Buffers returned by AllocImage are owned by the caller and released with
// PlanarBuffer.Free. Buffers returned by FillArrays alias data.
type Engine interface {
	// Load makes the engine usable. It is called once per constructor.
	Load() error

	IsSupportedInput(PixelFormat) bool
	IsSupportedOutput(PixelFormat) bool

	// NewContext creates a resampling context for src -> dst.
	NewContext(src, dst ImageSpec, algorithm Algorithm) (Context, error)

	// BufferSize returns the tightly packed size of an image.
	BufferSize(spec ImageSpec) (int, error)

	// AllocImage allocates a tightly packed image.
	AllocImage(spec ImageSpec) (*PlanarBuffer, error)

	// FillArrays returns a zero-copy view of data as an image.
	FillArrays(spec ImageSpec, data []byte) (*PlanarBuffer, error)

	// CopyToBuffer packs src tightly into dst and returns the bytes written.
	CopyToBuffer(dst []byte, src *PlanarBuffer) (int, error)
}

// Context is a resampling context with fixed geometry and formats.
type Context interface {
	// Scale resamples the whole of src into dst.
	Scale(src, dst *PlanarBuffer) error

	// Free releases the context. Safe to call more than once.
	Free()
}
