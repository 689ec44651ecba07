//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// String formats the resolution as "WxH".
func (r Resolution) String() string {
	return strconv.Itoa(r.Width) + "x" + strconv.Itoa(r.Height)
}

// Valid reports whether both dimensions are positive.
func (r Resolution) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// ParseResolution parses "WxH" (e.g. "1280x720").
func ParseResolution(s string) (Resolution, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Resolution{}, fmt.Errorf("%w: resolution %q is not WxH", ErrInvalidDimensions, s)
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil {
		return Resolution{}, fmt.Errorf("%w: resolution %q is not WxH", ErrInvalidDimensions, s)
	}
	r := Resolution{Width: w, Height: h}
	if !r.Valid() {
		return Resolution{}, fmt.Errorf("%w: resolution %q must be positive", ErrInvalidDimensions, s)
	}
	return r, nil
}

// Axis is the axis along which a letterboxed image is padded.
type Axis int

const (
	// PadLeftRight pads columns: the source is relatively tall.
	PadLeftRight Axis = iota
	// PadTopBottom pads rows: the source is relatively wide.
	PadTopBottom
)

func (a Axis) String() string {
	switch a {
	case PadLeftRight:
		return "left/right"
	case PadTopBottom:
		return "top/bottom"
	default:
		return "Axis(" + strconv.Itoa(int(a)) + ")"
	}
}

// Geometry describes how a source frame is fitted into a target canvas:
// the aspect-preserving scaled size and the axis that receives padding.
type Geometry struct {
	Source Resolution
	Target Resolution
	Scaled Resolution
	Axis   Axis
}

// ComputeGeometry fits source into target preserving aspect ratio.
//
// Both scaled dimensions are even (libswscale requirement for 4:2:0) and the
// gap on the padded axis is a multiple of 4 whenever the target dimension is
// even, so each border is an even number of pixels and the chroma borders
// split evenly too. All arithmetic is truncating integer division.
func ComputeGeometry(source, target Resolution) (Geometry, error) {
	if !source.Valid() || !target.Valid() {
		return Geometry{}, fmt.Errorf("%w: %s -> %s", ErrInvalidDimensions, source, target)
	}

	sw, sh := source.Width, source.Height
	tw, th := target.Width, target.Height

	g := Geometry{Source: source, Target: target}
	if th*sw/sh <= tw {
		g.Axis = PadLeftRight
		g.Scaled.Width = roundDownEven(th * sw / sh)
		g.Scaled.Height = roundDownEven(th)
		if (tw-g.Scaled.Width)%4 != 0 {
			g.Scaled.Width -= 2
		}
	} else {
		g.Axis = PadTopBottom
		g.Scaled.Width = roundDownEven(tw)
		g.Scaled.Height = roundDownEven(tw * sh / sw)
		if (th-g.Scaled.Height)%4 != 0 {
			g.Scaled.Height -= 2
		}
	}

	if !g.Scaled.Valid() {
		return Geometry{}, fmt.Errorf("%w: %s does not fit into %s", ErrInvalidDimensions, source, target)
	}
	return g, nil
}

func roundDownEven(v int) int {
	return v / 2 * 2
}

// Offset returns the position of the scaled image's top-left corner in the
// target canvas. Exactly one coordinate is non-zero unless no padding is needed.
func (g Geometry) Offset() (x, y int) {
	if g.Axis == PadLeftRight {
		return (g.Target.Width - g.Scaled.Width) / 2, 0
	}
	return 0, (g.Target.Height - g.Scaled.Height) / 2
}

// Padding returns the leading and trailing border sizes on the padded axis.
func (g Geometry) Padding() (leading, trailing int) {
	target, scaled := g.Target.Width, g.Scaled.Width
	if g.Axis == PadTopBottom {
		target, scaled = g.Target.Height, g.Scaled.Height
	}
	leading = (target - scaled) / 2
	return leading, target - scaled - leading
}

func (g Geometry) String() string {
	return fmt.Sprintf("%s -> %s in %s (pad %s)", g.Source, g.Scaled, g.Target, g.Axis)
}
