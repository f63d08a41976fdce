package colour

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/pathviz/pkg/errors"
)

// Color is an RGB triple with each channel normalized to [0, 1].
type Color struct {
	R, G, B float64
}

// Common colours used by the default palette.
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Red   = Color{1, 0, 0}
)

// ParseHex converts a "#RRGGBB" string into a Color.
//
// Leading '#' characters are stripped. The first six remaining characters are
// read as three base-16 pairs and divided by 255; anything after them (for
// example an alpha pair) is ignored. Fewer than six characters, or any
// character that is not a hex digit, is an INVALID_COLOUR error.
func ParseHex(hex string) (Color, error) {
	h := strings.TrimLeft(hex, "#")
	if len(h) < 6 {
		return Color{}, errors.New(errors.ErrCodeInvalidColour, "colour %q needs 6 hex digits", hex)
	}

	var ch [3]float64
	for i, off := range []int{0, 2, 4} {
		v, err := strconv.ParseUint(h[off:off+2], 16, 8)
		if err != nil {
			return Color{}, errors.Wrap(errors.ErrCodeInvalidColour, err, "parse colour %q", hex)
		}
		ch[i] = float64(v) / 255
	}
	for _, r := range h[6:] {
		if !isHexDigit(r) {
			return Color{}, errors.New(errors.ErrCodeInvalidColour, "colour %q contains non-hex character %q", hex, r)
		}
	}

	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// MustParseHex is like ParseHex but panics if hex is malformed.
// It is meant for package-level palette constants.
func MustParseHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// Interpolate blends from towards to by t, channel by channel:
// from + (to - from) * t. t is not clamped.
func Interpolate(from, to Color, t float64) Color {
	return fromColorful(from.colorful().BlendRgb(to.colorful(), t))
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	return max(0, min(1, t))
}

// Hex formats c as a lowercase "#rrggbb" string.
// Channels outside [0, 1] are clamped first.
func (c Color) Hex() string {
	return c.clamped().colorful().Hex()
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.clamped().colorful().RGBA()
}

// NRGBA returns c as an 8-bit opaque colour.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.clamped().colorful().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Equal reports whether c and o agree on every channel within eps.
func (c Color) Equal(o Color, eps float64) bool {
	return abs(c.R-o.R) <= eps && abs(c.G-o.G) <= eps && abs(c.B-o.B) <= eps
}

// String returns the hex form of c.
func (c Color) String() string { return c.Hex() }

func (c Color) clamped() Color {
	return Color{R: Clamp01(c.R), G: Clamp01(c.G), B: Clamp01(c.B)}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color) Color {
	return Color{R: c.R, G: c.G, B: c.B}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

var _ color.Color = Color{}
