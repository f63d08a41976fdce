// Package colour converts hex colour strings to normalized RGB triples and
// blends between them.
//
// # Colours
//
// A [Color] holds three channels in [0, 1]. Parse one from a hex string:
//
//	c, err := colour.ParseHex("#FC5C65")
//
// The leading '#' is optional. Strings shorter than six hex digits, or
// containing non-hex characters, fail with an INVALID_COLOUR error.
//
// # Interpolation
//
// [Interpolate] blends two colours channel by channel. The fraction is not
// clamped: values outside [0, 1] extrapolate past the endpoints, so callers
// clamp first when they need a colour between the two.
//
// # Palettes
//
// A [Palette] names every colour the grid and graph renderers use.
// [DefaultPalette] returns the stock colours; [Palette.Override] replaces
// entries by name from hex strings, which is how scene files and the config
// file customise a render.
package colour
