// Package plot is the plotting collaborator for the grid and graph renderers.
//
// # Overview
//
// Renderers never draw. They describe a picture as a [Figure]: a square
// buffer of cell colours plus overlay instructions (text labels, plain or
// arrow-headed segments, and an optional dashed path). A [Plotter] turns a
// Figure into bytes in one output format.
//
// # Coordinates
//
// Figure coordinates are in grid units. Cell (x, y) is centred on the point
// (x, y); its edges sit at half-integer offsets. The y axis points up, so
// row 0 of the buffer is drawn at the bottom, as an inverted imshow would.
// Every backend draws major ticks with labels at integer coordinates and
// minor grid lines at the half-integer cell boundaries.
//
// # Backends
//
//   - [Raster]: PNG via github.com/fogleman/gg
//   - [SVG]: standalone SVG document
//   - [PDF]: SVG converted with rsvg-convert
//   - [Terminal]: ANSI-coloured text via lipgloss
//
// [ByFormat] resolves a format name ("png", "svg", "pdf", "txt") to a
// Plotter. Graph DOT output is rendered separately with [RenderDOT] because
// it is driven by graph structure rather than by a Figure.
package plot
