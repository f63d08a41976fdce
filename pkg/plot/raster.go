package plot

import (
	"bytes"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/pathviz/pkg/errors"
)

// RasterOption configures PNG rendering.
type RasterOption func(*Raster)

// WithCellSize sets the edge length of one grid cell in pixels.
func WithCellSize(px int) RasterOption {
	return func(r *Raster) { r.cellSize = px }
}

// Raster draws figures to PNG.
type Raster struct {
	cellSize int
}

// NewRaster creates a PNG plotter. The default cell size is 32 pixels.
func NewRaster(opts ...RasterOption) *Raster {
	r := &Raster{cellSize: defaultCellSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Format implements Plotter.
func (r *Raster) Format() string { return FormatPNG }

// Plot implements Plotter.
func (r *Raster) Plot(f *Figure) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	fr := newFrame(f, r.cellSize)

	face, err := fontFace(fr.fontSize())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}

	dc := gg.NewContext(int(fr.width()), int(fr.height()))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)

	drawCells(dc, f, fr)
	drawGrid(dc, f, fr)
	drawTicks(dc, fr)
	drawSegments(dc, f, fr)
	drawPath(dc, f, fr)
	drawLabels(dc, f, fr)
	if f.Title != "" {
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(f.Title, fr.width()/2, 18, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawCells(dc *gg.Context, f *Figure, fr frame) {
	for y, row := range f.Pixels {
		for x, c := range row {
			ox, oy := fr.cellOrigin(x, y)
			dc.SetColor(c)
			dc.DrawRectangle(ox, oy, fr.cell, fr.cell)
			dc.Fill()
		}
	}
}

// drawGrid strokes the minor grid lines at half-integer offsets.
func drawGrid(dc *gg.Context, f *Figure, fr frame) {
	dc.SetColor(f.GridLine)
	dc.SetLineWidth(1)
	for k := 0; k <= fr.side; k++ {
		x := fr.px(float64(k) - 0.5)
		dc.DrawLine(x, fr.gridTop(), x, fr.gridBottom())
		y := fr.py(float64(k) - 0.5)
		dc.DrawLine(fr.gridLeft(), y, fr.gridRight(), y)
	}
	dc.Stroke()
}

// drawTicks draws major ticks at integer coordinates with their labels.
func drawTicks(dc *gg.Context, fr frame) {
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	step := fr.tickStep()
	for i := 0; i < fr.side; i++ {
		x, y := fr.px(float64(i)), fr.py(float64(i))
		dc.DrawLine(x, fr.gridBottom(), x, fr.gridBottom()+tickLength)
		dc.DrawLine(fr.gridLeft()-tickLength, y, fr.gridLeft(), y)
		dc.Stroke()
		if i%step != 0 {
			continue
		}
		s := strconv.Itoa(i)
		dc.DrawStringAnchored(s, x, fr.gridBottom()+tickLength+2, 0.5, 1)
		dc.DrawStringAnchored(s, fr.gridLeft()-tickLength-2, y, 1, 0.35)
	}
}

func drawSegments(dc *gg.Context, f *Figure, fr frame) {
	dc.SetColor(f.EdgeColor)
	lw := max(1, fr.cell/16)
	dc.SetLineWidth(lw)
	for _, s := range f.Segments {
		x1, y1 := fr.point(s.From)
		x2, y2 := fr.point(s.To)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		if !s.Directed {
			continue
		}
		if ax1, ay1, ax2, ay2, ok := arrowHead(x1, y1, x2, y2, fr.cell/3, fr.cell/7); ok {
			dc.MoveTo(x2, y2)
			dc.LineTo(ax1, ay1)
			dc.LineTo(ax2, ay2)
			dc.ClosePath()
			dc.Fill()
		}
	}
}

func drawPath(dc *gg.Context, f *Figure, fr frame) {
	if len(f.Path) == 0 {
		return
	}
	dc.Push()
	defer dc.Pop()

	dc.SetColor(f.PathColor)
	dc.SetLineWidth(max(1.5, fr.cell/12))
	dc.SetDash(fr.cell/4, fr.cell/6)
	for i, p := range f.Path {
		x, y := fr.point(p)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
	dc.Stroke()
}

func drawLabels(dc *gg.Context, f *Figure, fr frame) {
	dc.SetColor(f.LabelColor)
	for _, l := range f.Labels {
		x, y := fr.point(l.At)
		dc.DrawStringAnchored(l.Text, x, y, 0, 0)
	}
}

var (
	fontOnce sync.Once
	fontErr  error
	goFont   *opentype.Font
)

// fontFace returns a Go Regular face at size points.
func fontFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		goFont, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return opentype.NewFace(goFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

var _ Plotter = (*Raster)(nil)
