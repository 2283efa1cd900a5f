package poisson

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// PlotScheme defines how a rendered distribution should be coloured.
type PlotScheme struct {
	Background color.Color
	Sample     color.Color

	// radius of each sample dot, in pixels
	SampleRadius float64
}

// DefaultPlotScheme returns a reasonable default PlotScheme.
func DefaultPlotScheme() *PlotScheme {
	return &PlotScheme{
		Background:   colornames.White,
		Sample:       colornames.Steelblue,
		SampleRadius: 2,
	}
}

// RenderPlot draws a 2 dimensional distribution as an image, scale pixels
// per unit of space. A nil scheme uses DefaultPlotScheme.
// Only 2D distributions can be plotted; anything else is an error.
func RenderPlot(points []Point, dims []float64, scale float64, scheme *PlotScheme) (image.Image, error) {
	if len(dims) != 2 {
		return nil, errors.Errorf("can only plot 2 dimensions, have %d", len(dims))
	}
	if scheme == nil {
		scheme = DefaultPlotScheme()
	}

	ctx := gg.NewContext(int(dims[0]*scale), int(dims[1]*scale))
	ctx.SetColor(scheme.Background)
	ctx.Clear()

	ctx.SetColor(scheme.Sample)
	for _, p := range points {
		ctx.DrawCircle(p[0]*scale, p[1]*scale, scheme.SampleRadius)
		ctx.Fill()
	}

	return ctx.Image(), nil
}

// SavePlot renders a 2D distribution & writes it to disk as a PNG.
// Essentially sugar around RenderPlot followed by a PNG encode.
func SavePlot(fpath string, points []Point, dims []float64, scale float64, scheme *PlotScheme) error {
	im, err := RenderPlot(points, dims, scale, scheme)
	if err != nil {
		return err
	}
	return gg.SavePNG(fpath, im)
}
