// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/pdiddy/kinact/pkg/types"
)

const (
	defaultPlotWidth = 800
	barHeight        = 22.0
	barGap           = 6.0
	marginTop        = 40.0
	marginBottom     = 36.0
	marginRight      = 30.0
	labelPad         = 10.0
)

// tagColors maps significance tags to bar colors: red for activated,
// blue for inhibited, black otherwise.
var tagColors = map[types.SignificanceTag]color.NRGBA{
	types.TagDefault:  {R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	types.TagPositive: {R: 0xcc, G: 0x33, B: 0x33, A: 0xff},
	types.TagNegative: {R: 0x33, G: 0x4d, B: 0xcc, A: 0xff},
}

// BarChart renders the display view as a horizontal bar chart PNG: one
// bar per kinase in the given (ascending z-score) order, colored by its
// significance tag. The view and tags slices run in parallel.
func BarChart(path string, view []types.KinaseScore, tags []types.SignificanceTag, cfg types.ReportConfig) error {
	if len(view) == 0 {
		return fmt.Errorf("no kinases to plot")
	}
	if len(tags) != len(view) {
		return fmt.Errorf("got %d tags for %d kinases", len(tags), len(view))
	}

	width := cfg.PlotWidth
	if width <= 0 {
		width = defaultPlotWidth
	}
	height := cfg.PlotHeight
	if height <= 0 {
		height = int(marginTop + marginBottom + float64(len(view))*(barHeight+barGap))
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	// Label gutter sized to the longest kinase name.
	var labelWidth float64
	for _, s := range view {
		if w, _ := dc.MeasureString(s.Kinase); w > labelWidth {
			labelWidth = w
		}
	}
	plotLeft := labelWidth + 2*labelPad
	plotRight := float64(width) - marginRight

	// Scale spans the z-score range, always including zero.
	minZ, maxZ := 0.0, 0.0
	for _, s := range view {
		if s.ZScore < minZ {
			minZ = s.ZScore
		}
		if s.ZScore > maxZ {
			maxZ = s.ZScore
		}
	}
	if minZ == maxZ {
		maxZ = minZ + 1
	}
	xAt := func(z float64) float64 {
		return plotLeft + (z-minZ)/(maxZ-minZ)*(plotRight-plotLeft)
	}

	dc.SetColor(color.Black)
	dc.DrawString("kinase activity (z-score)", plotLeft, marginTop-16)

	// Zero axis.
	zeroX := xAt(0)
	dc.SetColor(color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff})
	dc.SetLineWidth(1)
	dc.DrawLine(zeroX, marginTop, zeroX, float64(height)-marginBottom)
	dc.Stroke()

	for i, s := range view {
		y := marginTop + float64(i)*(barHeight+barGap)

		dc.SetColor(tagColors[tags[i]])
		x0, x1 := zeroX, xAt(s.ZScore)
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		dc.DrawRectangle(x0, y, x1-x0, barHeight)
		dc.Fill()

		dc.SetColor(color.Black)
		_, th := dc.MeasureString(s.Kinase)
		dc.DrawString(s.Kinase, plotLeft-labelPad-mustMeasure(dc, s.Kinase), y+barHeight/2+th/2-1)
	}

	// Axis extent labels.
	dc.SetColor(color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff})
	dc.DrawString(fmt.Sprintf("%.2f", minZ), plotLeft, float64(height)-marginBottom+16)
	maxLabel := fmt.Sprintf("%.2f", maxZ)
	dc.DrawString(maxLabel, plotRight-mustMeasure(dc, maxLabel), float64(height)-marginBottom+16)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing chart %s: %w", path, err)
	}
	return nil
}

func mustMeasure(dc *gg.Context, s string) float64 {
	w, _ := dc.MeasureString(s)
	return w
}
