// Package render draws verification images of a calibrated track.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/calibration"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

var ErrRowMismatch = errors.New("rows do not match track")

type Options struct {
	Width       int     // width of a single panel
	Height      int     // height of a single panel
	Margin      float64 // pixels
	ArrowEvery  int     // draw a target heading arrow every n waypoints, 0 disables
	ArrowLength float64 // world units
}

func DefaultOptions() Options {
	return Options{Width: 800, Height: 800, Margin: 20, ArrowEvery: 5, ArrowLength: 0.5}
}

// transforms world coordinates into panel pixels (y axis up)
type viewport struct {
	minX, minY float64
	scale      float64
	offsetX    float64
	height     float64
	margin     float64
}

func newViewport(pts []geometry.Point, opts Options) viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	w := float64(opts.Width) - 2*opts.Margin
	h := float64(opts.Height) - 2*opts.Margin
	scale := math.Min(w/math.Max(maxX-minX, 1e-9), h/math.Max(maxY-minY, 1e-9))
	return viewport{
		minX: minX, minY: minY, scale: scale,
		height: float64(opts.Height), margin: opts.Margin,
	}
}

func (v viewport) shifted(dx float64) viewport {
	v.offsetX = dx
	return v
}

func (v viewport) xy(p geometry.Point) (x, y float64) {
	x = v.offsetX + v.margin + (p.X-v.minX)*v.scale
	y = v.height - v.margin - (p.Y-v.minY)*v.scale
	return x, y
}

// Render draws two panels side by side: the normalized difficulty on the
// left and the normalized throttle on the right. Values above 0.5 are drawn
// red (difficulty) or green (throttle), the opacity grows with the distance
// from 0.5.
func Render(track *model.Track, rows []calibration.Row, opts Options) (image.Image, error) {
	if len(rows) != len(track.Center) {
		return nil, fmt.Errorf("%w: %d rows for %d waypoints",
			ErrRowMismatch, len(rows), len(track.Center))
	}
	all := append(append(append([]geometry.Point{}, track.Center...), track.Inner...), track.Outer...)
	vp := newViewport(all, opts)

	dc := gg.NewContext(2*opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	panels := []struct {
		title string
		value func(r calibration.Row) float64
		// color for values >= 0.5
		high [3]float64
		low  [3]float64
	}{
		{
			title: "Normalized difficulty",
			value: func(r calibration.Row) float64 { return r.Normalized },
			high:  [3]float64{1, 0, 0},
			low:   [3]float64{0, 0.6, 0},
		},
		{
			title: "Throttle",
			value: func(r calibration.Row) float64 { return r.ThrottleNormalized },
			high:  [3]float64{0, 0.6, 0},
			low:   [3]float64{1, 0, 0},
		},
	}
	for k, panel := range panels {
		pv := vp.shifted(float64(k * opts.Width))
		for _, r := range rows {
			v := geometry.Clamp01(panel.value(r))
			c := panel.low
			if v >= 0.5 {
				c = panel.high
			}
			dc.SetRGBA(c[0], c[1], c[2], math.Abs(2*v-1))
			segment(dc, pv, track, r.Index, r.Next)
		}
		dc.SetRGB(0.5, 0.5, 0.5)
		dc.SetLineWidth(1)
		for _, line := range [][]geometry.Point{track.Inner, track.Outer} {
			polyline(dc, pv, line)
		}
		if !track.HasBorders() {
			polyline(dc, pv, track.Center)
		}
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(panel.title, float64(k*opts.Width)+opts.Margin, opts.Margin/2, 0, 0.5)
	}
	if opts.ArrowEvery > 0 {
		dc.SetRGB(0, 0, 1)
		dc.SetLineWidth(1.5)
		for _, r := range rows {
			if r.Index%opts.ArrowEvery == 0 {
				arrow(dc, vp, track.Center[r.Index], r.TargetHeading, opts.ArrowLength)
			}
		}
	}
	return dc.Image(), nil
}

func SavePNG(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}

// fills the track area between i and next, a thick center line segment for
// tracks without borders
func segment(dc *gg.Context, vp viewport, track *model.Track, i, next int) {
	if !track.HasBorders() {
		dc.SetLineWidth(6)
		x1, y1 := vp.xy(track.Center[i])
		x2, y2 := vp.xy(track.Center[next])
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		return
	}
	dc.NewSubPath()
	for _, p := range []geometry.Point{track.Outer[i], track.Outer[next], track.Inner[next], track.Inner[i]} {
		dc.LineTo(vp.xy(p))
	}
	dc.ClosePath()
	dc.Fill()
}

func polyline(dc *gg.Context, vp viewport, line []geometry.Point) {
	if len(line) == 0 {
		return
	}
	dc.NewSubPath()
	for _, p := range line {
		dc.LineTo(vp.xy(p))
	}
	dc.ClosePath()
	dc.Stroke()
}

func arrow(dc *gg.Context, vp viewport, at geometry.Point, heading, length float64) {
	tip := at.Add(geometry.Point{X: math.Cos(heading), Y: math.Sin(heading)}.Scale(length))
	x1, y1 := vp.xy(at)
	x2, y2 := vp.xy(tip)
	dc.DrawLine(x1, y1, x2, y2)
	// pixel y is flipped, so is the angle
	a := math.Atan2(y2-y1, x2-x1)
	const head = 6.0
	for _, d := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		dc.MoveTo(x2, y2)
		dc.LineTo(x2+head*math.Cos(a+d), y2+head*math.Sin(a+d))
	}
	dc.Stroke()
}
