package handlers

import (
	"fmt"
	"strings"

	"shortdash/internal/models"
)

// Chart geometry in SVG user units.
const (
	chartWidth  = 700
	chartHeight = 280
	chartLeft   = 56
	chartRight  = 16
	chartTop    = 16
	chartBottom = 56
)

type chartPoint struct {
	X, Y  float64
	Value int
	Label string
}

type chartTick struct {
	Y     float64
	Value int
}

// chartView is a line chart laid out for the dashboard's SVG.
type chartView struct {
	Width, Height int
	Left, Bottom  float64
	Right, Top    float64
	Points        []chartPoint
	Polyline      string
	Ticks         []chartTick
}

func newChartView(data models.ChartData) chartView {
	v := chartView{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   chartLeft,
		Right:  chartWidth - chartRight,
		Top:    chartTop,
		Bottom: chartHeight - chartBottom,
	}

	peak := 0
	for _, n := range data.Series {
		peak = max(peak, n)
	}
	scale := max(peak, 1)

	plotW := v.Right - v.Left
	plotH := v.Bottom - v.Top
	y := func(n int) float64 { return v.Bottom - plotH*float64(n)/float64(scale) }

	step := 0.0
	if len(data.Series) > 1 {
		step = plotW / float64(len(data.Series)-1)
	}

	coords := make([]string, 0, len(data.Series))
	for i, n := range data.Series {
		p := chartPoint{X: v.Left + step*float64(i), Y: y(n), Value: n}
		if i < len(data.Labels) {
			p.Label = data.Labels[i]
		}
		v.Points = append(v.Points, p)
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
	}
	v.Polyline = strings.Join(coords, " ")

	v.Ticks = append(v.Ticks, chartTick{Y: y(0), Value: 0})
	if peak > 1 {
		v.Ticks = append(v.Ticks, chartTick{Y: y(peak / 2), Value: peak / 2})
	}
	if peak > 0 {
		v.Ticks = append(v.Ticks, chartTick{Y: y(peak), Value: peak})
	}
	return v
}
