package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortdash/internal/models"
)

func weekChart(series ...int) models.ChartData {
	labels := []string{"12-10-2025", "13-10-2025", "14-10-2025", "15-10-2025", "16-10-2025", "17-10-2025", "18-10-2025"}
	return models.ChartData{Labels: labels, Series: series}
}

func TestNewChartView_Empty(t *testing.T) {
	v := newChartView(weekChart(0, 0, 0, 0, 0, 0, 0))

	require.Len(t, v.Points, 7)
	for _, p := range v.Points {
		assert.Equal(t, v.Bottom, p.Y, "zero sits on the x axis")
	}
	assert.Equal(t, v.Left, v.Points[0].X)
	assert.Equal(t, v.Right, v.Points[6].X)
	assert.Equal(t, []chartTick{{Y: v.Bottom, Value: 0}}, v.Ticks)
	assert.Len(t, strings.Fields(v.Polyline), 7)
}

func TestNewChartView_ScalesToPeak(t *testing.T) {
	v := newChartView(weekChart(0, 0, 0, 12, 0, 0, 0))

	assert.Equal(t, v.Top, v.Points[3].Y)
	assert.Equal(t, "15-10-2025", v.Points[3].Label)
	assert.Equal(t, 12, v.Points[3].Value)
	require.Len(t, v.Ticks, 3)
	assert.Equal(t, 6, v.Ticks[1].Value)
	assert.InDelta(t, (v.Top+v.Bottom)/2, v.Ticks[1].Y, 0.001)
}

func TestNewChartView_SinglePoint(t *testing.T) {
	v := newChartView(models.ChartData{Labels: []string{"a"}, Series: []int{1}})

	require.Len(t, v.Points, 1)
	assert.Equal(t, v.Left, v.Points[0].X)
	assert.Equal(t, v.Top, v.Points[0].Y)
}
