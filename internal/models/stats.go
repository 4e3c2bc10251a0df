package models

import "time"

// DaysPerWeek is the number of buckets in a daily series.
const DaysPerWeek = 7

// WeekLabelLayout formats chart labels as dd-MM-yyyy.
const WeekLabelLayout = "02-01-2006"

// ClickCount is one per-link entry of a click breakdown.
type ClickCount struct {
	ClickCount int `json:"click_count"`
}

// AggregateStats holds the dashboard summary counters.
type AggregateStats struct {
	TotalURLs        int
	TotalURLsToday   int
	TotalClicks      int
	TotalClicksToday int
}

// SumClicks adds up a click breakdown. An empty breakdown sums to zero.
func SumClicks(counts []ClickCount) int {
	total := 0
	for _, c := range counts {
		total += c.ClickCount
	}
	return total
}

// DailySeries is a Sunday-to-Saturday click histogram. Labels and Counts are
// aligned by index.
type DailySeries struct {
	Labels [DaysPerWeek]string
	Counts [DaysPerWeek]int
}

// NewDailySeries returns an all-zero series labelled for the week containing now.
func NewDailySeries(now time.Time) DailySeries {
	return DailySeries{Labels: WeekLabels(now)}
}

// WeekLabels returns the dates of the Sunday-started week containing now.
func WeekLabels(now time.Time) [DaysPerWeek]string {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	start := day.AddDate(0, 0, -int(day.Weekday()))

	var labels [DaysPerWeek]string
	for i := range labels {
		labels[i] = start.AddDate(0, 0, i).Format(WeekLabelLayout)
	}
	return labels
}

// ChartData is the chart-ready projection of a daily series.
type ChartData struct {
	Labels []string
	Series []int
}

// Chart projects the series into chart data.
func (s DailySeries) Chart() ChartData {
	return ChartData{
		Labels: append([]string(nil), s.Labels[:]...),
		Series: append([]int(nil), s.Counts[:]...),
	}
}

// Max returns the largest bucket, used to scale the chart.
func (s DailySeries) Max() int {
	m := 0
	for _, c := range s.Counts {
		if c > m {
			m = c
		}
	}
	return m
}
