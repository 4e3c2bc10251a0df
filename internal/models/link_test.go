package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualifiedURL(t *testing.T) {
	tests := []struct {
		name     string
		origin   string
		shortURL string
		expected string
	}{
		{"leading slash", "https://sho.rt", "/abc123", "https://sho.rt/abc123"},
		{"no leading slash", "https://sho.rt", "abc123", "https://sho.rt/abc123"},
		{"origin with trailing slash", "https://sho.rt/", "/abc123", "https://sho.rt/abc123"},
		{"both slashes doubled", "https://sho.rt//", "//abc123", "https://sho.rt/abc123"},
		{"origin with trailing slash, bare code", "https://sho.rt/", "abc123", "https://sho.rt/abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QualifiedURL(tt.origin, tt.shortURL))
		})
	}
}

func TestCodeFromShortURL(t *testing.T) {
	tests := []struct {
		name     string
		shortURL string
		expected string
	}{
		{"backend form", "/abc123", "abc123"},
		{"bare code", "abc123", "abc123"},
		{"nested path keeps first segment", "/abc/def", "abc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CodeFromShortURL(tt.shortURL))
		})
	}
}

func TestIndexOf(t *testing.T) {
	links := []ShortLink{
		{ShortURL: "/a", OriginalURL: "https://a.example"},
		{ShortURL: "/b", OriginalURL: "https://b.example"},
	}

	assert.Equal(t, 1, IndexOf(links, "/b"))
	assert.Equal(t, -1, IndexOf(links, "b"))
	assert.Equal(t, -1, IndexOf(nil, "/a"))
}

func TestSumClicks(t *testing.T) {
	assert.Equal(t, 0, SumClicks(nil))
	assert.Equal(t, 0, SumClicks([]ClickCount{}))
	assert.Equal(t, 12, SumClicks([]ClickCount{{3}, {0}, {9}}))
}

func TestWeekLabels(t *testing.T) {
	// Wednesday 15 Oct 2025.
	now := time.Date(2025, time.October, 15, 23, 59, 0, 0, time.UTC)

	labels := WeekLabels(now)

	require.Len(t, labels, DaysPerWeek)
	assert.Equal(t, "12-10-2025", labels[0])
	assert.Equal(t, "15-10-2025", labels[int(now.Weekday())])
	assert.Equal(t, "18-10-2025", labels[6])
}

func TestWeekLabels_CrossesMonthBoundary(t *testing.T) {
	// Saturday 1 Nov 2025; the week starts on Sunday 26 Oct.
	now := time.Date(2025, time.November, 1, 8, 0, 0, 0, time.UTC)

	labels := WeekLabels(now)

	assert.Equal(t, "26-10-2025", labels[0])
	assert.Equal(t, "01-11-2025", labels[6])
}

func TestDailySeries_Chart(t *testing.T) {
	s := NewDailySeries(time.Date(2025, time.October, 12, 0, 0, 0, 0, time.UTC))
	s.Counts[3] = 5

	chart := s.Chart()

	require.Len(t, chart.Labels, DaysPerWeek)
	require.Len(t, chart.Series, DaysPerWeek)
	assert.Equal(t, []int{0, 0, 0, 5, 0, 0, 0}, chart.Series)
	assert.Equal(t, 5, s.Max())

	chart.Series[3] = 99
	assert.Equal(t, 5, s.Counts[3], "chart must not alias the series")
}
