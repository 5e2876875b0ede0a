package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticQuotes(t *testing.T) {
	anchor := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	pairs := []string{"USD_BRL", "EUR_BRL"}

	a := SyntheticQuotes(pairs, 5, anchor)
	b := SyntheticQuotes(pairs, 5, anchor)
	require.Len(t, a, 5)
	assert.Equal(t, a, b, "same anchor must reproduce the same series")

	for i, q := range a {
		assert.True(t, q.Synthetic, "candidate %d must be tagged synthetic", i)
		assert.Equal(t, pairs[i%2], q.PairID)
		assert.Greater(t, q.Value, 0.0)
	}
	assert.Less(t, a[0].Value, a[4].Value, "values vary monotonically by index")

	assert.Nil(t, SyntheticQuotes(pairs, 0, anchor))
	assert.Nil(t, SyntheticQuotes(nil, 5, anchor))
}

func TestSyntheticBars(t *testing.T) {
	anchor := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)

	bars := SyntheticBars(10, anchor)
	require.Len(t, bars, 10)
	assert.Equal(t, bars, SyntheticBars(10, anchor))

	seen := make(map[time.Time]bool)
	for i, bar := range bars {
		assert.True(t, bar.Synthetic)
		assert.False(t, seen[bar.Date], "bar %d duplicates date %s", i, bar.Date)
		seen[bar.Date] = true
		assert.GreaterOrEqual(t, bar.High, bar.Open)
		assert.LessOrEqual(t, bar.Low, bar.Open)
		assert.GreaterOrEqual(t, bar.Volume, int64(0))
		assert.Equal(t, 0, bar.Date.Hour(), "dates are truncated to calendar days")
	}
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC), bars[9].Date)
}
