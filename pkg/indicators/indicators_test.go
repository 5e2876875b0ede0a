package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	data := []float64{2, 4, 6, 8, 10}
	result := SMA(data, 3)
	require.Len(t, result, len(data))
	require.True(t, math.IsNaN(result[0]))
	require.True(t, math.IsNaN(result[1]))
	require.InDelta(t, 4.0, result[2], 1e-9)
	require.InDelta(t, 6.0, result[3], 1e-9)
	require.InDelta(t, 8.0, result[4], 1e-9)
}

func TestSMAShortSeries(t *testing.T) {
	result := SMA([]float64{1, 2}, 5)
	require.Len(t, result, 2)
	require.True(t, math.IsNaN(result[0]))
	require.True(t, math.IsNaN(result[1]))
}

func TestEMA(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	result := EMA(data, 3)
	require.Len(t, result, len(data))
	require.True(t, math.IsNaN(result[0]))
	require.True(t, math.IsNaN(result[1]))
	require.InDelta(t, 2.0, result[2], 1e-9)
	require.InDelta(t, 3.0, result[3], 1e-9)
	require.InDelta(t, 4.0, result[4], 1e-9)
	require.InDelta(t, 5.0, result[5], 1e-9)
}

func TestRSIFlatSeriesIsNeutral(t *testing.T) {
	closes := []float64{5, 5, 5, 5, 5, 5}
	rsi := RSI(closes, 3)
	require.Len(t, rsi, len(closes))
	require.InDelta(t, 50.0, rsi[len(rsi)-1], 1e-9)
}

func TestRSIMonotonicRiseIsMaxed(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	rsi := RSI(closes, 3)
	require.InDelta(t, 100.0, rsi[len(rsi)-1], 1e-9)
}

func TestATRConstantRange(t *testing.T) {
	bars := make([]Bar, 10)
	for i := range bars {
		close := 100.0 + float64(i)
		bars[i] = Bar{High: close + 1.5, Low: close - 1.5, Close: close}
	}
	atr := ATR(bars, 3)
	require.Len(t, atr, len(bars))
	// Ranges converge on high-low plus the one point drift between bars.
	require.InDelta(t, 4.0, atr[len(atr)-1], 0.25)
}

func TestSummarize(t *testing.T) {
	bars := []Bar{
		{High: 11, Low: 9, Close: 10},
		{High: 12, Low: 10, Close: 11},
		{High: 13, Low: 11, Close: 12},
		{High: 14, Low: 12, Close: 13},
		{High: 15, Low: 13, Close: 14},
	}
	s := Summarize(bars, 3)
	require.InDelta(t, 13.0, s.SMA, 1e-9)
	require.InDelta(t, 100.0, s.RSI, 1e-9)
	require.False(t, math.IsNaN(s.ATR))
}

func TestSummarizeEmptyWindow(t *testing.T) {
	s := Summarize(nil, 3)
	require.True(t, math.IsNaN(s.SMA))
	require.True(t, math.IsNaN(s.RSI))
	require.True(t, math.IsNaN(s.ATR))
}
