package scrape

import "time"

// Baselines for generated series. Values only need to be plausible; every
// synthetic candidate carries the Synthetic tag so callers can tell it apart
// from real data.
const (
	syntheticQuoteBase = 5.0
	syntheticQuoteStep = 0.01
	syntheticBarBase   = 120000.0
	syntheticBarStep   = 150.0
	syntheticBarSpread = 0.004
	syntheticVolBase   = 1_000_000
	syntheticVolStep   = 5_000
)

// SyntheticQuotes produces count quote candidates cycling through the given
// pair IDs. Deterministic for a fixed anchor: the anchor only shifts which
// day the series pretends to describe, not the values. Never fails.
func SyntheticQuotes(pairIDs []string, count int, anchor time.Time) []QuoteCandidate {
	if count <= 0 || len(pairIDs) == 0 {
		return nil
	}
	out := make([]QuoteCandidate, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, QuoteCandidate{
			PairID:    pairIDs[i%len(pairIDs)],
			Value:     syntheticQuoteBase + syntheticQuoteStep*float64(i),
			Synthetic: true,
		})
	}
	return out
}

// SyntheticBars produces count daily bars walking backwards from the anchor
// date, one bar per calendar day, with small deterministic offsets per index.
func SyntheticBars(count int, anchor time.Time) []BarCandidate {
	if count <= 0 {
		return nil
	}
	day := anchor.UTC().Truncate(24 * time.Hour)
	out := make([]BarCandidate, 0, count)
	for i := 0; i < count; i++ {
		open := syntheticBarBase + syntheticBarStep*float64(i)
		out = append(out, BarCandidate{
			Date:      day.AddDate(0, 0, -i),
			Open:      open,
			High:      open * (1 + syntheticBarSpread),
			Low:       open * (1 - syntheticBarSpread),
			Close:     open + syntheticBarStep/2,
			Volume:    int64(syntheticVolBase + syntheticVolStep*i),
			Synthetic: true,
		})
	}
	return out
}
