package scrape

import "time"

// Kind selects which record shape a scrape cycle works with.
type Kind string

const (
	// KindQuote covers scalar currency pair quotes.
	KindQuote Kind = "quote"
	// KindBar covers daily index OHLCV bars.
	KindBar Kind = "bar"
)

// QuoteCandidate is a scalar instrument quote extracted from source content.
// Candidates are transient; they become durable only after reconciliation.
type QuoteCandidate struct {
	PairID    string
	Value     float64
	Synthetic bool
}

// BarCandidate is a daily OHLCV bar extracted from source content. Date is
// truncated to a UTC calendar day and acts as the natural key downstream.
type BarCandidate struct {
	Date      time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
	Synthetic bool
}
