package cache

import (
	"fmt"
	"strings"
	"time"

	"cotacao-api/internal/config"
)

// Namespace is the Redis key prefix for the cotacao application.
const Namespace = "cotacao"

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const (
	TTLShort  TTLClass = "short"
	TTLMedium TTLClass = "medium"
	TTLLong   TTLClass = "long"
)

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Short:  durationOrDefault(cfg.Short, 10*time.Second),
		Medium: durationOrDefault(cfg.Medium, time.Minute),
		Long:   durationOrDefault(cfg.Long, 5*time.Minute),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLShort:
		return t.Short
	case TTLMedium:
		return t.Medium
	case TTLLong:
		return t.Long
	default:
		return 0
	}
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// --- Quote & Bar Keys -------------------------------------------------------

// QuoteLatestKey stores the latest value for a single pair.
func QuoteLatestKey(pairID string) string {
	return formatKey("quote", "latest", pairID)
}

// QuotesWindowKey stores the rendered recent-window payload for quotes.
func QuotesWindowKey(pairID string, n int) string {
	return formatKey("quotes", "window", pairID, fmt.Sprintf("%d", n))
}

// BarsWindowKey stores the rendered recent-window payload for OHLCV bars.
func BarsWindowKey(n int) string {
	return formatKey("bars", "window", fmt.Sprintf("%d", n))
}

// QuotesWindowTTL is short: quote windows go stale fast.
func QuotesWindowTTL(set TTLSet) time.Duration {
	return set.Duration(TTLShort)
}

// BarsWindowTTL is medium: daily bars change once per trading day.
func BarsWindowTTL(set TTLSet) time.Duration {
	return set.Duration(TTLMedium)
}

// QuoteLatestTTL matches the quotes window bucket.
func QuoteLatestTTL(set TTLSet) time.Duration {
	return set.Duration(TTLShort)
}
