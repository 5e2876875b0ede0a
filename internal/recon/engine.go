package recon

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "cotacao-api/internal/cache"
	"cotacao-api/internal/config"
	"cotacao-api/internal/model"
	"cotacao-api/pkg/scrape"
)

// ErrNoData means every rung of the fallback chain came up empty: the source
// failed, the store holds no rows, and synthetic generation is disabled.
var ErrNoData = errors.New("recon: no data available")

// Outcome labels which rung of the fallback chain produced a window.
type Outcome string

const (
	OutcomeFresh     Outcome = "fresh"
	OutcomeCached    Outcome = "cached"
	OutcomeSynthetic Outcome = "synthetic"
)

// QuoteRecord is one served quote observation.
type QuoteRecord struct {
	PairID     string    `json:"pair_id"`
	Value      float64   `json:"value"`
	ObservedAt time.Time `json:"observed_at"`
	Synthetic  bool      `json:"synthetic,omitempty"`
}

// BarRecord is one served daily bar.
type BarRecord struct {
	Date      string  `json:"date"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
	Synthetic bool    `json:"synthetic,omitempty"`
}

// QuotesResult is a reconciled quote window plus its provenance.
type QuotesResult struct {
	Records  []QuoteRecord
	Outcome  Outcome
	SyncedAt time.Time
}

// BarsResult is a reconciled bar window plus its provenance.
type BarsResult struct {
	Records  []BarRecord
	Outcome  Outcome
	SyncedAt time.Time
}

// Store is the slice of the persistence adapter the engine needs.
type Store interface {
	ApplyQuotes(ctx context.Context, policy string, candidates []scrape.QuoteCandidate, observedAt time.Time) error
	ApplyBars(ctx context.Context, candidates []scrape.BarCandidate, updatedAt time.Time) error
	RecentQuotes(ctx context.Context, pairID string, n int) ([]*model.FinancialData, error)
	RecentBars(ctx context.Context, n int) ([]*model.OhlcvBars, error)
}

// Fetcher retrieves raw source content for one cycle.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Cache is the slice of the shared cache the engine needs. Satisfied by
// go-zero's cache.Cache.
type Cache interface {
	GetCtx(ctx context.Context, key string, val any) error
	SetWithExpireCtx(ctx context.Context, key string, val any, expire time.Duration) error
	IsNotFound(err error) bool
}

// Config enumerates the collaborators a reconcile engine needs. Cache may be
// nil; window caching then becomes a no-op.
type Config struct {
	Fetcher Fetcher
	Store   Store
	Scraper scrape.Config
	Sync    config.SyncConf
	Cache   Cache
	TTL     cachekeys.TTLSet
}

// Engine runs the sync-then-serve cycle: scrape the source, reconcile the
// candidates into the store, then answer from the store, degrading to cached
// rows and finally to synthetic records.
type Engine struct {
	fetcher Fetcher
	store   Store
	scraper scrape.Config
	sync    config.SyncConf
	cache   Cache
	ttl     cachekeys.TTLSet
	now     func() time.Time
}

func New(cfg Config) *Engine {
	return &Engine{
		fetcher: cfg.Fetcher,
		store:   cfg.Store,
		scraper: cfg.Scraper,
		sync:    cfg.Sync,
		cache:   cfg.Cache,
		ttl:     cfg.TTL,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// QuotesWindow reconciles the source into the store and returns the most
// recent n quotes, newest first. Empty pairID spans all configured pairs.
// Store failures abort the cycle; source failures degrade.
func (e *Engine) QuotesWindow(ctx context.Context, pairID string, n int) (*QuotesResult, error) {
	if n <= 0 {
		n = e.sync.Window
	}
	cycle := uuid.NewString()
	now := e.now()

	synced := false
	if content, err := e.fetcher.Fetch(ctx); err != nil {
		logx.WithContext(ctx).Errorf("recon: cycle=%s quotes fetch err=%v", cycle, err)
	} else {
		candidates := scrape.ExtractQuotes(content, e.scraper.Pairs)
		if len(candidates) == 0 {
			logx.WithContext(ctx).Infof("recon: cycle=%s quotes extraction yielded nothing", cycle)
		} else {
			if err := e.store.ApplyQuotes(ctx, e.sync.QuotesPolicy, candidates, now); err != nil {
				return nil, err
			}
			synced = true
			e.cacheLatestQuotes(ctx, candidates, now)
		}
	}

	if !synced {
		var cached []QuoteRecord
		if e.getCache(ctx, cachekeys.QuotesWindowKey(pairID, n), &cached) && len(cached) > 0 {
			logx.WithContext(ctx).Infof("recon: cycle=%s quotes window served from cache", cycle)
			return &QuotesResult{Records: cached, Outcome: OutcomeCached, SyncedAt: now}, nil
		}
	}

	rows, err := e.store.RecentQuotes(ctx, pairID, n)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return e.syntheticQuotes(ctx, cycle, pairID, n, now)
	}

	records := make([]QuoteRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, QuoteRecord{
			PairID:     row.PairId,
			Value:      row.Value,
			ObservedAt: row.ObservedAt,
		})
	}
	outcome := OutcomeCached
	if synced {
		outcome = OutcomeFresh
	}
	result := &QuotesResult{Records: records, Outcome: outcome, SyncedAt: now}
	e.setCache(ctx, cachekeys.QuotesWindowKey(pairID, n), records, cachekeys.QuotesWindowTTL(e.ttl))
	return result, nil
}

// BarsWindow reconciles daily bars and returns the most recent n, newest
// date first.
func (e *Engine) BarsWindow(ctx context.Context, n int) (*BarsResult, error) {
	if n <= 0 {
		n = e.sync.Window
	}
	cycle := uuid.NewString()
	now := e.now()

	synced := false
	if content, err := e.fetcher.Fetch(ctx); err != nil {
		logx.WithContext(ctx).Errorf("recon: cycle=%s bars fetch err=%v", cycle, err)
	} else {
		candidates := scrape.ExtractBars(content, e.scraper.BarWindow)
		if len(candidates) == 0 {
			logx.WithContext(ctx).Infof("recon: cycle=%s bars extraction yielded nothing", cycle)
		} else {
			if err := e.store.ApplyBars(ctx, candidates, now); err != nil {
				return nil, err
			}
			synced = true
		}
	}

	if !synced {
		var cached []BarRecord
		if e.getCache(ctx, cachekeys.BarsWindowKey(n), &cached) && len(cached) > 0 {
			logx.WithContext(ctx).Infof("recon: cycle=%s bars window served from cache", cycle)
			return &BarsResult{Records: cached, Outcome: OutcomeCached, SyncedAt: now}, nil
		}
	}

	rows, err := e.store.RecentBars(ctx, n)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return e.syntheticBars(ctx, cycle, n, now)
	}

	records := make([]BarRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, BarRecord{
			Date:   row.BarDate.Format("2006-01-02"),
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}
	outcome := OutcomeCached
	if synced {
		outcome = OutcomeFresh
	}
	result := &BarsResult{Records: records, Outcome: outcome, SyncedAt: now}
	e.setCache(ctx, cachekeys.BarsWindowKey(n), records, cachekeys.BarsWindowTTL(e.ttl))
	return result, nil
}

// syntheticQuotes is the last rung: generated records, never persisted and
// never cached.
func (e *Engine) syntheticQuotes(ctx context.Context, cycle, pairID string, n int, now time.Time) (*QuotesResult, error) {
	if !e.sync.SyntheticFallback {
		return nil, ErrNoData
	}
	ids := e.scraper.PairIDs()
	if pairID != "" {
		ids = []string{pairID}
	}
	logx.WithContext(ctx).Infof("recon: cycle=%s serving synthetic quotes n=%d", cycle, n)
	records := make([]QuoteRecord, 0, n)
	for _, c := range scrape.SyntheticQuotes(ids, n, now) {
		records = append(records, QuoteRecord{
			PairID:     c.PairID,
			Value:      c.Value,
			ObservedAt: now,
			Synthetic:  true,
		})
	}
	return &QuotesResult{Records: records, Outcome: OutcomeSynthetic, SyncedAt: now}, nil
}

func (e *Engine) syntheticBars(ctx context.Context, cycle string, n int, now time.Time) (*BarsResult, error) {
	if !e.sync.SyntheticFallback {
		return nil, ErrNoData
	}
	logx.WithContext(ctx).Infof("recon: cycle=%s serving synthetic bars n=%d", cycle, n)
	records := make([]BarRecord, 0, n)
	for _, c := range scrape.SyntheticBars(n, now) {
		records = append(records, BarRecord{
			Date:      c.Date.Format("2006-01-02"),
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
			Synthetic: true,
		})
	}
	return &BarsResult{Records: records, Outcome: OutcomeSynthetic, SyncedAt: now}, nil
}

// cacheLatestQuotes mirrors freshly synced values under per-pair keys so
// external readers can peek at the latest observation without a cycle.
func (e *Engine) cacheLatestQuotes(ctx context.Context, candidates []scrape.QuoteCandidate, now time.Time) {
	if e.cache == nil {
		return
	}
	for _, c := range candidates {
		record := QuoteRecord{PairID: c.PairID, Value: c.Value, ObservedAt: now}
		e.setCache(ctx, cachekeys.QuoteLatestKey(c.PairID), record, cachekeys.QuoteLatestTTL(e.ttl))
	}
}

// getCache reports whether the key was warm, filling val on a hit. Cache
// trouble is logged and treated as a miss; the store remains the source of
// truth.
func (e *Engine) getCache(ctx context.Context, key string, val any) bool {
	if e.cache == nil {
		return false
	}
	if err := e.cache.GetCtx(ctx, key, val); err != nil {
		if !e.cache.IsNotFound(err) {
			logx.WithContext(ctx).Errorf("recon: get cache key=%s err=%v", key, err)
		}
		return false
	}
	return true
}

// setCache is best effort like getCache.
func (e *Engine) setCache(ctx context.Context, key string, value any, expire time.Duration) {
	if e.cache == nil {
		return
	}
	if err := e.cache.SetWithExpireCtx(ctx, key, value, expire); err != nil {
		logx.WithContext(ctx).Errorf("recon: set cache key=%s err=%v", key, err)
	}
}
