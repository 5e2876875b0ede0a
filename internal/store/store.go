package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"cotacao-api/internal/config"
	"cotacao-api/internal/model"
	"cotacao-api/pkg/scrape"
)

// ErrUnavailable wraps any failure of the durable medium. Callers must treat
// it as fatal for the cycle: the fallback chain itself depends on the store.
var ErrUnavailable = errors.New("store: unavailable")

const uniqueViolationCode = "23505"

// Store is the persistence adapter for quote and bar rows. All write paths
// are transactional per reconcile batch; the uniqueness invariants (one live
// row per pair under upsert, one row per bar date) hold under concurrent
// cycles.
type Store struct {
	conn   sqlx.SqlConn
	quotes model.FinancialDataModel
	bars   model.OhlcvBarsModel
}

// New wires a store over an open SQL connection and its table models.
func New(conn sqlx.SqlConn, quotes model.FinancialDataModel, bars model.OhlcvBarsModel) *Store {
	return &Store{conn: conn, quotes: quotes, bars: bars}
}

// GetQuoteByPair returns the live row for a pair, or model.ErrNotFound.
func (s *Store) GetQuoteByPair(ctx context.Context, pairID string) (*model.FinancialData, error) {
	row, err := s.quotes.FindLatestByPair(ctx, pairID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, unavailable(err)
	}
	return row, nil
}

// GetBarByDate returns the row for a calendar date, or model.ErrNotFound.
func (s *Store) GetBarByDate(ctx context.Context, date time.Time) (*model.OhlcvBars, error) {
	row, err := s.bars.FindOneByBarDate(ctx, date)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, unavailable(err)
	}
	return row, nil
}

// ApplyQuotes commits a batch of quote candidates as one logical unit under
// the given retrieval policy.
func (s *Store) ApplyQuotes(ctx context.Context, policy string, candidates []scrape.QuoteCandidate, observedAt time.Time) error {
	if len(candidates) == 0 {
		return nil
	}
	err := s.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		for _, c := range candidates {
			if policy == config.PolicyAppend {
				if err := appendQuote(ctx, session, c, observedAt); err != nil {
					return err
				}
				continue
			}
			if err := upsertQuote(ctx, session, c, observedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func appendQuote(ctx context.Context, session sqlx.Session, c scrape.QuoteCandidate, observedAt time.Time) error {
	const stmt = `
INSERT INTO public.financial_data (pair_id, value, observed_at)
VALUES ($1, $2, $3);`
	_, err := session.ExecCtx(ctx, stmt, c.PairID, c.Value, observedAt)
	return err
}

// upsertQuote keeps at most one live row per pair. Update-then-insert inside
// the batch transaction; a unique violation means a concurrent cycle won the
// insert, so the update is retried against that row.
func upsertQuote(ctx context.Context, session sqlx.Session, c scrape.QuoteCandidate, observedAt time.Time) error {
	const update = `
UPDATE public.financial_data
SET value = $2, observed_at = $3
WHERE pair_id = $1;`
	const insert = `
INSERT INTO public.financial_data (pair_id, value, observed_at)
VALUES ($1, $2, $3);`

	res, err := session.ExecCtx(ctx, update, c.PairID, c.Value, observedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	if _, err := session.ExecCtx(ctx, insert, c.PairID, c.Value, observedAt); err != nil {
		if isUniqueViolation(err) {
			_, err = session.ExecCtx(ctx, update, c.PairID, c.Value, observedAt)
		}
		return err
	}
	return nil
}

// ApplyBars commits a batch of bar candidates as one logical unit. Date
// dedup rides on the bar_date unique constraint: insert if absent, otherwise
// overwrite all OHLCV fields and refresh last_updated.
func (s *Store) ApplyBars(ctx context.Context, candidates []scrape.BarCandidate, updatedAt time.Time) error {
	if len(candidates) == 0 {
		return nil
	}
	const stmt = `
INSERT INTO public.ohlcv_bars (bar_date, open, high, low, close, volume, last_updated)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (bar_date) DO UPDATE SET
    open = EXCLUDED.open,
    high = EXCLUDED.high,
    low = EXCLUDED.low,
    close = EXCLUDED.close,
    volume = EXCLUDED.volume,
    last_updated = EXCLUDED.last_updated;`
	err := s.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		for _, c := range candidates {
			if _, err := session.ExecCtx(ctx, stmt,
				c.Date, c.Open, c.High, c.Low, c.Close, c.Volume, updatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// RecentQuotes returns up to n quote rows, newest first. Empty pairID means
// all pairs.
func (s *Store) RecentQuotes(ctx context.Context, pairID string, n int) ([]*model.FinancialData, error) {
	rows, err := s.quotes.RecentWindow(ctx, pairID, n)
	if err != nil {
		return nil, unavailable(err)
	}
	return rows, nil
}

// RecentBars returns up to n bars, newest date first.
func (s *Store) RecentBars(ctx context.Context, n int) ([]*model.OhlcvBars, error) {
	rows, err := s.bars.RecentWindow(ctx, n)
	if err != nil {
		return nil, unavailable(err)
	}
	return rows, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == uniqueViolationCode
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}
