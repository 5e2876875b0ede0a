//go:build integration
// +build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"cotacao-api/internal/config"
	"cotacao-api/internal/model"
	"cotacao-api/internal/store"
	"cotacao-api/pkg/scrape"
)

func newIntegrationStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := os.Getenv("COTACAO_PG_DSN")
	if dsn == "" {
		t.Skip("Postgres not configured (COTACAO_PG_DSN empty)")
	}
	conn := sqlx.NewSqlConn("pgx", dsn)
	return store.New(conn, model.NewFinancialDataModel(conn), model.NewOhlcvBarsModel(conn))
}

func TestApplyQuotesUpsertKeepsOneRowPerPair(t *testing.T) {
	st := newIntegrationStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pairID := "ITEST_" + time.Now().UTC().Format("150405")
	first := []scrape.QuoteCandidate{{PairID: pairID, Value: 5.01}}
	second := []scrape.QuoteCandidate{{PairID: pairID, Value: 5.02}}

	require.NoError(t, st.ApplyQuotes(ctx, config.PolicyUpsert, first, time.Now().UTC()))
	require.NoError(t, st.ApplyQuotes(ctx, config.PolicyUpsert, second, time.Now().UTC()))

	rows, err := st.RecentQuotes(ctx, pairID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1, "upsert must not accumulate rows for a pair")
	assert.InDelta(t, 5.02, rows[0].Value, 1e-9)

	live, err := st.GetQuoteByPair(ctx, pairID)
	require.NoError(t, err)
	assert.InDelta(t, 5.02, live.Value, 1e-9)
}

func TestApplyBarsOverwritesSameDate(t *testing.T) {
	st := newIntegrationStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	date := time.Date(1999, 3, 9, 0, 0, 0, 0, time.UTC)
	first := []scrape.BarCandidate{{Date: date, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100}}
	second := []scrape.BarCandidate{{Date: date, Open: 1, High: 3, Low: 0.5, Close: 2.5, Volume: 200}}

	require.NoError(t, st.ApplyBars(ctx, first, time.Now().UTC()))
	require.NoError(t, st.ApplyBars(ctx, second, time.Now().UTC()))

	bar, err := st.GetBarByDate(ctx, date)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, bar.Close, 1e-9)
	assert.Equal(t, int64(200), bar.Volume)
}
