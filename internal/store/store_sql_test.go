package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"cotacao-api/internal/config"
	"cotacao-api/internal/model"
	"cotacao-api/internal/store"
	"cotacao-api/pkg/scrape"
)

func newMockStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	conn := sqlx.NewSqlConnFromDB(db)
	return store.New(conn, model.NewFinancialDataModel(conn), model.NewOhlcvBarsModel(conn)), mock
}

func oneQuote(value float64) []scrape.QuoteCandidate {
	return []scrape.QuoteCandidate{{PairID: "USD_BRL", Value: value}}
}

func TestApplyQuotesUpsertUpdatesExistingRow(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE public.financial_data").
		WithArgs("USD_BRL", 5.43, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := st.ApplyQuotes(context.Background(), config.PolicyUpsert, oneQuote(5.43), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyQuotesUpsertInsertsWhenAbsent(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE public.financial_data").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO public.financial_data").
		WithArgs("USD_BRL", 5.43, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := st.ApplyQuotes(context.Background(), config.PolicyUpsert, oneQuote(5.43), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A rival cycle can win the insert between the zero-row update and our own
// insert; the unique violation routes the write back through an update
// against the winner's row.
func TestApplyQuotesUpsertRecoversFromConcurrentInsert(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE public.financial_data").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO public.financial_data").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectExec("UPDATE public.financial_data").
		WithArgs("USD_BRL", 5.43, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := st.ApplyQuotes(context.Background(), config.PolicyUpsert, oneQuote(5.43), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyQuotesAppendAlwaysInserts(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO public.financial_data").
		WithArgs("USD_BRL", 5.43, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO public.financial_data").
		WithArgs("USD_BRL", 5.44, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	candidates := []scrape.QuoteCandidate{
		{PairID: "USD_BRL", Value: 5.43},
		{PairID: "USD_BRL", Value: 5.44},
	}
	err := st.ApplyQuotes(context.Background(), config.PolicyAppend, candidates, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyQuotesWrapsFailureAsUnavailable(t *testing.T) {
	st, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE public.financial_data").
		WillReturnError(errors.New("connection refused"))
	mock.ExpectRollback()

	err := st.ApplyQuotes(context.Background(), config.PolicyUpsert, oneQuote(5.43), time.Now().UTC())
	require.ErrorIs(t, err, store.ErrUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyBarsUpsertsByDateInOneTransaction(t *testing.T) {
	st, mock := newMockStore(t)
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO public.ohlcv_bars").
		WithArgs(date, 1.0, 2.0, 0.5, 1.5, int64(100), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO public.ohlcv_bars").
		WithArgs(date, 1.0, 3.0, 0.5, 2.5, int64(200), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	candidates := []scrape.BarCandidate{
		{Date: date, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100},
		{Date: date, Open: 1, High: 3, Low: 0.5, Close: 2.5, Volume: 200},
	}
	err := st.ApplyBars(context.Background(), candidates, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
