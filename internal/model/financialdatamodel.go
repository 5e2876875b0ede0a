package model

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ FinancialDataModel = (*customFinancialDataModel)(nil)

type (
	// FinancialDataModel is an interface to be customized, add more methods here,
	// and implement the added methods in customFinancialDataModel.
	FinancialDataModel interface {
		financialDataModel
		// FindLatestByPair returns the most recent row for a pair.
		FindLatestByPair(ctx context.Context, pairID string) (*FinancialData, error)
		// RecentWindow returns up to limit rows ordered by recency descending,
		// insertion order breaking ties. An empty pairID matches all pairs.
		RecentWindow(ctx context.Context, pairID string, limit int) ([]*FinancialData, error)
	}

	customFinancialDataModel struct {
		*defaultFinancialDataModel
	}
)

// NewFinancialDataModel returns a model for the database table.
func NewFinancialDataModel(conn sqlx.SqlConn) FinancialDataModel {
	return &customFinancialDataModel{
		defaultFinancialDataModel: newFinancialDataModel(conn),
	}
}

func (m *customFinancialDataModel) FindLatestByPair(ctx context.Context, pairID string) (*FinancialData, error) {
	query := fmt.Sprintf("select %s from %s where pair_id = $1 order by observed_at desc, id desc limit 1",
		financialDataRows, m.table)
	var resp FinancialData
	err := m.conn.QueryRowCtx(ctx, &resp, query, pairID)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *customFinancialDataModel) RecentWindow(ctx context.Context, pairID string, limit int) ([]*FinancialData, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rows []*FinancialData
	var err error
	if pairID == "" {
		query := fmt.Sprintf("select %s from %s order by observed_at desc, id desc limit $1",
			financialDataRows, m.table)
		err = m.conn.QueryRowsCtx(ctx, &rows, query, limit)
	} else {
		query := fmt.Sprintf("select %s from %s where pair_id = $1 order by observed_at desc, id desc limit $2",
			financialDataRows, m.table)
		err = m.conn.QueryRowsCtx(ctx, &rows, query, pairID, limit)
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}
