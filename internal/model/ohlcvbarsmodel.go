package model

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ OhlcvBarsModel = (*customOhlcvBarsModel)(nil)

type (
	// OhlcvBarsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customOhlcvBarsModel.
	OhlcvBarsModel interface {
		ohlcvBarsModel
		// RecentWindow returns up to limit bars ordered by bar date descending,
		// insertion order breaking ties.
		RecentWindow(ctx context.Context, limit int) ([]*OhlcvBars, error)
	}

	customOhlcvBarsModel struct {
		*defaultOhlcvBarsModel
	}
)

// NewOhlcvBarsModel returns a model for the database table.
func NewOhlcvBarsModel(conn sqlx.SqlConn) OhlcvBarsModel {
	return &customOhlcvBarsModel{
		defaultOhlcvBarsModel: newOhlcvBarsModel(conn),
	}
}

func (m *customOhlcvBarsModel) RecentWindow(ctx context.Context, limit int) ([]*OhlcvBars, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := fmt.Sprintf("select %s from %s order by bar_date desc, id desc limit $1",
		ohlcvBarsRows, m.table)
	var rows []*OhlcvBars
	if err := m.conn.QueryRowsCtx(ctx, &rows, query, limit); err != nil {
		return nil, err
	}
	return rows, nil
}
