package logic

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"cotacao-api/internal/errs"
	"cotacao-api/internal/recon"
	"cotacao-api/internal/store"
	"cotacao-api/internal/svc"
	"cotacao-api/internal/types"
)

type QuotesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewQuotesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *QuotesLogic {
	return &QuotesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *QuotesLogic) Quotes(req *types.QuotesReq) (*types.QuotesResp, error) {
	if req.Pair != "" && !l.knownPair(req.Pair) {
		return nil, errs.New(http.StatusNotFound, "unknown pair")
	}

	result, err := l.svcCtx.Engine.QuotesWindow(l.ctx, req.Pair, req.N)
	if err != nil {
		return nil, mapEngineError(l.Logger, "quotes", err)
	}

	records := make([]types.QuoteRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, types.QuoteRecord{
			PairId:     rec.PairID,
			Value:      rec.Value,
			ObservedAt: rec.ObservedAt.Format(time.RFC3339),
			Synthetic:  rec.Synthetic,
		})
	}
	return &types.QuotesResp{
		AsOf:    result.SyncedAt.Format(time.RFC3339),
		Source:  string(result.Outcome),
		Records: records,
	}, nil
}

func (l *QuotesLogic) knownPair(pairID string) bool {
	cfg := l.svcCtx.Config.Scraper.Value
	if cfg == nil {
		return false
	}
	_, ok := cfg.Pairs[pairID]
	return ok
}

// mapEngineError translates engine failures into serveable statuses. Store
// trouble is a server fault; an exhausted fallback chain means the service
// genuinely has nothing to say.
func mapEngineError(logger logx.Logger, op string, err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		logger.Errorf("%s: %v", op, err)
		return errs.New(http.StatusInternalServerError, "storage unavailable")
	}
	if errors.Is(err, recon.ErrNoData) {
		return errs.New(http.StatusServiceUnavailable, "no data available")
	}
	return err
}
