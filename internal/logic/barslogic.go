package logic

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"cotacao-api/internal/svc"
	"cotacao-api/internal/types"
)

type BarsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewBarsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BarsLogic {
	return &BarsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *BarsLogic) Bars(req *types.BarsReq) (*types.BarsResp, error) {
	result, err := l.svcCtx.Engine.BarsWindow(l.ctx, req.N)
	if err != nil {
		return nil, mapEngineError(l.Logger, "bars", err)
	}

	records := make([]types.BarRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, types.BarRecord{
			Date:      rec.Date,
			Open:      rec.Open,
			High:      rec.High,
			Low:       rec.Low,
			Close:     rec.Close,
			Volume:    rec.Volume,
			Synthetic: rec.Synthetic,
		})
	}
	return &types.BarsResp{
		AsOf:    result.SyncedAt.Format(time.RFC3339),
		Source:  string(result.Outcome),
		Records: records,
	}, nil
}
