package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"cotacao-api/internal/logic"
	"cotacao-api/internal/svc"
	"cotacao-api/internal/types"
)

func QuotesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.QuotesReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewQuotesLogic(r.Context(), svcCtx)
		resp, err := l.Quotes(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
