package logic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/crypto/bcrypt"

	"cotacao-api/internal/errs"
	"cotacao-api/internal/model"
	"cotacao-api/internal/svc"
	"cotacao-api/internal/types"
)

type LoginLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLoginLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LoginLogic {
	return &LoginLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *LoginLogic) Login(req *types.LoginReq) (*types.TokenResp, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := l.svcCtx.UsersModel.FindOne(l.ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errs.New(http.StatusUnauthorized, "invalid credentials")
		}
		l.Errorf("login: lookup email=%s err=%v", email, err)
		return nil, errs.New(http.StatusInternalServerError, "storage unavailable")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errs.New(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := issueToken(l.svcCtx.Config.Auth.AccessSecret, l.svcCtx.Config.Auth.AccessExpire, email)
	if err != nil {
		return nil, errs.New(http.StatusInternalServerError, "could not issue token")
	}
	return &types.TokenResp{AccessToken: token, TokenType: tokenType}, nil
}
