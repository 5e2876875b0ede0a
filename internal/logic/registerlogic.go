package logic

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/crypto/bcrypt"

	"cotacao-api/internal/errs"
	"cotacao-api/internal/model"
	"cotacao-api/internal/svc"
	"cotacao-api/internal/types"
)

type RegisterLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRegisterLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RegisterLogic {
	return &RegisterLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RegisterLogic) Register(req *types.RegisterReq) (*types.TokenResp, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, errs.New(http.StatusBadRequest, "email and password are required")
	}

	_, err := l.svcCtx.UsersModel.FindOne(l.ctx, email)
	switch {
	case err == nil:
		return nil, errs.New(http.StatusConflict, "email already registered")
	case errors.Is(err, model.ErrNotFound):
		// proceed
	default:
		l.Errorf("register: lookup email=%s err=%v", email, err)
		return nil, errs.New(http.StatusInternalServerError, "storage unavailable")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.New(http.StatusInternalServerError, "could not hash password")
	}

	_, err = l.svcCtx.UsersModel.Insert(l.ctx, &model.Users{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		l.Errorf("register: insert email=%s err=%v", email, err)
		return nil, errs.New(http.StatusConflict, "email already registered")
	}

	token, err := issueToken(l.svcCtx.Config.Auth.AccessSecret, l.svcCtx.Config.Auth.AccessExpire, email)
	if err != nil {
		return nil, errs.New(http.StatusInternalServerError, "could not issue token")
	}
	return &types.TokenResp{AccessToken: token, TokenType: tokenType}, nil
}
