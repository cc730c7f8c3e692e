package service

import (
	"Tally/config"
	"Tally/dao"
	"Tally/dao/cache"
	"Tally/models"
	"Tally/pkg/jwt"
	"Tally/pkg/snowflake"
	"Tally/types"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.TokenResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.TokenResponse, error)
	Logout(ctx context.Context, sessionID string)
}

var _ IAuthService = (*AuthService)(nil)

type AuthService struct {
	Config   *config.Config
	UserDAO  *dao.Users
	Sessions *cache.SessionStorage
}

func (a *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.TokenResponse, error) {
	if a.UserDAO.IsEmailExist(ctx, req.Email) {
		return nil, errors.New("邮箱已注册")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.Users{
		ID:           uint64(snowflake.GenUserID()),
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := a.UserDAO.Create(ctx, user); err != nil {
		return nil, errors.New("创建用户失败: " + err.Error())
	}

	return a.issueToken(ctx, user.ID)
}

func (a *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.TokenResponse, error) {
	user, err := a.UserDAO.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("邮箱或密码错误")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errors.New("邮箱或密码错误")
	}

	return a.issueToken(ctx, user.ID)
}

// Logout 删掉 redis 会话，旧 token 立刻失效
func (a *AuthService) Logout(ctx context.Context, sessionID string) {
	a.Sessions.Del(ctx, sessionID)
}

func (a *AuthService) issueToken(ctx context.Context, uid uint64) (*types.TokenResponse, error) {
	sid := uuid.NewString()
	if err := a.Sessions.Set(ctx, sid, uid); err != nil {
		return nil, errors.New("写入会话失败: " + err.Error())
	}

	expiresIn := a.Config.Jwt.ExpiresTime
	if expiresIn <= 0 {
		expiresIn = 7200
	}
	token, err := jwt.GenerateToken(
		[]byte(a.Config.Jwt.Secret),
		uid,
		sid,
		"access",
		time.Duration(expiresIn)*time.Second,
	)
	if err != nil {
		return nil, err
	}

	return &types.TokenResponse{
		UserID:      uid,
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}
