package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/setting"
)

// SessionTokens 登录成功后下发的令牌
type SessionTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // 毫秒时间戳
}

type TokenService interface {
	GenerateSessionTokens(ctx context.Context, admin *model.AdminUser) (*SessionTokens, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (accessToken string, expiresAt int64, err error)
	ParseAccessToken(ctx context.Context, accessToken string) (*auth.CustomClaims, error)
}

type tokenService struct {
	adminRepo  repository.AdminUserRepository
	settingSvc setting.SettingService
}

func NewTokenService(adminRepo repository.AdminUserRepository, settingSvc setting.SettingService) TokenService {
	return &tokenService{
		adminRepo:  adminRepo,
		settingSvc: settingSvc,
	}
}

// secret 每次都从 SettingService 读取，JWT_SECRET 被修改后立即生效
func (s *tokenService) secret() ([]byte, error) {
	jwtSecret := s.settingSvc.Get(constant.KeyJWTSecret.String())
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET 未从数据库加载, 无法处理令牌")
	}
	return []byte(jwtSecret), nil
}

func (s *tokenService) GenerateSessionTokens(ctx context.Context, admin *model.AdminUser) (*SessionTokens, error) {
	secret, err := s.secret()
	if err != nil {
		return nil, err
	}
	accessToken, expiresAt, err := auth.GenerateToken(admin.ID, admin.Username, secret)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := auth.GenerateRefreshToken(admin.ID, secret)
	if err != nil {
		return nil, err
	}
	return &SessionTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt.UnixMilli(),
	}, nil
}

func (s *tokenService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, int64, error) {
	secret, err := s.secret()
	if err != nil {
		return "", 0, err
	}

	claims, err := auth.ParseToken(refreshToken, auth.TokenTypeRefresh, secret)
	if err != nil {
		return "", 0, fmt.Errorf("无效或过期的刷新令牌: %w", err)
	}
	adminID, err := auth.AdminIDFromClaims(claims)
	if err != nil {
		return "", 0, err
	}

	// 账号被删除后刷新令牌随之失效
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			return "", 0, fmt.Errorf("%w: 管理员不存在", constant.ErrInvalidToken)
		}
		return "", 0, err
	}

	accessToken, expiresAt, err := auth.GenerateToken(admin.ID, admin.Username, secret)
	if err != nil {
		return "", 0, err
	}
	return accessToken, expiresAt.UnixMilli(), nil
}

// ParseAccessToken 负责解析和验证 access token
func (s *tokenService) ParseAccessToken(ctx context.Context, accessToken string) (*auth.CustomClaims, error) {
	secret, err := s.secret()
	if err != nil {
		return nil, err
	}
	return auth.ParseToken(accessToken, auth.TokenTypeAccess, secret)
}
