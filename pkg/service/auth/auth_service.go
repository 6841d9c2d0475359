/*
 * @Description: 后台管理员登录
 * @Author: 安知鱼
 * @Date: 2025-08-22 12:41:16
 * @LastEditTime: 2026-10-19 12:31:08
 * @LastEditors: 安知鱼
 */
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/security"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/imagecaptcha"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/setting"
)

// LoginRequest 登录表单
type LoginRequest struct {
	Username      string `json:"username" form:"username"`
	Password      string `json:"password" form:"password"`
	CaptchaID     string `json:"captcha_id" form:"captcha_id"`
	CaptchaAnswer string `json:"captcha_answer" form:"captcha_answer"`
}

// AuthService 定义了登录相关的业务逻辑接口
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*model.AdminUser, error)
	CaptchaRequired() bool
}

type authService struct {
	adminRepo  repository.AdminUserRepository
	settingSvc setting.SettingService
	captchaSvc imagecaptcha.ImageCaptchaService
}

// NewAuthService 是 authService 的构造函数
func NewAuthService(
	adminRepo repository.AdminUserRepository,
	settingSvc setting.SettingService,
	captchaSvc imagecaptcha.ImageCaptchaService,
) AuthService {
	return &authService{
		adminRepo:  adminRepo,
		settingSvc: settingSvc,
		captchaSvc: captchaSvc,
	}
}

// CaptchaRequired 登录是否需要图形验证码
func (s *authService) CaptchaRequired() bool {
	return s.settingSvc.GetBool(constant.KeyEnableLoginCaptcha.String())
}

// Login 校验验证码和账号密码，成功后记录最后登录时间
func (s *authService) Login(ctx context.Context, req LoginRequest) (*model.AdminUser, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: 用户名和密码不能为空", constant.ErrBadRequest)
	}

	if s.CaptchaRequired() {
		if err := s.captchaSvc.Verify(ctx, req.CaptchaID, req.CaptchaAnswer); err != nil {
			return nil, err
		}
	}

	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			return nil, fmt.Errorf("%w: 账号或密码错误", constant.ErrUnauthorized)
		}
		return nil, fmt.Errorf("数据库查询失败: %w", err)
	}
	if !security.CheckPasswordHash(req.Password, admin.PasswordHash) {
		return nil, fmt.Errorf("%w: 账号或密码错误", constant.ErrUnauthorized)
	}

	now := time.Now().UTC()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		log.Printf("⚠️ 更新管理员 '%s' 的最后登录时间失败: %v", admin.Username, err)
	}
	return admin, nil
}
