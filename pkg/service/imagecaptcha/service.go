// pkg/service/imagecaptcha/service.go
/*
 * @Description: 登录页图形验证码，答案存放在缓存中，验证一次即失效
 * @Author: 安知鱼
 * @Date: 2026-01-20
 */
package imagecaptcha

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/utility"

	"github.com/google/uuid"
	"github.com/mojocn/base64Captcha"
)

const (
	captchaCachePrefix = "captcha:image:"
	// CaptchaTTL 验证码有效期
	CaptchaTTL    = 5 * time.Minute
	captchaLength = 4
	// 排除容易混淆的字符
	captchaSource = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"
)

// ImageCaptchaService 定义了图形验证码服务的接口
type ImageCaptchaService interface {
	// Generate 生成验证码，返回验证码ID和 Base64 图片
	Generate(ctx context.Context) (captchaID string, imageBase64 string, err error)
	// Verify 校验答案，无论对错都会删除该验证码
	Verify(ctx context.Context, captchaID, answer string) error
}

type imageCaptchaService struct {
	cacheSvc utility.CacheService
	driver   base64Captcha.Driver
}

// NewImageCaptchaService 创建 ImageCaptchaService
func NewImageCaptchaService(cacheSvc utility.CacheService) ImageCaptchaService {
	return &imageCaptchaService{
		cacheSvc: cacheSvc,
		driver: base64Captcha.NewDriverString(
			80, 240, 0, 0, captchaLength, captchaSource, nil, nil, nil,
		),
	}
}

func (s *imageCaptchaService) Generate(ctx context.Context) (string, string, error) {
	_, content, answer := s.driver.GenerateIdQuestionAnswer()
	item, err := s.driver.DrawCaptcha(content)
	if err != nil {
		return "", "", fmt.Errorf("生成验证码失败: %w", err)
	}

	captchaID := uuid.New().String()
	if err := s.cacheSvc.Set(ctx, captchaCachePrefix+captchaID, strings.ToLower(answer), CaptchaTTL); err != nil {
		return "", "", fmt.Errorf("保存验证码失败: %w", err)
	}
	return captchaID, item.EncodeB64string(), nil
}

func (s *imageCaptchaService) Verify(ctx context.Context, captchaID, answer string) error {
	captchaID = strings.TrimSpace(captchaID)
	answer = strings.TrimSpace(answer)
	if captchaID == "" || answer == "" {
		return constant.ErrCaptchaInvalid
	}

	cacheKey := captchaCachePrefix + captchaID
	stored, err := s.cacheSvc.Get(ctx, cacheKey)
	if err != nil {
		return fmt.Errorf("读取验证码失败: %w", err)
	}
	// 一次性验证码，防止暴力破解
	_ = s.cacheSvc.Delete(ctx, cacheKey)

	if stored == "" || strings.ToLower(answer) != stored {
		return constant.ErrCaptchaInvalid
	}
	return nil
}
