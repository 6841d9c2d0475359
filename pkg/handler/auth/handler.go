/*
 * @Description: 后台登录相关接口
 * @Author: 安知鱼
 * @Date: 2025-06-15 12:16:18
 * @LastEditTime: 2026-10-19 16:02:44
 * @LastEditors: 安知鱼
 */
package auth_handler

import (
	"net/http"
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/pkg/response"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/auth"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/imagecaptcha"

	"github.com/gin-gonic/gin"
)

// AuthHandler 封装了所有认证相关的控制器方法
type AuthHandler struct {
	authSvc    auth.AuthService
	tokenSvc   auth.TokenService
	captchaSvc imagecaptcha.ImageCaptchaService
}

// NewAuthHandler 是 AuthHandler 的构造函数，用于依赖注入
func NewAuthHandler(authSvc auth.AuthService, tokenSvc auth.TokenService, captchaSvc imagecaptcha.ImageCaptchaService) *AuthHandler {
	return &AuthHandler{
		authSvc:    authSvc,
		tokenSvc:   tokenSvc,
		captchaSvc: captchaSvc,
	}
}

// RefreshTokenRequest 定义了刷新令牌请求的结构
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// CaptchaResponse 图形验证码
type CaptchaResponse struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	Required bool   `json:"required"`
}

// GetCaptcha 生成登录验证码
// @Summary      获取登录验证码
// @Tags         认证
// @Produce      json
// @Success      200  {object}  response.Response{data=CaptchaResponse}
// @Router       /auth/captcha [get]
func (h *AuthHandler) GetCaptcha(c *gin.Context) {
	id, image, err := h.captchaSvc.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, CaptchaResponse{ID: id, Image: image, Required: h.authSvc.CaptchaRequired()}, "获取验证码成功")
}

// Login 管理员登录
// @Summary      管理员登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        body  body      auth.LoginRequest  true  "登录信息"
// @Success      200   {object}  response.Response{data=auth.SessionTokens}
// @Failure      401   {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	admin, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	tokens, err := h.tokenSvc.GenerateSessionTokens(c.Request.Context(), admin)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokens, "登录成功")
}

// RefreshToken 使用刷新令牌换取新的访问令牌
// @Summary      刷新访问令牌
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        body  body      RefreshTokenRequest  true  "刷新令牌"
// @Success      200   {object}  response.Response
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		response.Fail(c, http.StatusBadRequest, "缺少 refresh_token")
		return
	}

	accessToken, expiresAt, err := h.tokenSvc.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "刷新令牌无效或已过期")
		return
	}
	response.Success(c, gin.H{
		"access_token": accessToken,
		"expires_at":   expiresAt,
	}, "刷新成功")
}
