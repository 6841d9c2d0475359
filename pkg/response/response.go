/*
 * @Description: 统一的 JSON 返回结构和错误到状态码的映射
 * @Author: 安知鱼
 * @Date: 2025-06-15 12:16:18
 * @LastEditTime: 2026-10-19 15:50:36
 * @LastEditors: 安知鱼
 */
package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"

	"github.com/gin-gonic/gin"
)

// Response 是统一的API返回结构体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	SuccessWithStatus(c, http.StatusOK, data, message)
}

// SuccessWithStatus 成功响应，但允许自定义 HTTP 状态码，例如 201 Created。
func SuccessWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// StatusOf 把业务错误映射为 HTTP 状态码
func StatusOf(err error) int {
	switch {
	case errors.Is(err, constant.ErrNotFound), errors.Is(err, constant.ErrUnknownSection):
		return http.StatusNotFound
	case errors.Is(err, constant.ErrBadRequest),
		errors.Is(err, constant.ErrInvalidPublicID),
		errors.Is(err, constant.ErrUploadTypeDenied),
		errors.Is(err, constant.ErrCaptchaInvalid):
		return http.StatusBadRequest
	case errors.Is(err, constant.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, constant.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, constant.ErrUnauthorized), errors.Is(err, constant.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, constant.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Error 根据错误类型返回对应状态码，500 错误不向客户端暴露细节
func Error(c *gin.Context, err error) {
	code := StatusOf(err)
	if code == http.StatusInternalServerError {
		log.Printf("⚠️ [%s %s] 内部错误: %v", c.Request.Method, c.Request.URL.Path, err)
		Fail(c, code, "服务器内部错误")
		return
	}
	Fail(c, code, err.Error())
}
