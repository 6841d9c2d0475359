package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "未找到", err: constant.ErrNotFound, expected: http.StatusNotFound},
		{name: "未知板块", err: constant.ErrUnknownSection, expected: http.StatusNotFound},
		{name: "包装后的参数错误", err: fmt.Errorf("title: %w", constant.ErrBadRequest), expected: http.StatusBadRequest},
		{name: "验证码错误", err: constant.ErrCaptchaInvalid, expected: http.StatusBadRequest},
		{name: "文件过大", err: constant.ErrUploadTooLarge, expected: http.StatusRequestEntityTooLarge},
		{name: "冲突", err: constant.ErrConflict, expected: http.StatusConflict},
		{name: "令牌无效", err: constant.ErrInvalidToken, expected: http.StatusUnauthorized},
		{name: "禁止", err: constant.ErrForbidden, expected: http.StatusForbidden},
		{name: "其它错误", err: errors.New("db down"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusOf(tt.err))
		})
	}
}

func TestErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "内部错误不暴露细节", err: errors.New("dial tcp: refused"), code: http.StatusInternalServerError, message: "服务器内部错误"},
		{name: "业务错误返回原文", err: constant.ErrNotFound, code: http.StatusNotFound, message: constant.ErrNotFound.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/blog", nil)

			Error(c, tt.err)

			require.Equal(t, tt.code, w.Code)
			var body Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
