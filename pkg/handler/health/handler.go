/*
 * @Description: 健康检查和版本信息
 * @Author: 安知鱼
 * @Date: 2025-09-26 09:52:32
 * @LastEditTime: 2026-10-19 16:05:12
 * @LastEditors: 安知鱼
 */
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-cms/pkg/response"

	"github.com/gin-gonic/gin"
)

// Pinger 检查某个依赖是否可用，例如 *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler 健康检查处理器
type Handler struct {
	db Pinger
}

// NewHandler 创建健康检查处理器，db 为 nil 时只返回版本信息
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// Health 返回进程和数据库状态
// @Summary      健康检查
// @Tags         辅助工具
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")

	data := gin.H{
		"status":  "ok",
		"version": version.GetBuildInfo(),
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			data["status"] = "degraded"
			data["database"] = err.Error()
			response.SuccessWithStatus(c, http.StatusServiceUnavailable, data, "数据库不可用")
			return
		}
		data["database"] = "ok"
	}
	response.Success(c, data, "服务正常")
}
