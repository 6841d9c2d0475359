// internal/app/middleware/metrics.go
package middleware

import (
	"time"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 记录每个请求的路由、状态码和耗时。未匹配的路由统一记为 "unmatched"，避免标签数量失控。
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
