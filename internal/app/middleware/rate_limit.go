/*
 * @Description: 频率限制中间件
 * @Author: 安知鱼
 * @Date: 2025-11-08 00:00:00
 * @LastEditTime: 2026-10-19 15:44:20
 * @LastEditors: 安知鱼
 */
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// 登录接口：每个 IP 每分钟 10 次，允许连续 5 次
	LoginRequestsPerMinute = 10
	LoginBurst             = 5

	limiterIdleTimeout = 10 * time.Minute
)

// IPRateLimiter 为每个 IP 维护一个令牌桶
type IPRateLimiter struct {
	limiters map[string]*limiterInfo
	mu       sync.Mutex
	every    rate.Limit
	burst    int
	stop     chan struct{}
	once     sync.Once
}

// limiterInfo 存储限流器及其最后访问时间
type limiterInfo struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
}

// NewIPRateLimiter 创建限流器并启动后台清理
func NewIPRateLimiter(requestsPerMinute, burst int) *IPRateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	l := &IPRateLimiter{
		limiters: make(map[string]*limiterInfo),
		every:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go l.cleanupStaleEntries(limiterIdleTimeout / 2)
	return l
}

// Allow 消耗 ip 的一个令牌
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	info, ok := l.limiters[ip]
	if !ok {
		info = &limiterInfo{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[ip] = info
	}
	info.lastAccessed = time.Now()
	l.mu.Unlock()
	return info.limiter.Allow()
}

// cleanupStaleEntries 定期删除长时间未访问的限流器
func (l *IPRateLimiter) cleanupStaleEntries(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			for ip, info := range l.limiters {
				if time.Since(info.lastAccessed) > limiterIdleTimeout {
					delete(l.limiters, ip)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// Stop 停止后台清理协程
func (l *IPRateLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// RateLimit 使用给定的限流器，onLimited 为 nil 时返回 429 JSON
func RateLimit(limiter *IPRateLimiter, onLimited gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		if onLimited != nil {
			onLimited(c)
		} else {
			response.Fail(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
		}
		c.Abort()
	}
}
