/*
 * @Description: Redis 连接，不可用时返回 nil 由上层降级到内存缓存
 * @Author: 安知鱼
 * @Date: 2025-06-15 11:30:55
 * @LastEditTime: 2026-10-19 11:21:47
 * @LastEditors: 安知鱼
 */
package database

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/pkg/config"

	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 3 * time.Second

// NewRedisClient 返回 Redis 客户端。
// 未配置地址、DB 编号非法或连接失败时返回 (nil, nil)，这不是错误，调用方应改用内存缓存。
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	redisAddr := strings.TrimSpace(cfg.GetString(config.KeyRedisAddr))
	if redisAddr == "" {
		log.Println("⚠️  Redis 地址未配置，将使用内存缓存")
		return nil, nil
	}

	redisDB := 0
	if raw := strings.TrimSpace(cfg.GetString(config.KeyRedisDB)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			log.Printf("⚠️  无效的 Redis.DB 值 '%s'，将使用内存缓存", raw)
			return nil, nil
		}
		redisDB = n
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		Password:     cfg.GetString(config.KeyRedisPassword),
		DB:           redisDB,
		DialTimeout:  redisPingTimeout,
		ReadTimeout:  redisPingTimeout,
		WriteTimeout: redisPingTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("⚠️  连接 Redis (%s, DB %d) 失败: %v，将使用内存缓存", redisAddr, redisDB, err)
		rdb.Close()
		return nil, nil
	}

	log.Printf("✅ 成功连接到 Redis (%s, DB %d)", redisAddr, redisDB)
	return rdb, nil
}
