// internal/app/task/job_cache_warmup.go
package task

import (
	"context"
	"log/slog"
	"time"
)

// PublicCacheRefresher 刷新所有板块的公开缓存，由 content.Registry 实现
type PublicCacheRefresher interface {
	RefreshPublicCaches(ctx context.Context) (int, error)
}

// CacheWarmupJob 定期重建公开列表缓存，避免缓存过期后的第一个请求直接打到数据库
type CacheWarmupJob struct {
	refresher PublicCacheRefresher
	logger    *slog.Logger
}

func NewCacheWarmupJob(refresher PublicCacheRefresher, logger *slog.Logger) *CacheWarmupJob {
	return &CacheWarmupJob{refresher: refresher, logger: logger}
}

func (j *CacheWarmupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	refreshed, err := j.refresher.RefreshPublicCaches(ctx)
	if err != nil {
		j.logger.Error("刷新公开缓存时出现错误", slog.Any("error", err), slog.Int("refreshed", refreshed))
		return
	}
	j.logger.Info("公开缓存已刷新", slog.Int("sections", refreshed))
}

func (j *CacheWarmupJob) Name() string {
	return "CacheWarmupJob"
}
