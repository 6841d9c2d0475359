// internal/app/task/broker.go
package task

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/anzhiyu-c/anheyu-cms/pkg/service/cleanup"

	"github.com/robfig/cron/v3"
)

const (
	defaultWorkerCount = 2
	jobQueueSize       = 64
)

// Broker 负责周期任务的注册和一次性后台任务的派发
type Broker struct {
	cron       *cron.Cron
	logger     *slog.Logger
	cleanupSvc cleanup.ICleanupService
	refresher  PublicCacheRefresher

	jobQueue chan Job
	wg       sync.WaitGroup
	mu       sync.RWMutex
	stopped  bool
}

// NewBroker 是 Broker 的构造函数。
func NewBroker(cleanupSvc cleanup.ICleanupService, refresher PublicCacheRefresher) *Broker {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "cron")

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(defaultWrappers(logger, cron.DelayIfStillRunning(cron.DefaultLogger))...),
	)

	b := &Broker{
		cron:       c,
		logger:     logger,
		cleanupSvc: cleanupSvc,
		refresher:  refresher,
		jobQueue:   make(chan Job, jobQueueSize),
	}
	b.startWorkerPool(defaultWorkerCount)
	return b
}

// startWorkerPool 启动固定数量的 worker 处理 Dispatch 派发的任务
func (b *Broker) startWorkerPool(count int) {
	chain := cron.NewChain(defaultWrappers(b.logger)...)
	for i := 0; i < count; i++ {
		b.wg.Add(1)
		go func(workerID int) {
			defer b.wg.Done()
			for job := range b.jobQueue {
				b.logger.Info("Worker 领取任务", "worker_id", workerID, "job_name", job.Name())
				chain.Then(job).Run()
			}
		}(i + 1)
	}
}

// RegisterCronJobs 注册所有周期性任务
func (b *Broker) RegisterCronJobs() error {
	b.logger.Info("开始注册周期任务...")

	jobs := []struct {
		spec string
		job  Job
		desc string
	}{
		{ScheduleUploadCleanup, NewCleanupOrphanUploadsJob(b.cleanupSvc), "每天 3:30"},
		{ScheduleCacheWarmup, NewCacheWarmupJob(b.refresher, b.logger), "每 10 分钟"},
	}
	for _, item := range jobs {
		if _, err := b.cron.AddJob(item.spec, item.job); err != nil {
			return fmt.Errorf("注册任务 '%s' 失败: %w", item.job.Name(), err)
		}
		b.logger.Info("-> 已注册任务", "job_name", item.job.Name(), "schedule", item.desc)
	}
	return nil
}

// Dispatch 将任务放入队列，队列已满或已停止时丢弃并返回 false
func (b *Broker) Dispatch(job Job) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.stopped {
		return false
	}
	select {
	case b.jobQueue <- job:
		return true
	default:
		b.logger.Warn("任务队列已满，丢弃任务", "job_name", job.Name())
		return false
	}
}

// DispatchCacheWarmup 立即在后台刷新一次公开缓存
func (b *Broker) DispatchCacheWarmup() bool {
	return b.Dispatch(NewCacheWarmupJob(b.refresher, b.logger))
}

// DispatchUploadCleanup 立即在后台执行一次孤儿文件清理
func (b *Broker) DispatchUploadCleanup() bool {
	return b.Dispatch(NewCleanupOrphanUploadsJob(b.cleanupSvc))
}

// Start 启动 cron 调度器，并预热一次缓存
func (b *Broker) Start() {
	b.cron.Start()
	b.logger.Info("任务调度器已启动")
	b.DispatchCacheWarmup()
}

// Stop 等待正在运行的 cron 任务和队列中的任务结束
func (b *Broker) Stop() {
	b.logger.Info("正在停止任务调度器...")
	ctx := b.cron.Stop()
	<-ctx.Done()

	b.mu.Lock()
	if !b.stopped {
		b.stopped = true
		close(b.jobQueue)
	}
	b.mu.Unlock()
	b.wg.Wait()
	b.logger.Info("任务调度器已停止")
}
