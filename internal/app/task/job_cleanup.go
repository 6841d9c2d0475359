/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-10 15:23:10
 * @LastEditTime: 2026-10-19 15:16:02
 * @LastEditors: 安知鱼
 */
// internal/app/task/job_cleanup.go
package task

import (
	"context"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/pkg/service/cleanup"
)

const cleanupTimeout = 10 * time.Minute

// CleanupOrphanUploadsJob 负责清理没有被任何内容引用的上传文件
type CleanupOrphanUploadsJob struct {
	cleanupSvc cleanup.ICleanupService
}

// NewCleanupOrphanUploadsJob 是任务的构造函数
func NewCleanupOrphanUploadsJob(cleanupSvc cleanup.ICleanupService) *CleanupOrphanUploadsJob {
	return &CleanupOrphanUploadsJob{cleanupSvc: cleanupSvc}
}

// Run 是 Job 接口要求实现的方法
func (j *CleanupOrphanUploadsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	cleanedCount, err := j.cleanupSvc.CleanupOrphanedUploads(ctx)
	if err != nil {
		// 日志由 wrapper 统一处理，这里可以只处理错误本身
		log.Printf("任务 '%s' 在执行业务逻辑时捕获到错误: %v", j.Name(), err)
		return
	}
	log.Printf("任务 '%s' 业务逻辑执行完毕，共清理了 %d 个文件。", j.Name(), cleanedCount)
}

// Name 方法让日志包装器可以打印出更有意义的任务名
func (j *CleanupOrphanUploadsJob) Name() string {
	return "CleanupOrphanUploadsJob"
}
