/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-12 16:09:46
 * @LastEditTime: 2026-10-19 15:18:47
 * @LastEditors: 安知鱼
 */
// internal/app/task/jobs.go
package task

// Job 与 cron.Job 接口兼容，Name 用于日志
type Job interface {
	Run()
	Name() string
}

const (
	// ScheduleUploadCleanup 每天凌晨 3:30
	ScheduleUploadCleanup = "0 30 3 * * *"
	// ScheduleCacheWarmup 每 10 分钟
	ScheduleCacheWarmup = "0 */10 * * * *"
)
