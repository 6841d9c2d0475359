/*
 * @Description: 清理未被任何内容引用的上传文件
 * @Author: 安知鱼
 * @Date: 2025-08-02 16:13:20
 * @LastEditTime: 2026-10-19 15:12:40
 * @LastEditors: 安知鱼
 */
package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/upload"
)

const defaultOrphanKeepHours = 24

// URLSource 返回所有内容记录引用的资源地址，由 content.Registry 实现
type URLSource interface {
	ReferencedURLs(ctx context.Context) (map[string]struct{}, error)
}

// ICleanupService 定义了清理服务的接口。
type ICleanupService interface {
	CleanupOrphanedUploads(ctx context.Context) (int, error)
}

// CleanupService 封装了清理相关的业务逻辑。
type CleanupService struct {
	uploadSvc  upload.IUploadService
	urlSource  URLSource
	settingSvc setting.SettingService
	now        func() time.Time
}

// NewCleanupService 是 Service 的构造函数。
func NewCleanupService(uploadSvc upload.IUploadService, urlSource URLSource, settingSvc setting.SettingService) ICleanupService {
	return &CleanupService{
		uploadSvc:  uploadSvc,
		urlSource:  urlSource,
		settingSvc: settingSvc,
		now:        time.Now,
	}
}

// CleanupOrphanedUploads 删除超过保留时长且没有被引用的上传，返回删除数量
func (s *CleanupService) CleanupOrphanedUploads(ctx context.Context) (int, error) {
	referenced, err := s.urlSource.ReferencedURLs(ctx)
	if err != nil {
		return 0, fmt.Errorf("收集内容引用的资源失败: %w", err)
	}

	keepHours := s.settingSvc.GetInt(constant.KeyUploadOrphanKeepHours.String(), defaultOrphanKeepHours)
	if keepHours < 1 {
		keepHours = defaultOrphanKeepHours
	}
	before := s.now().Add(-time.Duration(keepHours) * time.Hour).UTC()

	cleaned, err := s.uploadSvc.CleanupOrphans(ctx, referenced, before)
	if err != nil {
		return 0, fmt.Errorf("服务执行清理失败: %w", err)
	}
	return cleaned, nil
}
