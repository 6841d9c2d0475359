/*
 * @Description: 监听内容变更事件，清除对应板块的公开缓存
 * @Author: 安知鱼
 * @Date: 2025-07-18 17:30:00
 * @LastEditTime: 2026-10-19 15:31:09
 * @LastEditors: 安知鱼
 */
package listener

import (
	"context"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/utility"
)

const invalidateTimeout = 5 * time.Second

// CacheInvalidationListener 订阅 ContentChanged 事件，让下一次公开读取重新查询数据库
type CacheInvalidationListener struct {
	cacheSvc utility.CacheService
}

// NewCacheInvalidationListener 创建监听器并完成订阅
func NewCacheInvalidationListener(eventBus *event.EventBus, cacheSvc utility.CacheService) *CacheInvalidationListener {
	l := &CacheInvalidationListener{cacheSvc: cacheSvc}
	eventBus.Subscribe(event.ContentChanged, l.handleContentChanged)
	eventBus.Subscribe(event.UploadCreated, l.handleUploadCreated)
	return l
}

func (l *CacheInvalidationListener) handleContentChanged(payload interface{}) {
	p, ok := payload.(event.ContentChangedPayload)
	if !ok {
		log.Printf("[CacheInvalidationListener] 错误：收到的 ContentChanged 事件负载类型不正确: %T", payload)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
	defer cancel()

	key := constant.PublicSectionCacheKey(constant.SectionKey(p.Section))
	if err := l.cacheSvc.Delete(ctx, key); err != nil {
		log.Printf("[CacheInvalidationListener] ⚠️ 清除缓存 %s 失败: %v", key, err)
		return
	}
	log.Printf("[CacheInvalidationListener] 板块 '%s' 的记录 #%d 已%s，已清除缓存 %s", p.Section, p.ID, actionLabel(p.Action), key)
}

func (l *CacheInvalidationListener) handleUploadCreated(payload interface{}) {
	if u, ok := payload.(*model.Upload); ok {
		log.Printf("[CacheInvalidationListener] 新上传: #%d %s (%s)", u.ID, u.URL, u.Dimension)
	}
}

func actionLabel(action string) string {
	switch action {
	case constant.ActionCreate:
		return "创建"
	case constant.ActionUpdate:
		return "更新"
	case constant.ActionDelete:
		return "删除"
	}
	return action
}
