/*
 * @Description: 内容板块通用的增删改查服务
 * @Author: 安知鱼
 * @Date: 2026-10-19 12:52:18
 * @LastEditTime: 2026-10-19 13:20:45
 * @LastEditors: 安知鱼
 */
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/metrics"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/utility"
)

// DefaultPublicTTL 公开列表缓存的默认有效期
const DefaultPublicTTL = 10 * time.Minute

// UpdateResult 是一次更新的结果，Changed 为 false 表示提交的内容与数据库一致，未执行写入
type UpdateResult[T any] struct {
	Changed bool `json:"changed"`
	Record  *T   `json:"record"`
}

// Hooks 是板块特有的业务规则，所有字段都可以为空
type Hooks[T any] struct {
	// Prepare 在必填校验之前规范化记录。stored 为更新前的记录，创建时为 nil。
	Prepare func(ctx context.Context, rec *T, stored *T) error
	// BeforeDelete 返回错误时取消删除
	BeforeDelete func(ctx context.Context, stored *T) error
	// Public 决定记录是否出现在公开列表中
	Public func(rec *T) bool
}

// Service 是单个内容板块的业务接口
type Service[T any] interface {
	Section() Section
	List(ctx context.Context) ([]*T, error)
	Page(ctx context.Context, query repository.PageQuery) (*repository.PageResult[T], error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id uint, rec *T) (*UpdateResult[T], error)
	Delete(ctx context.Context, id uint) error
	PublicList(ctx context.Context) ([]*T, error)
	RefreshPublicCache(ctx context.Context) error
	ReferencedURLs(ctx context.Context) ([]string, error)
}

// Deps 是所有板块服务共享的依赖，Cache/Bus/Metrics 都可以为 nil
type Deps struct {
	Cache     utility.CacheService
	Bus       *event.EventBus
	Metrics   *metrics.Collector
	PublicTTL time.Duration
}

type service[T any, PT model.Entity[T]] struct {
	section Section
	repo    repository.ContentRepository[T]
	hooks   Hooks[T]
	deps    Deps
}

// NewService 创建一个板块服务
func NewService[T any, PT model.Entity[T]](
	section Section,
	repo repository.ContentRepository[T],
	hooks Hooks[T],
	deps Deps,
) Service[T] {
	if deps.PublicTTL <= 0 {
		deps.PublicTTL = DefaultPublicTTL
	}
	return &service[T, PT]{
		section: section,
		repo:    repo,
		hooks:   hooks,
		deps:    deps,
	}
}

func (s *service[T, PT]) Section() Section {
	return s.section
}

func (s *service[T, PT]) List(ctx context.Context) ([]*T, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取 %s 列表失败: %w", s.section.Key, err)
	}
	return items, nil
}

func (s *service[T, PT]) Page(ctx context.Context, query repository.PageQuery) (*repository.PageResult[T], error) {
	return s.repo.FindListByPage(ctx, query.Normalize())
}

func (s *service[T, PT]) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, constant.ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// prepare 去空白、执行板块规则并校验必填字段
func (s *service[T, PT]) prepare(ctx context.Context, rec *T, stored *T) error {
	trimStrings(rec)
	if s.hooks.Prepare != nil {
		if err := s.hooks.Prepare(ctx, rec, stored); err != nil {
			return err
		}
	}
	return validateFields(s.section, rec)
}

func (s *service[T, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: 记录不能为空", constant.ErrBadRequest)
	}
	*PT(rec).GetBase() = model.Base{}
	if err := s.prepare(ctx, rec, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("创建 %s 记录失败: %w", s.section.Key, err)
	}
	s.afterWrite(ctx, constant.ActionCreate, PT(rec).GetBase().ID)
	return rec, nil
}

// Update 只有在提交的内容与数据库中的记录不同时才写入
func (s *service[T, PT]) Update(ctx context.Context, id uint, rec *T) (*UpdateResult[T], error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: 记录不能为空", constant.ErrBadRequest)
	}
	stored, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	*PT(rec).GetBase() = *PT(stored).GetBase()
	if err := s.prepare(ctx, rec, stored); err != nil {
		return nil, err
	}

	dirty, err := isDirty(rec, stored)
	if err != nil {
		return nil, err
	}
	if !dirty {
		return &UpdateResult[T]{Changed: false, Record: stored}, nil
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("更新 %s 记录 %d 失败: %w", s.section.Key, id, err)
	}
	s.afterWrite(ctx, constant.ActionUpdate, id)
	return &UpdateResult[T]{Changed: true, Record: rec}, nil
}

func (s *service[T, PT]) Delete(ctx context.Context, id uint) error {
	stored, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.hooks.BeforeDelete != nil {
		if err := s.hooks.BeforeDelete(ctx, stored); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除 %s 记录 %d 失败: %w", s.section.Key, id, err)
	}
	s.afterWrite(ctx, constant.ActionDelete, id)
	return nil
}

// afterWrite 同步删除公开缓存，再发布事件通知其它订阅者
func (s *service[T, PT]) afterWrite(ctx context.Context, action string, id uint) {
	s.deps.Metrics.RecordContentWrite(string(s.section.Key), action)
	if s.deps.Cache != nil {
		key := constant.PublicSectionCacheKey(s.section.Key)
		if err := s.deps.Cache.Delete(ctx, key); err != nil {
			log.Printf("[Content] ⚠️ 删除缓存 %s 失败: %v", key, err)
		}
	}
	if s.deps.Bus != nil {
		s.deps.Bus.Publish(event.ContentChanged, event.ContentChangedPayload{
			Section: string(s.section.Key),
			Action:  action,
			ID:      id,
		})
	}
}

func (s *service[T, PT]) publicItems(ctx context.Context) ([]*T, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.hooks.Public == nil {
		return items, nil
	}
	filtered := make([]*T, 0, len(items))
	for _, item := range items {
		if s.hooks.Public(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// PublicList 优先读缓存，缓存读写失败只记录日志
func (s *service[T, PT]) PublicList(ctx context.Context) ([]*T, error) {
	key := constant.PublicSectionCacheKey(s.section.Key)
	if s.deps.Cache != nil {
		var cached []*T
		hit, err := utility.GetJSON(ctx, s.deps.Cache, key, &cached)
		if err != nil {
			log.Printf("[Content] ⚠️ 读取缓存 %s 失败: %v", key, err)
		}
		if hit {
			return cached, nil
		}
	}

	items, err := s.publicItems(ctx)
	if err != nil {
		return nil, err
	}
	if s.deps.Cache != nil {
		if err := utility.SetJSON(ctx, s.deps.Cache, key, items, s.deps.PublicTTL); err != nil {
			log.Printf("[Content] ⚠️ 写入缓存 %s 失败: %v", key, err)
		}
	}
	return items, nil
}

// RefreshPublicCache 重新计算并写入公开列表缓存
func (s *service[T, PT]) RefreshPublicCache(ctx context.Context) error {
	if s.deps.Cache == nil {
		return nil
	}
	items, err := s.publicItems(ctx)
	if err != nil {
		return err
	}
	return utility.SetJSON(ctx, s.deps.Cache, constant.PublicSectionCacheKey(s.section.Key), items, s.deps.PublicTTL)
}

// embeddedURLPattern 匹配富文本和 Markdown 中引用的链接
var embeddedURLPattern = regexp.MustCompile(`(?:https?://|/static/uploads/)[^\s"'<>()]+`)

// embeddedURLs 提取正文中的链接：标签属性里的地址按 HTML 解码，裸露的地址用正则兜底
func embeddedURLs(kind FieldKind, value string) []string {
	if value == "" {
		return nil
	}
	markup := value
	if kind == KindMarkdown {
		if rendered, err := parser.MarkdownToHTML(value); err == nil {
			markup = rendered
		}
	}
	urls := parser.LinkedURLs(markup)
	return append(urls, embeddedURLPattern.FindAllString(value, -1)...)
}

// ReferencedURLs 返回所有记录中图片字段的值以及正文里出现的链接
func (s *service[T, PT]) ReferencedURLs(ctx context.Context) ([]string, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	imageFields := s.section.FieldsOfKind(KindImage)
	textFields := s.section.FieldsOfKind(KindRichText, KindMarkdown)

	var urls []string
	for _, item := range items {
		for _, f := range imageFields {
			if v := fieldString(item, f.Name); v != "" {
				urls = append(urls, v)
			}
		}
		for _, f := range textFields {
			urls = append(urls, embeddedURLs(f.Kind, fieldString(item, f.Name))...)
		}
	}
	return urls, nil
}

// isDirty 比较两条记录序列化后的结果
func isDirty(a, b any) (bool, error) {
	left, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(left, right), nil
}
