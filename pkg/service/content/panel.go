package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
)

// Panel 是板块服务的非泛型视图，供后台页面、JSON 接口和定时任务按板块名统一调用。
// 写入类方法接收 JSON，读取类方法返回具体的模型指针。
type Panel interface {
	Section() Section
	List(ctx context.Context) ([]any, error)
	Page(ctx context.Context, query repository.PageQuery) ([]any, int64, error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id uint) (any, error)
	Create(ctx context.Context, data []byte) (any, error)
	Update(ctx context.Context, id uint, data []byte) (changed bool, record any, err error)
	Delete(ctx context.Context, id uint) error
	PublicList(ctx context.Context) (any, error)
	RefreshPublicCache(ctx context.Context) error
	ReferencedURLs(ctx context.Context) ([]string, error)
}

type panel[T any] struct {
	svc Service[T]
}

// NewPanel 把类型化的 Service 包装成 Panel
func NewPanel[T any](svc Service[T]) Panel {
	return &panel[T]{svc: svc}
}

func toAny[T any](items []*T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func decode[T any](data []byte) (*T, error) {
	rec := new(T)
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("%w: 请求体格式错误: %v", constant.ErrBadRequest, err)
	}
	return rec, nil
}

func (p *panel[T]) Section() Section { return p.svc.Section() }

func (p *panel[T]) List(ctx context.Context) ([]any, error) {
	items, err := p.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toAny(items), nil
}

func (p *panel[T]) Page(ctx context.Context, query repository.PageQuery) ([]any, int64, error) {
	result, err := p.svc.Page(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return toAny(result.Items), result.Total, nil
}

func (p *panel[T]) Count(ctx context.Context) (int64, error) { return p.svc.Count(ctx) }

func (p *panel[T]) Get(ctx context.Context, id uint) (any, error) {
	return p.svc.Get(ctx, id)
}

func (p *panel[T]) Create(ctx context.Context, data []byte) (any, error) {
	rec, err := decode[T](data)
	if err != nil {
		return nil, err
	}
	return p.svc.Create(ctx, rec)
}

func (p *panel[T]) Update(ctx context.Context, id uint, data []byte) (bool, any, error) {
	rec, err := decode[T](data)
	if err != nil {
		return false, nil, err
	}
	result, err := p.svc.Update(ctx, id, rec)
	if err != nil {
		return false, nil, err
	}
	return result.Changed, result.Record, nil
}

func (p *panel[T]) Delete(ctx context.Context, id uint) error { return p.svc.Delete(ctx, id) }

func (p *panel[T]) PublicList(ctx context.Context) (any, error) {
	return p.svc.PublicList(ctx)
}

func (p *panel[T]) RefreshPublicCache(ctx context.Context) error {
	return p.svc.RefreshPublicCache(ctx)
}

func (p *panel[T]) ReferencedURLs(ctx context.Context) ([]string, error) {
	return p.svc.ReferencedURLs(ctx)
}

// Registry 按固定顺序保存所有板块
type Registry struct {
	order  []constant.SectionKey
	panels map[constant.SectionKey]Panel
}

func NewRegistry(panels ...Panel) *Registry {
	r := &Registry{panels: make(map[constant.SectionKey]Panel, len(panels))}
	for _, p := range panels {
		r.Register(p)
	}
	return r
}

// Register 注册一个板块，重复注册时覆盖旧的实现
func (r *Registry) Register(p Panel) {
	key := p.Section().Key
	if _, exists := r.panels[key]; !exists {
		r.order = append(r.order, key)
	} else {
		log.Printf("[Content] ⚠️ 板块 '%s' 被重复注册，将覆盖之前的实现", key)
	}
	r.panels[key] = p
}

// Get 按名称查找板块，不存在时返回 constant.ErrUnknownSection
func (r *Registry) Get(key string) (Panel, error) {
	p, ok := r.panels[constant.SectionKey(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", constant.ErrUnknownSection, key)
	}
	return p, nil
}

// Panels 按注册顺序返回所有板块
func (r *Registry) Panels() []Panel {
	out := make([]Panel, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.panels[key])
	}
	return out
}

// Sections 返回所有板块的描述
func (r *Registry) Sections() []Section {
	out := make([]Section, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.panels[key].Section())
	}
	return out
}

// ReferencedURLs 汇总所有板块引用的链接
func (r *Registry) ReferencedURLs(ctx context.Context) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	for _, p := range r.Panels() {
		urls, err := p.ReferencedURLs(ctx)
		if err != nil {
			return nil, fmt.Errorf("读取板块 %s 的引用失败: %w", p.Section().Key, err)
		}
		for _, u := range urls {
			set[u] = struct{}{}
		}
	}
	return set, nil
}

// RefreshPublicCaches 刷新全部板块的公开缓存，返回成功的数量
func (r *Registry) RefreshPublicCaches(ctx context.Context) (int, error) {
	refreshed := 0
	var firstErr error
	for _, p := range r.Panels() {
		if err := p.RefreshPublicCache(ctx); err != nil {
			log.Printf("[Content] ⚠️ 刷新板块 %s 的缓存失败: %v", p.Section().Key, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		refreshed++
	}
	return refreshed, firstErr
}
