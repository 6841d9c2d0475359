/*
 * @Description: 各板块特有的业务规则
 * @Author: 安知鱼
 * @Date: 2026-10-19 13:05:47
 * @LastEditTime: 2026-10-19 13:41:02
 * @LastEditors: 安知鱼
 */
package content

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/strutil"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
)

const (
	// ExcerptLength 自动生成摘要的最大字符数
	ExcerptLength = 140
	// 生成的 slug 为空时使用
	fallbackSlug = "post"
	// 递增后缀的上限，防止异常情况下死循环
	maxSlugAttempts = 1000
)

// --- 博客 ---

func blogHooks(repo repository.BlogRepository) Hooks[model.Blog] {
	return Hooks[model.Blog]{
		Prepare: func(ctx context.Context, rec *model.Blog, stored *model.Blog) error {
			slug, err := uniqueSlug(ctx, repo, rec)
			if err != nil {
				return err
			}
			rec.Slug = slug

			contentHTML, err := parser.MarkdownToHTML(rec.Content)
			if err != nil {
				return fmt.Errorf("渲染博客正文失败: %w", err)
			}
			rec.ContentHTML = contentHTML
			if rec.Excerpt == "" {
				rec.Excerpt = parser.Excerpt(contentHTML, ExcerptLength)
			}

			switch {
			case !rec.IsPublished:
				rec.PublishedAt = nil
			case stored != nil && stored.PublishedAt != nil:
				rec.PublishedAt = stored.PublishedAt
			case rec.PublishedAt == nil:
				now := time.Now().UTC().Truncate(time.Microsecond)
				rec.PublishedAt = &now
			}
			return nil
		},
		Public: func(rec *model.Blog) bool {
			return rec.IsPublished
		},
	}
}

// uniqueSlug 优先使用提交的 slug，否则由标题生成；冲突时追加 -2、-3 ...
func uniqueSlug(ctx context.Context, repo repository.BlogRepository, rec *model.Blog) (string, error) {
	source := rec.Slug
	if source == "" {
		source = rec.Title
	}
	base := strutil.Slugify(source)
	if base == "" {
		base = fallbackSlug
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		exists, err := repo.SlugExists(ctx, candidate, rec.ID)
		if err != nil {
			return "", fmt.Errorf("检查 slug 是否重复失败: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
	return "", fmt.Errorf("%w: 无法为 '%s' 生成唯一的 slug", constant.ErrConflict, base)
}

// --- 国家 / 地址 ---

// ISO 3166-1 alpha-2，转大写后校验
var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

func countryHooks(countryRepo repository.CountryRepository, addressRepo repository.AddressRepository) Hooks[model.Country] {
	return Hooks[model.Country]{
		Prepare: func(ctx context.Context, rec *model.Country, _ *model.Country) error {
			rec.Code = strings.ToUpper(rec.Code)
			if rec.Code != "" && !countryCodePattern.MatchString(rec.Code) {
				return fmt.Errorf("%w: 国家代码必须是两位字母", constant.ErrBadRequest)
			}
			if rec.Name != "" {
				exists, err := countryRepo.NameExists(ctx, rec.Name, rec.ID)
				if err != nil {
					return err
				}
				if exists {
					return fmt.Errorf("%w: 国家名称 '%s' 已存在", constant.ErrConflict, rec.Name)
				}
			}
			if rec.Code != "" {
				exists, err := countryRepo.CodeExists(ctx, rec.Code, rec.ID)
				if err != nil {
					return err
				}
				if exists {
					return fmt.Errorf("%w: 国家代码 '%s' 已存在", constant.ErrConflict, rec.Code)
				}
			}
			return nil
		},
		BeforeDelete: func(ctx context.Context, stored *model.Country) error {
			count, err := addressRepo.CountByCountryID(ctx, stored.ID)
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: 国家 '%s' 下还有 %d 个地址，无法删除", constant.ErrConflict, stored.Name, count)
			}
			return nil
		},
	}
}

func addressHooks(countryRepo repository.CountryRepository) Hooks[model.Address] {
	return Hooks[model.Address]{
		Prepare: func(ctx context.Context, rec *model.Address, _ *model.Address) error {
			if rec.CountryID == 0 {
				return nil
			}
			if _, err := countryRepo.FindByID(ctx, rec.CountryID); err != nil {
				if errors.Is(err, constant.ErrNotFound) {
					return fmt.Errorf("%w: 国家 %d 不存在", constant.ErrBadRequest, rec.CountryID)
				}
				return err
			}
			return nil
		},
	}
}

// countryOptions 为地址表单提供国家下拉框
func countryOptions(countryRepo repository.CountryRepository) OptionsFunc {
	return func(ctx context.Context) ([]Option, error) {
		countries, err := countryRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		options := make([]Option, 0, len(countries))
		for _, c := range countries {
			options = append(options, Option{
				Value: strconv.FormatUint(uint64(c.ID), 10),
				Label: fmt.Sprintf("%s (%s)", c.Name, c.Code),
			})
		}
		return options, nil
	}
}

// --- 评价 ---

// ClampRating 把评分限制在 1..5，0 视为未填写，按满分处理
func ClampRating(rating int) int {
	switch {
	case rating == 0:
		return model.MaxReviewRating
	case rating < model.MinReviewRating:
		return model.MinReviewRating
	case rating > model.MaxReviewRating:
		return model.MaxReviewRating
	}
	return rating
}

func reviewHooks() Hooks[model.Review] {
	return Hooks[model.Review]{
		Prepare: func(_ context.Context, rec *model.Review, _ *model.Review) error {
			rec.Rating = ClampRating(rec.Rating)
			return nil
		},
	}
}

// --- 富文本 ---

func aboutHooks() Hooks[model.About] {
	return Hooks[model.About]{
		Prepare: func(_ context.Context, rec *model.About, _ *model.About) error {
			rec.Description = parser.SanitizeHTML(rec.Description)
			return nil
		},
	}
}

func separateServiceHooks() Hooks[model.SeparateService] {
	return Hooks[model.SeparateService]{
		Prepare: func(_ context.Context, rec *model.SeparateService, _ *model.SeparateService) error {
			rec.Content = parser.SanitizeHTML(rec.Content)
			if rec.Price < 0 {
				return fmt.Errorf("%w: 价格不能为负数", constant.ErrBadRequest)
			}
			return nil
		},
	}
}
