package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
)

// entSettingRepository 是 SettingRepository 接口的 Ent 实现
type entSettingRepository struct {
	*crudRepo[model.Setting, *model.Setting]
}

// NewEntSettingRepository 是 entSettingRepository 的构造函数
func NewEntSettingRepository(drv dialect.Driver) repository.SettingRepository {
	return &entSettingRepository{crudRepo: newCrudRepo[model.Setting](drv, "settings")}
}

// Update 实现了批量更新配置项的接口，整个更新过程在一个事务中执行。
func (r *entSettingRepository) Update(ctx context.Context, settingsToUpdate map[string]string) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}

	// 发生 panic 时也要回滚
	defer func() {
		if v := recover(); v != nil {
			tx.Rollback()
			panic(v)
		}
	}()

	ts := now()
	for key, value := range settingsToUpdate {
		query, args := r.builder().Update(r.table).
			Set("value", value).
			Set("updated_at", ts).
			Where(sql.EQ("config_key", key)).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("更新配置失败: %v, 回滚事务也失败: %v", err, rbErr)
			}
			return fmt.Errorf("更新配置 %s 失败: %w", key, err)
		}
	}

	return tx.Commit()
}

// FindByKey 实现按键查找配置的接口，未找到时不返回错误
func (r *entSettingRepository) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	s, err := r.findOne(ctx, sql.EQ("config_key", key))
	if errors.Is(err, constant.ErrNotFound) {
		return nil, nil
	}
	return s, err
}

// Save 实现保存（创建或更新）配置的接口，ID 为 0 时认为是新记录
func (r *entSettingRepository) Save(ctx context.Context, s *model.Setting) error {
	if s.ID == 0 {
		return r.Create(ctx, s)
	}
	return r.crudRepo.Update(ctx, s)
}
