package setting

import (
	"context"
	stdsql "database/sql"
	"path/filepath"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/database"
	entrepo "github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/ent"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) repository.SettingRepository {
	t.Helper()
	db, err := stdsql.Open("sqlite3", database.SQLiteDSN(filepath.Join(t.TempDir(), "setting.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	drv := entsql.OpenDB(dialect.SQLite, db)
	require.NoError(t, database.Migrate(context.Background(), drv))
	return entrepo.NewEntSettingRepository(drv)
}

func TestLoadAllSettings(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, repo.Save(ctx, &model.Setting{ConfigKey: constant.KeyAppName.String(), Value: "我的站点"}))

	svc := NewSettingService(repo, nil)
	require.NoError(t, svc.LoadAllSettings(ctx))

	assert.Equal(t, "我的站点", svc.Get(constant.KeyAppName.String()), "数据库中的值优先")
	assert.Equal(t, "内容管理后台", svc.Get(constant.KeySubTitle.String()), "未写入数据库的使用默认值")
	assert.True(t, svc.GetBool(constant.KeyEnableLoginCaptcha.String()))
	assert.Equal(t, 10, svc.GetInt(constant.KeyUploadMaxSizeMB.String(), 1))
	assert.Equal(t, 7, svc.GetInt("NOT_A_KEY", 7))
	assert.Contains(t, svc.GetList(constant.KeyUploadAllowedExtensions.String()), "webp")
}

func TestGetSiteConfigOnlyPublic(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingService(newTestRepo(t), nil)
	require.NoError(t, svc.LoadAllSettings(ctx))

	site := svc.GetSiteConfig()
	assert.Contains(t, site, constant.KeyAppName.String())
	assert.NotContains(t, site, constant.KeyJWTSecret.String())
	assert.NotContains(t, site, constant.KeyIDSeed.String())
	assert.NotContains(t, site, constant.KeyAdminPageTitle.String())
}

func TestUpdateSettingsPublishesEvents(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, repo.Save(ctx, &model.Setting{ConfigKey: constant.KeySubTitle.String(), Value: "旧"}))

	bus := event.NewEventBusWithSize(1, 8)
	received := make(chan SettingUpdatedEvent, 1)
	bus.Subscribe(TopicSettingUpdated, func(payload interface{}) {
		received <- payload.(SettingUpdatedEvent)
	})
	defer bus.Shutdown()

	svc := NewSettingService(repo, bus)
	require.NoError(t, svc.LoadAllSettings(ctx))
	require.NoError(t, svc.UpdateSettings(ctx, map[string]string{constant.KeySubTitle.String(): "新"}))
	assert.Equal(t, "新", svc.Get(constant.KeySubTitle.String()))

	select {
	case ev := <-received:
		assert.Equal(t, SettingUpdatedEvent{Key: constant.KeySubTitle.String(), Value: "新"}, ev)
	case <-time.After(2 * time.Second):
		t.Fatal("没有收到配置更新事件")
	}

	stored, err := repo.FindByKey(ctx, constant.KeySubTitle.String())
	require.NoError(t, err)
	assert.Equal(t, "新", stored.Value)
}

func TestGetListSplitsAndLowercases(t *testing.T) {
	svc := &settingService{cache: map[string]string{"EXT": " JPG, png ,, .Webp "}}
	assert.Equal(t, []string{"jpg", "png", ".webp"}, svc.GetList("EXT"))
	assert.Nil(t, svc.GetList("MISSING"))
	assert.False(t, svc.GetBool("MISSING"))
}
