package bootstrap

import (
	"context"
	stdsql "database/sql"
	"path/filepath"
	"testing"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/anzhiyu-c/anheyu-cms/internal/configdef"
	"github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/database"
	entrepo "github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/ent"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/security"
	"github.com/anzhiyu-c/anheyu-cms/pkg/config"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T) dialect.Driver {
	t.Helper()
	db, err := stdsql.Open("sqlite3", database.SQLiteDSN(filepath.Join(t.TempDir(), "bootstrap.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	drv := entsql.OpenDB(dialect.SQLite, db)
	require.NoError(t, database.Migrate(context.Background(), drv))
	return drv
}

func TestInitializeDatabase(t *testing.T) {
	t.Setenv("AN_SETTING_DEFAULT_APP_NAME", "环境变量站点")
	ctx := context.Background()
	drv := newTestDriver(t)

	settingRepo := entrepo.NewEntSettingRepository(drv)
	adminRepo := entrepo.NewAdminUserRepo(drv)
	countryRepo := entrepo.NewCountryRepo(drv)
	cfg := config.NewConfigWithValues(map[string]string{
		config.KeyAdminUsername: "root",
		config.KeyAdminPassword: "p@ss",
	})

	b := NewBootstrapper(cfg, settingRepo, adminRepo, countryRepo)
	require.NoError(t, b.InitializeDatabase(ctx))

	all, err := settingRepo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(configdef.AllSettings))

	appName, err := settingRepo.FindByKey(ctx, constant.KeyAppName.String())
	require.NoError(t, err)
	assert.Equal(t, "环境变量站点", appName.Value)

	secret, err := settingRepo.FindByKey(ctx, constant.KeyJWTSecret.String())
	require.NoError(t, err)
	assert.Len(t, secret.Value, 32, "JWT 密钥自动生成")

	admin, err := adminRepo.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.True(t, security.CheckPasswordHash("p@ss", admin.PasswordHash))

	countries, err := countryRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaultCountries)), countries)

	// 再次执行不会覆盖已有数据
	require.NoError(t, settingRepo.Update(ctx, map[string]string{constant.KeyJWTSecret.String(): "kept"}))
	require.NoError(t, NewBootstrapper(cfg, settingRepo, adminRepo, countryRepo).InitializeDatabase(ctx))

	secret, err = settingRepo.FindByKey(ctx, constant.KeyJWTSecret.String())
	require.NoError(t, err)
	assert.Equal(t, "kept", secret.Value)
	admins, err := adminRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)
	countries, err = countryRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaultCountries)), countries)
}

func TestInitAdminUserRequiresCredentials(t *testing.T) {
	drv := newTestDriver(t)
	b := NewBootstrapper(
		config.NewConfigWithValues(map[string]string{config.KeyAdminUsername: "root"}),
		entrepo.NewEntSettingRepository(drv),
		entrepo.NewAdminUserRepo(drv),
		entrepo.NewCountryRepo(drv),
	)
	assert.Error(t, b.initAdminUser(context.Background()))
}

func TestInitAdminUserSkipsWhenPresent(t *testing.T) {
	ctx := context.Background()
	drv := newTestDriver(t)
	adminRepo := entrepo.NewAdminUserRepo(drv)
	require.NoError(t, adminRepo.Create(ctx, &model.AdminUser{Username: "existing", PasswordHash: "x"}))

	b := NewBootstrapper(config.NewConfigWithValues(nil), entrepo.NewEntSettingRepository(drv), adminRepo, entrepo.NewCountryRepo(drv))
	require.NoError(t, b.initAdminUser(ctx))

	_, err := adminRepo.FindByUsername(ctx, "admin")
	assert.ErrorIs(t, err, constant.ErrNotFound)
}
