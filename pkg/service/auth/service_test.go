package auth

import (
	"context"
	stdsql "database/sql"
	"path/filepath"
	"strconv"
	"testing"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/database"
	entrepo "github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/ent"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/security"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-cms/pkg/idgen"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/imagecaptcha"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/utility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSettings 只实现测试用到的读取方法
type stubSettings struct {
	setting.SettingService
	values map[string]string
}

func (s *stubSettings) Get(key string) string { return s.values[key] }

func (s *stubSettings) GetBool(key string) bool {
	b, _ := strconv.ParseBool(s.values[key])
	return b
}

type testEnv struct {
	adminRepo repository.AdminUserRepository
	settings  *stubSettings
	captcha   imagecaptcha.ImageCaptchaService
	cache     utility.CacheService
	admin     *model.AdminUser
}

func newTestEnv(t *testing.T, captchaEnabled bool) *testEnv {
	t.Helper()
	require.NoError(t, idgen.InitSqidsEncoderWithSeed("auth-service-test"))

	db, err := stdsql.Open("sqlite3", database.SQLiteDSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	drv := entsql.OpenDB(dialect.SQLite, db)
	require.NoError(t, database.Migrate(context.Background(), drv))

	repo := entrepo.NewAdminUserRepo(drv)
	hash, err := security.HashPassword("s3cret!")
	require.NoError(t, err)
	admin := &model.AdminUser{Username: "admin", PasswordHash: hash, Nickname: "管理员"}
	require.NoError(t, repo.Create(context.Background(), admin))

	cache := utility.NewMemoryCacheService()
	t.Cleanup(func() { utility.StopCacheService(cache) })

	return &testEnv{
		adminRepo: repo,
		settings: &stubSettings{values: map[string]string{
			constant.KeyEnableLoginCaptcha.String(): strconv.FormatBool(captchaEnabled),
			constant.KeyJWTSecret.String():          "auth-service-secret",
		}},
		captcha: imagecaptcha.NewImageCaptchaService(cache),
		cache:   cache,
		admin:   admin,
	}
}

func TestLoginWithoutCaptcha(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	svc := NewAuthService(env.adminRepo, env.settings, env.captcha)
	assert.False(t, svc.CaptchaRequired())

	tests := []struct {
		name    string
		req     LoginRequest
		wantErr error
	}{
		{name: "缺少用户名", req: LoginRequest{Password: "s3cret!"}, wantErr: constant.ErrBadRequest},
		{name: "缺少密码", req: LoginRequest{Username: "admin"}, wantErr: constant.ErrBadRequest},
		{name: "用户不存在", req: LoginRequest{Username: "nobody", Password: "s3cret!"}, wantErr: constant.ErrUnauthorized},
		{name: "密码错误", req: LoginRequest{Username: "admin", Password: "wrong"}, wantErr: constant.ErrUnauthorized},
		{name: "登录成功", req: LoginRequest{Username: " admin ", Password: "s3cret!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin, err := svc.Login(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, admin)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, env.admin.ID, admin.ID)
		})
	}

	stored, err := env.adminRepo.FindByID(ctx, env.admin.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt, "登录成功后记录最后登录时间")
}

func TestLoginWithCaptcha(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	svc := NewAuthService(env.adminRepo, env.settings, env.captcha)
	require.True(t, svc.CaptchaRequired())

	_, err := svc.Login(ctx, LoginRequest{Username: "admin", Password: "s3cret!"})
	assert.ErrorIs(t, err, constant.ErrCaptchaInvalid, "缺少验证码")

	id, _, err := env.captcha.Generate(ctx)
	require.NoError(t, err)
	answer, err := env.cache.Get(ctx, "captcha:image:"+id)
	require.NoError(t, err)

	admin, err := svc.Login(ctx, LoginRequest{
		Username: "admin", Password: "s3cret!", CaptchaID: id, CaptchaAnswer: answer,
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)

	_, err = svc.Login(ctx, LoginRequest{
		Username: "admin", Password: "s3cret!", CaptchaID: id, CaptchaAnswer: answer,
	})
	assert.ErrorIs(t, err, constant.ErrCaptchaInvalid, "验证码不能重复使用")
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	svc := NewTokenService(env.adminRepo, env.settings)

	tokens, err := svc.GenerateSessionTokens(ctx, env.admin)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Positive(t, tokens.ExpiresAt)

	claims, err := svc.ParseAccessToken(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	_, err = svc.ParseAccessToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, constant.ErrInvalidToken, "刷新令牌不能当作访问令牌")

	access, expiresAt, err := svc.RefreshAccessToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.Positive(t, expiresAt)

	_, _, err = svc.RefreshAccessToken(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, constant.ErrInvalidToken, "访问令牌不能用于刷新")

	require.NoError(t, env.adminRepo.Delete(ctx, env.admin.ID))
	_, _, err = svc.RefreshAccessToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, constant.ErrInvalidToken, "管理员删除后刷新令牌失效")
}

func TestTokenServiceWithoutSecret(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	env.settings.values[constant.KeyJWTSecret.String()] = ""
	svc := NewTokenService(env.adminRepo, env.settings)

	_, err := svc.GenerateSessionTokens(ctx, env.admin)
	assert.Error(t, err)
	_, err = svc.ParseAccessToken(ctx, "anything")
	assert.Error(t, err)
}
