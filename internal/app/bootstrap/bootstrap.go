// internal/app/bootstrap/bootstrap.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/internal/configdef"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/security"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/utils"
	"github.com/anzhiyu-c/anheyu-cms/pkg/config"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
)

// 首次启动时写入的国家列表，地址板块依赖它
var defaultCountries = []model.Country{
	{Name: "中国", Code: "CN"},
	{Name: "United States", Code: "US"},
	{Name: "United Kingdom", Code: "GB"},
	{Name: "Türkiye", Code: "TR"},
	{Name: "Deutschland", Code: "DE"},
	{Name: "日本", Code: "JP"},
}

type Bootstrapper struct {
	cfg         *config.Config
	settingRepo repository.SettingRepository
	adminRepo   repository.AdminUserRepository
	countryRepo repository.CountryRepository
}

func NewBootstrapper(
	cfg *config.Config,
	settingRepo repository.SettingRepository,
	adminRepo repository.AdminUserRepository,
	countryRepo repository.CountryRepository,
) *Bootstrapper {
	return &Bootstrapper{
		cfg:         cfg,
		settingRepo: settingRepo,
		adminRepo:   adminRepo,
		countryRepo: countryRepo,
	}
}

// InitializeDatabase 写入默认配置、管理员账号和国家列表，已存在的数据不会被覆盖
func (b *Bootstrapper) InitializeDatabase(ctx context.Context) error {
	log.Println("--- 开始执行数据库初始化引导程序 ---")

	if err := b.syncSettings(ctx); err != nil {
		return err
	}
	if err := b.initAdminUser(ctx); err != nil {
		return err
	}
	b.initCountries(ctx)

	log.Println("--- 数据库初始化引导程序执行完成 ---")
	return nil
}

// syncSettings 确保所有在代码中定义的配置项都存在于数据库中。
func (b *Bootstrapper) syncSettings(ctx context.Context) error {
	log.Println("--- 开始同步站点配置 (settings 表)... ---")
	newlyAdded := 0

	for _, def := range configdef.AllSettings {
		existing, err := b.settingRepo.FindByKey(ctx, def.Key.String())
		if err != nil {
			return fmt.Errorf("查询配置项 '%s' 失败: %w", def.Key, err)
		}
		if existing != nil {
			continue
		}

		value := def.Value
		// 需要动态生成的密钥
		if def.Key == constant.KeyJWTSecret || def.Key == constant.KeyIDSeed {
			value, err = utils.GenerateRandomString(32)
			if err != nil {
				return fmt.Errorf("生成 %s 失败: %w", def.Key, err)
			}
		}

		envKey := "AN_SETTING_DEFAULT_" + strings.ToUpper(string(def.Key))
		if envValue, ok := os.LookupEnv(envKey); ok {
			value = envValue
			log.Printf("    - 配置项 '%s' 由环境变量覆盖。", def.Key)
		}

		if err := b.settingRepo.Save(ctx, &model.Setting{
			ConfigKey: def.Key.String(),
			Value:     value,
			Comment:   def.Comment,
		}); err != nil {
			log.Printf("⚠️ 失败: 新增默认配置项 '%s' 失败: %v", def.Key, err)
			continue
		}
		log.Printf("    - 新增配置项: '%s' 已写入数据库。", def.Key)
		newlyAdded++
	}

	if newlyAdded > 0 {
		log.Printf("--- 站点配置同步完成，共新增 %d 个配置项。---", newlyAdded)
	} else {
		log.Println("--- 站点配置同步完成，无需新增配置项。---")
	}
	return nil
}

// initAdminUser 表中没有任何管理员时，用配置文件中的账号创建一个
func (b *Bootstrapper) initAdminUser(ctx context.Context) error {
	count, err := b.adminRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("查询管理员数量失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	username := strings.TrimSpace(b.cfg.GetString(config.KeyAdminUsername))
	password := b.cfg.GetString(config.KeyAdminPassword)
	if username == "" || password == "" {
		return errors.New("管理员表为空，且配置文件中未设置 Admin.Username / Admin.Password")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("生成管理员密码哈希失败: %w", err)
	}
	if err := b.adminRepo.Create(ctx, &model.AdminUser{
		Username:     username,
		PasswordHash: hash,
		Nickname:     username,
	}); err != nil {
		return fmt.Errorf("创建默认管理员失败: %w", err)
	}
	log.Printf("✅ 已创建默认管理员账号 '%s'，请登录后尽快修改密码。", username)
	return nil
}

// initCountries 国家表为空时写入默认列表，失败只记录日志
func (b *Bootstrapper) initCountries(ctx context.Context) {
	count, err := b.countryRepo.Count(ctx)
	if err != nil {
		log.Printf("⚠️ 失败: 查询国家数量失败: %v", err)
		return
	}
	if count > 0 {
		return
	}
	for i := range defaultCountries {
		country := defaultCountries[i]
		if err := b.countryRepo.Create(ctx, &country); err != nil {
			log.Printf("⚠️ 失败: 写入默认国家 '%s' 失败: %v", country.Name, err)
		}
	}
	log.Printf("--- 默认国家列表初始化完成，共 %d 项。---", len(defaultCountries))
}
