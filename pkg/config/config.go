/*
 * @Description: 统一配置管理 (ini 文件 + 环境变量覆盖)
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-19 10:12:40
 * @LastEditors: 安知鱼
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

// DefaultFilePath 是默认的配置文件位置
const DefaultFilePath = "data/conf.ini"

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug, KeyServerCorsOrigins,
	KeyDBType, KeyDBHost, KeyDBPort, KeyDBUser, KeyDBPassword, KeyDBName, KeyDBDebug,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB,
	KeyStorageType, KeyStorageLocalDir, KeyStorageBaseURL, KeyStorageBucket, KeyStorageServer,
	KeyStorageAccessKey, KeyStorageSecretKey, KeyStoragePathPrefix, KeyStoragePrivate,
	KeyAdminUsername, KeyAdminPassword,
	KeyCachePublicTTL,
}

const (
	KeyServerPort    = "System.Port"
	KeyServerDebug   = "System.Debug"
	KeyDBType        = "Database.Type"
	KeyDBHost        = "Database.Host"
	KeyDBPort        = "Database.Port"
	KeyDBUser        = "Database.User"
	KeyDBPassword    = "Database.Password"
	KeyDBName        = "Database.Name"
	KeyDBDebug       = "Database.Debug"
	KeyRedisAddr     = "Redis.Addr"
	KeyRedisPassword = "Redis.Password"
	KeyRedisDB       = "Redis.DB"

	// 允许跨域携带凭证访问后台接口的来源，逗号分隔
	KeyServerCorsOrigins = "System.CorsOrigins"

	// --- 对象存储 ---
	KeyStorageType       = "Storage.Type"
	KeyStorageLocalDir   = "Storage.LocalDir"
	KeyStorageBaseURL    = "Storage.BaseURL"
	KeyStorageBucket     = "Storage.Bucket"
	KeyStorageServer     = "Storage.Server"
	KeyStorageAccessKey  = "Storage.AccessKey"
	KeyStorageSecretKey  = "Storage.SecretKey"
	KeyStoragePathPrefix = "Storage.PathPrefix"
	KeyStoragePrivate    = "Storage.Private"

	// --- 管理员账号 (仅首次启动时写入) ---
	KeyAdminUsername = "Admin.Username"
	KeyAdminPassword = "Admin.Password"

	// --- 缓存 ---
	KeyCachePublicTTL = "Cache.PublicTTL"
)

type Config struct {
	vp *viper.Viper
}

// LoadConfig 手动加载指定 ini 文件，再用 ANHEYU_ 前缀的环境变量覆盖
func LoadConfig(filePath string) (*Config, error) {
	vp := viper.New()

	// --- 步骤 1: 使用 go-ini 从文件加载配置 (作为默认值) ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Printf("从 %s 文件加载了默认配置。", filePath)
	}

	// --- 步骤 2: 手动检查并覆盖环境变量 ---
	envReplacer := strings.NewReplacer(".", "_")
	envPrefix := "ANHEYU"

	for _, key := range allKeys {
		// 例如 ANHEYU_DATABASE_HOST
		envVarName := fmt.Sprintf("%s_%s", envPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

// NewConfigWithValues 直接用给定的键值构造配置，不读取文件和环境变量
func NewConfigWithValues(values map[string]string) *Config {
	vp := viper.New()
	for k, v := range values {
		vp.Set(k, v)
	}
	return &Config{vp: vp}
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// GetList 读取逗号分隔的配置，忽略空项
func (c *Config) GetList(key string) []string {
	var list []string
	for _, item := range strings.Split(c.vp.GetString(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// GetDuration 读取时长配置，支持 "10m" 这类写法，纯数字按秒处理
func (c *Config) GetDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(c.vp.GetString(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs := c.vp.GetInt(key); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("⚠️ 配置项 %s 的值 '%s' 不是合法的时长，使用默认值 %s", key, raw, fallback)
	return fallback
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[System]
Port = 8091
Debug = false
# 允许跨域调用后台接口的前端地址，多个用逗号分隔，留空则不允许
CorsOrigins =

[Database]
Type = sqlite
Name = anheyu_cms.db
Debug = false

# Redis 配置（可选）
# 如果不配置或留空 Addr，系统将自动使用内存缓存
[Redis]
Addr =
Password =
DB = 0

# 对象存储配置
# Type 可选: local, aws_s3, aliyun_oss, tencent_cos, qiniu_kodo
[Storage]
Type = local
LocalDir = data/uploads
BaseURL =
Bucket =
Server =
AccessKey =
SecretKey =
PathPrefix =
Private = false

# 首次启动时创建的管理员账号，登录后请及时修改
[Admin]
Username = admin
Password = admin123

[Cache]
PublicTTL = 10m
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}
