package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "conf.ini")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
	assert.Equal(t, "sqlite", cfg.GetString(KeyDBType))
	assert.Equal(t, 8091, cfg.GetInt(KeyServerPort))
	assert.Equal(t, "local", cfg.GetString(KeyStorageType))
	assert.False(t, cfg.GetBool(KeyServerDebug))
	assert.Equal(t, 10*time.Minute, cfg.GetDuration(KeyCachePublicTTL, time.Second))
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.ini")
	require.NoError(t, os.WriteFile(path, []byte("[System]\nPort = 9000\n[Database]\nType = mysql\n"), 0644))
	t.Setenv("ANHEYU_DATABASE_TYPE", "postgres")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.GetInt(KeyServerPort))
	assert.Equal(t, "postgres", cfg.GetString(KeyDBType))
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.ini")
	require.NoError(t, os.WriteFile(path, []byte("[System\nPort"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{name: "未配置使用默认值", value: "", expected: time.Hour},
		{name: "Go时长写法", value: "90s", expected: 90 * time.Second},
		{name: "纯数字按秒", value: "30", expected: 30 * time.Second},
		{name: "非法值使用默认值", value: "abc", expected: time.Hour},
		{name: "零值使用默认值", value: "0", expected: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfigWithValues(map[string]string{KeyCachePublicTTL: tt.value})
			assert.Equal(t, tt.expected, cfg.GetDuration(KeyCachePublicTTL, time.Hour))
		})
	}
}

func TestGetList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.ini")
	require.NoError(t, os.WriteFile(path, []byte("[System]\nCorsOrigins =\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.GetList(KeyServerCorsOrigins), "留空时不允许任何来源")

	t.Setenv("ANHEYU_SYSTEM_CORSORIGINS", "https://a.example, ,https://b.example")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.GetList(KeyServerCorsOrigins))
}
