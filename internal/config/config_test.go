package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	// 指定了不存在的文件：viper 报错
	require.Error(t, err)
	require.Nil(t, cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Server.Mode)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "nearulives_token", cfg.Auth.CookieName)
	require.NotZero(t, cfg.Chat.NotifyQueueSize)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  mode: release
  addr: ":9090"
database:
  driver: postgres
  dsn: "host=localhost user=postgres dbname=nearulives"
auth:
  jwt_secret: "a-much-longer-production-secret"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "release", cfg.Server.Mode)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "a-much-longer-production-secret", cfg.Auth.JWTSecret)
	// 未覆盖的仍是默认值
	require.Equal(t, "nearulives_token", cfg.Auth.CookieName)
}

func TestLoad_RejectsInvalidMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  mode: bogus
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
