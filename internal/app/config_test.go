package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata"))
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.example.com", cfg.Database.Host)
	require.Equal(t, 5433, cfg.Database.Port)
	require.Equal(t, "clinic", cfg.Database.Name)
	require.Equal(t, "clinic_app", cfg.Database.User)
	require.Equal(t, "clinic-secret", cfg.Database.Password)

	require.Equal(t, "test-jwt-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, "clinic-test", cfg.Auth.JWT.Issuer)
	require.Equal(t, 12*time.Hour, cfg.Auth.JWT.TTL)

	require.Equal(t, 720*time.Hour, cfg.Maintenance.AuditRetention)
	require.Equal(t, "30 2 * * *", cfg.Maintenance.Schedule)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "./data/clinic.sqlite", cfg.Database.Path)
	require.Equal(t, "dnc-clinic-backend", cfg.Auth.JWT.Issuer)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWT.TTL)
	require.Equal(t, 90*24*time.Hour, cfg.Maintenance.AuditRetention)

	// No secret configured: the server must refuse to start.
	require.Error(t, cfg.Validate())
}

func TestConfigAdapters(t *testing.T) {
	cfg := Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = "/tmp/clinic.sqlite"
	cfg.Auth.JWT.Secret = "secret"
	cfg.Auth.JWT.Issuer = "issuer"
	cfg.Auth.JWT.TTL = time.Hour

	dbOpts := cfg.DatabaseOptions()
	require.Equal(t, "sqlite", dbOpts.Driver)
	require.Equal(t, "/tmp/clinic.sqlite", dbOpts.Path)

	tokOpts := cfg.TokenOptions()
	require.Equal(t, "secret", tokOpts.Secret)
	require.Equal(t, "issuer", tokOpts.Issuer)
	require.Equal(t, time.Hour, tokOpts.TTL)
}
