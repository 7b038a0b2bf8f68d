package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string, keys ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv writes straight into the process environment.
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})
	return path
}

func TestLoadConfig_FromDotenv(t *testing.T) {
	path := writeEnvFile(t,
		"STORAGE_DRIVER=memory\nDB_PORT=6543\nHTTP_ADDR=:9090\nHTTP_READ_TIMEOUT=3s\n",
		"STORAGE_DRIVER", "DB_PORT", "HTTP_ADDR", "HTTP_READ_TIMEOUT")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, IsolationReadCommitted, cfg.DB.Isolation)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvironmentWins(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":7070")
	path := writeEnvFile(t, "HTTP_ADDR=:9090\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("DB_ISOLATION", "repeatable_read")

	_, err := LoadConfig("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := LoadConfig("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig_AdminUserIDs(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	t.Setenv("ADMIN_USER_IDS", first.String()+", "+second.String())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	ids, err := cfg.Auth.AdminIDs()
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Storage: StoragePostgres,
			DB:      DBConfig{Port: 5432, Isolation: IsolationSerializable},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage = "sqlite" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.DB.Port = 70000 }, wantErr: true},
		{name: "negative pool", mutate: func(c *Config) { c.DB.MaxOpenConns = -1 }, wantErr: true},
		{name: "cert without key", mutate: func(c *Config) { c.HTTP.TLSCertFile = "cert.pem" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "debug log level", mutate: func(c *Config) { c.Log.Level = "debug" }},
		{name: "bad admin id", mutate: func(c *Config) { c.Auth.AdminUserIDs = []string{"root"} }, wantErr: true},
		{name: "nil admin id", mutate: func(c *Config) { c.Auth.AdminUserIDs = []string{uuid.Nil.String()} }, wantErr: true},
		{name: "cert and key", mutate: func(c *Config) {
			c.HTTP.TLSCertFile = "cert.pem"
			c.HTTP.TLSKeyFile = "key.pem"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
