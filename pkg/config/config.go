package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	IsolationReadCommitted = "read_committed"
	IsolationSerializable  = "serializable"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Storage string `env:"STORAGE_DRIVER" env-default:"postgres"`
	HTTP    HTTPConfig
	DB      DBConfig
	Log     LogConfig
	Auth    AuthConfig
}

type HTTPConfig struct {
	Addr         string        `env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"9s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"12s"`
	TLSCertFile  string        `env:"HTTP_TLS_CERT_FILE"`
	TLSKeyFile   string        `env:"HTTP_TLS_KEY_FILE"`
}

type DBConfig struct {
	Host            string        `env:"DB_HOST" env-default:"localhost"`
	Port            int           `env:"DB_PORT" env-default:"5432"`
	User            string        `env:"DB_USER" env-default:"postgres"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME" env-default:"stakeledger"`
	SSLMode         string        `env:"DB_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"2h"`
	Isolation       string        `env:"DB_ISOLATION" env-default:"read_committed"`
}

type LogConfig struct {
	Level      string `env:"LOG_LEVEL" env-default:"info"`
	Dir        string `env:"LOG_DIR" env-default:"logs"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" env-default:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" env-default:"5"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" env-default:"30"`
	Stdout     bool   `env:"LOG_STDOUT" env-default:"true"`
}

type AuthConfig struct {
	AdminUserIDs []string `env:"ADMIN_USER_IDS" env-separator:","`
}

// AdminIDs parses ADMIN_USER_IDS. Blank entries are skipped.
func (c AuthConfig) AdminIDs() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(c.AdminUserIDs))
	for _, raw := range c.AdminUserIDs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			return nil, fmt.Errorf("%w: ADMIN_USER_IDS entry %q", ErrInvalidConfig, raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// LoadConfig preloads envFile (when it exists) into the process environment and
// binds the environment to Config. Variables already set win over the file.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("%w: STORAGE_DRIVER %q", ErrInvalidConfig, c.Storage)
	}

	switch c.DB.Isolation {
	case IsolationReadCommitted, IsolationSerializable:
	default:
		return fmt.Errorf("%w: DB_ISOLATION %q", ErrInvalidConfig, c.DB.Isolation)
	}

	if (c.HTTP.TLSCertFile == "") != (c.HTTP.TLSKeyFile == "") {
		return fmt.Errorf("%w: HTTP_TLS_CERT_FILE and HTTP_TLS_KEY_FILE must be set together", ErrInvalidConfig)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL %q", ErrInvalidConfig, c.Log.Level)
	}

	if _, err := c.Auth.AdminIDs(); err != nil {
		return err
	}

	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		return fmt.Errorf("%w: DB_PORT %d", ErrInvalidConfig, c.DB.Port)
	}
	if c.DB.MaxOpenConns < 0 || c.DB.MaxIdleConns < 0 {
		return fmt.Errorf("%w: connection pool sizes must not be negative", ErrInvalidConfig)
	}

	return nil
}
