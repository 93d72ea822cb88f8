package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	// 16 MiB, igual que el límite histórico del formulario de adopción.
	DefaultMaxBodyBytes int64 = 16 << 20
)

var ErrInvalidConfig = errors.New("invalid config")

// Config agrupa todo lo que el proceso lee del entorno.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"pet_adoption.db"`
	DatabaseDSN   string `env:"DB_DSN"`

	UploadDir    string `env:"UPLOAD_DIR" envDefault:"static/uploads"`
	IDProofDir   string `env:"ID_PROOF_DIR" envDefault:"private/id_proofs"`
	MaxBodyBytes int64  `env:"MAX_BODY_BYTES" envDefault:"16777216"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SessionStore  string        `env:"SESSION_STORE" envDefault:"memory"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"pet-adoption"`
}

// Load lee el entorno, aplica defaults y valida.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.StorageDriver)) {
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%w: SQLITE_PATH required for sqlite driver", ErrInvalidConfig)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseDSN) == "" {
			return fmt.Errorf("%w: DB_DSN required for postgres driver", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrInvalidConfig, c.StorageDriver)
	}

	switch strings.ToLower(strings.TrimSpace(c.SessionStore)) {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("%w: unknown SESSION_STORE %q", ErrInvalidConfig, c.SessionStore)
	}

	// Sin credenciales ni secreto explícitos no arrancamos: nada de literales hardcodeados.
	if strings.TrimSpace(c.AdminUsername) == "" || c.AdminPassword == "" {
		return fmt.Errorf("%w: ADMIN_USERNAME and ADMIN_PASSWORD required", ErrInvalidConfig)
	}
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("%w: SESSION_SECRET must be at least 16 bytes", ErrInvalidConfig)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: SESSION_TTL must be positive", ErrInvalidConfig)
	}
	// /uploads se sirve sin login; los documentos de identidad no pueden quedar debajo
	if c.IDProofDir != "" && isWithin(c.IDProofDir, c.UploadDir) {
		return fmt.Errorf("%w: ID_PROOF_DIR must not be inside UPLOAD_DIR", ErrInvalidConfig)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: MAX_BODY_BYTES must be positive", ErrInvalidConfig)
	}
	return nil
}

func isWithin(dir, parent string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(dir))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
