package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "TIENDITA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TIENDITA_APP_ENV" default:"dev"`
	Port         string `envconfig:"TIENDITA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TIENDITA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TIENDITA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"TIENDITA_DB_DSN"`

	LegacyHost     string `envconfig:"TIENDITA_DB_HOST"`
	LegacyPort     int    `envconfig:"TIENDITA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TIENDITA_DB_USER"`
	LegacyPassword string `envconfig:"TIENDITA_DB_PASSWORD"`
	LegacyName     string `envconfig:"TIENDITA_DB_NAME"`
	LegacySSLMode  string `envconfig:"TIENDITA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TIENDITA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TIENDITA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TIENDITA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TIENDITA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TIENDITA_REDIS_URL"`
	Address      string        `envconfig:"TIENDITA_REDIS_ADDR"`
	Password     string        `envconfig:"TIENDITA_REDIS_PASSWORD"`
	DB           int           `envconfig:"TIENDITA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TIENDITA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TIENDITA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TIENDITA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TIENDITA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TIENDITA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. Rate
// limiting is skipped when it is not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// SessionConfig controls opaque session token behavior. A zero TTL keeps
// sessions valid until explicitly revoked, matching the original system.
type SessionConfig struct {
	TTL time.Duration `envconfig:"TIENDITA_SESSION_TTL" default:"0"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TIENDITA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TIENDITA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TIENDITA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TIENDITA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TIENDITA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow       time.Duration `envconfig:"TIENDITA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUserLimit    int           `envconfig:"TIENDITA_AUTH_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
	LoginIPLimit      int           `envconfig:"TIENDITA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow    time.Duration `envconfig:"TIENDITA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUserLimit int           `envconfig:"TIENDITA_AUTH_RATE_LIMIT_REGISTER_USER_LIMIT" default:"3"`
	RegisterIPLimit   int           `envconfig:"TIENDITA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TIENDITA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		"TIENDITA_DB_HOST": db.LegacyHost,
		"TIENDITA_DB_USER": db.LegacyUser,
		"TIENDITA_DB_NAME": db.LegacyName,
	}
	for _, key := range []string{"TIENDITA_DB_HOST", "TIENDITA_DB_USER", "TIENDITA_DB_NAME"} {
		if legacyValues[key] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either TIENDITA_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
