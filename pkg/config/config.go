package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	HTTP   HTTPConfig
	Photos PhotosConfig
	Flags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SALON_APP_ENV" default:"dev"`
	Port         string `envconfig:"SALON_APP_PORT" default:"5001"`
	LogLevel     string `envconfig:"SALON_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"SALON_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"SALON_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Path is the sqlite database file. The parent directory is created on
	// boot when missing.
	Path string `envconfig:"SALON_DB_PATH" default:"data/salon_data.sqlite"`

	MaxOpenConns    int           `envconfig:"SALON_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"SALON_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"SALON_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SALON_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// BusyTimeout bounds how long sqlite waits on a locked database before
	// reporting SQLITE_BUSY. Zero leaves the driver default (no bound from
	// our side; pool acquisition blocks indefinitely).
	BusyTimeout time.Duration `envconfig:"SALON_DB_BUSY_TIMEOUT" default:"0"`
}

type HTTPConfig struct {
	CORSAllowedOrigins []string      `envconfig:"SALON_HTTP_CORS_ORIGINS" default:"*"`
	ShutdownTimeout    time.Duration `envconfig:"SALON_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type PhotosConfig struct {
	// Root is the content root all client photo files must resolve under.
	Root              string   `envconfig:"SALON_PHOTOS_ROOT" default:"data/client_images"`
	MaxUploadMB       int      `envconfig:"SALON_PHOTOS_MAX_UPLOAD_MB" default:"16"`
	AllowedExtensions []string `envconfig:"SALON_PHOTOS_ALLOWED_EXTENSIONS" default:"png,jpg,jpeg,gif"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SALON_AUTO_MIGRATE" default:"true"`
}
