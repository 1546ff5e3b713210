package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "KIOSK"

	EnvDBDSN        = "KIOSK_DB_DSN"
	EnvLogLevel     = "KIOSK_LOG_LEVEL"
	EnvLogFormat    = "KIOSK_LOG_FORMAT"
	EnvLogWarnStack = "KIOSK_LOG_WARN_STACK"
	EnvAutoMigrate  = "KIOSK_AUTO_MIGRATE"
	EnvImportFile   = "KIOSK_IMPORT_FILE"
	EnvImportStrict = "KIOSK_IMPORT_STRICT"
)

// Config holds application configuration values.
type Config struct {
	App    AppConfig
	DB     DBConfig
	Import ImportConfig
}

type AppConfig struct {
	LogLevel     string `envconfig:"KIOSK_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"KIOSK_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"KIOSK_LOG_WARN_STACK" default:"false"`
}

// DBConfig points at the SQLite database. There is deliberately no default
// DSN: the database location always comes from the environment.
type DBConfig struct {
	DSN         string `envconfig:"KIOSK_DB_DSN" required:"true"`
	AutoMigrate bool   `envconfig:"KIOSK_AUTO_MIGRATE" default:"true"`
}

type ImportConfig struct {
	File   string `envconfig:"KIOSK_IMPORT_FILE"`
	Strict bool   `envconfig:"KIOSK_IMPORT_STRICT" default:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("%s must not be empty", EnvDBDSN)
	}
	return &cfg, nil
}
