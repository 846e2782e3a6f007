package config

import (
	"errors"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds everything the server needs at startup. Defaults are applied
// first, then overridden by environment variables of the same name.
type Config struct {
	DatabaseURL string        `koanf:"DATABASE_URL"`
	JWTSecret   string        `koanf:"JWT_SECRET"`
	Port        string        `koanf:"PORT"`
	CORSOrigin  string        `koanf:"CORS_ORIGIN"`
	ExportDir   string        `koanf:"EXPORT_DIR"`
	TokenTTL    time.Duration `koanf:"TOKEN_TTL"`
	LogLevel    string        `koanf:"LOG_LEVEL"`
	Env         string        `koanf:"ENV"`
}

func defaults() Config {
	return Config{
		Port:       "8080",
		CORSOrigin: "*",
		ExportDir:  "exports",
		TokenTTL:   7 * 24 * time.Hour,
		LogLevel:   "info",
		Env:        "dev",
	}
}

// Load builds the config from defaults plus environment overrides.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, err
	}
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is not set")
	}
	return cfg, nil
}
