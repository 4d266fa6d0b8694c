// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the process needs to run. Required fields without
// a value make Load fail, which is fatal at startup.
type Config struct {
	MongoURL      string        `env:"MONGODB_URL,required,notEmpty"`
	MongoDB       string        `env:"MONGODB_DB" envDefault:"authtodo"`
	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	Port          string        `env:"PORT" envDefault:"8080"`
	TemplatesDir  string        `env:"TEMPLATES_DIR" envDefault:"web/templates"`
	StaticDir     string        `env:"STATIC_DIR" envDefault:"web/static"`
}

// Load reads a .env file when present, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if len(cfg.SessionSecret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 bytes")
	}
	return cfg, nil
}
