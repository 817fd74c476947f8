package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BaseURL           string        `envconfig:"API_BASE_URL" default:"https://hacktiv8-laravel-final-be-production.up.railway.app/api"`
	Timeout           time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
	MaxRetries        int           `envconfig:"API_MAX_RETRIES" default:"3"`
	RetryDelay        time.Duration `envconfig:"API_RETRY_DELAY" default:"1s"`
	RequestsPerSecond float64       `envconfig:"API_RPS" default:"10"`
	SessionPath       string        `envconfig:"SESSION_PATH"`
	Env               string        `envconfig:"APP_ENV" default:"development"`
}

// Load reads a .env file if present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("shopfront", &cfg); err != nil {
		return Config{}, err
	}

	if cfg.SessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.SessionPath = filepath.Join(home, ".shopfront", "session.db")
	}

	return cfg, nil
}
