package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr       string `env:"ADDR" envDefault:":8080"`
	StagesFile string `env:"STAGES_FILE"` // optional override of the embedded stage list
	WebDir     string `env:"WEB_DIR" envDefault:"web"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
