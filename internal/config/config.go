package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Probe    Probe
	Metrics  Metrics
	Scraper  Scraper
	Postgres Postgres
	Redis    Redis
	Bot      Bot
}

type App struct {
	Name           string `env:"APP_NAME" envDefault:"gold-tracker"`
	Version        string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogNoColor     bool   `env:"LOG_NO_COLOR" envDefault:"false"`
	LogFieldMaxLen int    `env:"LOG_FIELD_MAX_LEN" envDefault:"4096"`
}

type HTTP struct {
	ListenAddress   string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

// Load читает .env, если он есть, и затем окружение процесса.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Scraper.validate(); err != nil {
		return Config{}, fmt.Errorf("scraper: %w", err)
	}

	return config, nil
}
