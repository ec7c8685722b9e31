// Package config собирает настройки сервиса из значений по умолчанию,
// флагов командной строки и переменных окружения (в порядке возрастания приоритета).
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// ErrNonPositiveDBTimeout возвращается, если таймаут обращения к базе не больше нуля
var ErrNonPositiveDBTimeout = errors.New("DB timeout must be positive")

// Config содержит настройки приложения
type Config struct {
	RunAddr         string        `env:"SERVER_ADDRESS"`
	BaseURL         string        `env:"BASE_URL"`
	DatabaseDSN     string        `env:"DATABASE_DSN"`
	GRPCAddr        string        `env:"GRPC_ADDRESS"`
	DBTimeout       time.Duration `env:"DB_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	LogLevel        string        `env:"LOG_LEVEL"`
	LogFile         string        `env:"LOG_FILE"`
	TraceEnabled    bool          `env:"TRACE_ENABLED"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		RunAddr:         ":8080",
		BaseURL:         "https://compresseverything.shuttleapp.rs",
		DBTimeout:       3 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "info",
	}
}

// NewConfig загружает .env (если есть), разбирает флаги из args и переменные окружения
func NewConfig(args []string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := Default()

	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddr, "a", cfg.RunAddr, "address and port to run server")
	fs.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "base URL for shortened links")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN for PostgreSQL")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "address for gRPC server, empty to disable")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.DBTimeout, "t", cfg.DBTimeout, "timeout for a single database call")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Переменные окружения перекрывают флаги
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.DBTimeout <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNonPositiveDBTimeout, cfg.DBTimeout)
	}

	cfg.RunAddr = normalizeAddr(cfg.RunAddr)
	cfg.BaseURL = normalizeBaseURL(cfg.BaseURL)
	if cfg.GRPCAddr != "" {
		cfg.GRPCAddr = normalizeAddr(cfg.GRPCAddr)
	}
	return cfg, nil
}

func normalizeAddr(addr string) string {
	if !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}

func normalizeBaseURL(baseURL string) string {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return strings.TrimRight(baseURL, "/")
}
