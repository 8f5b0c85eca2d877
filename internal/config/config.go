package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server     ServerConfig
	Reference  ReferenceConfig
	Mastercard MastercardConfig
	Visa       VisaConfig
	Amex       AmexConfig
	Providers  ProvidersConfig
	Cache      CacheConfig
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
}

type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
}

type ReferenceConfig struct {
	BaseURL  string `env:"REFERENCE_API_BASE_URL" env-default:"https://api.frankfurter.dev/v1"`
	Currency string `env:"REFERENCE_CURRENCY" env-default:"EUR"`
}

type MastercardConfig struct {
	BaseURL string `env:"MASTERCARD_API_BASE_URL" env-default:"https://api.mastercard.com"`
}

type VisaConfig struct {
	BaseURL string `env:"VISA_API_BASE_URL" env-default:"https://api.visa.com"`
}

type AmexConfig struct {
	BaseURL string `env:"AMEX_API_BASE_URL" env-default:"https://api.americanexpress.com"`
}

type ProvidersConfig struct {
	Timeout time.Duration `env:"PROVIDER_TIMEOUT" env-default:"10s"`
}

type CacheConfig struct {
	TTL time.Duration `env:"CACHE_TTL" env-default:"1h"`
}

// LoadConfig reads configuration from a file named by CONFIG_PATH when set,
// then from environment variables. Unset variables fall back to defaults.
func LoadConfig() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	return &cfg, nil
}
