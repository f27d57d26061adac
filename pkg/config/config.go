package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

type CommonConfig struct {
	LogLevel string `env:"COMMON_LOG_LEVEL" envDefault:"info"`
}

type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":4242"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN"`
}

type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"168h"`
}

type ClientConfig struct {
	BaseURL string `env:"CLIENT_BASE_URL" envDefault:"http://localhost:3000"`
}

type CatalogConfig struct {
	BaseURL    string   `env:"CATALOG_BASE_URL" envDefault:"https://dummyjson.com"`
	Categories []string `env:"CATALOG_CATEGORIES" envSeparator:"," envDefault:"smartphones,laptops"`
}

type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type Config struct {
	Common   CommonConfig
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Stripe   StripeConfig
	JWT      JWTConfig
	Client   ClientConfig
	Catalog  CatalogConfig
	Admin    AdminConfig
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Postgres.DSN == "" {
		return Config{}, fmt.Errorf("postgres dsn is empty: set POSTGRES_DSN")
	}
	if cfg.Stripe.SecretKey == "" {
		return Config{}, fmt.Errorf("stripe secret key is empty: set STRIPE_SECRET_KEY")
	}
	if cfg.JWT.Secret == "" {
		return Config{}, fmt.Errorf("jwt secret is empty: set JWT_SECRET")
	}
	return cfg, nil
}
