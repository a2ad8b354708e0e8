package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
)

type (
	Config struct {
		HTTP HTTP `env-prefix:"HTTP_"`
		DB   DB   `env-prefix:"DB_"`
		SMTP SMTP `env-prefix:"SMTP_"`
		OTP  OTP  `env-prefix:"OTP_"`
		Log  Log  `env-prefix:"LOG_"`
	}

	HTTP struct {
		Host            string        `env:"HOST"             env-default:"0.0.0.0"`
		Port            string        `env:"PORT"             env-default:"8080" validate:"required"`
		ReadTimeout     time.Duration `env:"READ_TIMEOUT"     env-default:"5s"`
		WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    env-default:"10s"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	}

	DB struct {
		Host     string `env:"HOST"     validate:"required"`
		Port     string `env:"PORT"     env-default:"5432"`
		User     string `env:"USER"     validate:"required"`
		Password string `env:"PASSWORD" validate:"required"`
		Name     string `env:"NAME"     validate:"required"`
		Schema   string `env:"SCHEMA"   env-default:"public"`
		SSLMode  string `env:"SSL_MODE" env-default:"disable" validate:"oneof=disable require verify-ca verify-full"`
	}

	// SMTP is optional: with an empty host the service falls back to a no-op
	// notifier, which is what local development wants.
	SMTP struct {
		Host     string `env:"HOST"`
		Port     int    `env:"PORT" env-default:"587" validate:"gte=1,lte=65535"`
		Username string `env:"USERNAME"`
		Password string `env:"PASSWORD"`
		From     string `env:"FROM" env-default:"orders@feast.local"`
	}

	OTP struct {
		TTL           time.Duration `env:"TTL"            env-default:"5m"  validate:"gt=0"`
		SweepInterval time.Duration `env:"SWEEP_INTERVAL" env-default:"10m" validate:"gt=0"`
		SweepGrace    time.Duration `env:"SWEEP_GRACE"    env-default:"30m" validate:"gte=0"`
	}

	Log struct {
		Level string `env:"LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	}
)

// Load reads configuration from the environment (a .env file is picked up by
// godotenv autoload) and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, ve := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s must satisfy '%s'", ve.Field(), ve.Tag()))
			}
			return nil, fmt.Errorf("config validation: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// DSN builds the postgres connection string for the pgx stdlib driver.
func (d DB) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&search_path=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode, d.Schema,
	)
}
