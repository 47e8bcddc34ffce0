// Package config assembles the application configuration from the
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/mailblast/pkg/logger"
	"github.com/dmitrymomot/mailblast/pkg/mailer/resend"
	"github.com/dmitrymomot/mailblast/pkg/mailer/smtp"
)

// Provider names accepted in MAILER_PROVIDER.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderStdout = "stdout"
)

// Config holds the full application configuration.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Provider selects the outbound transport: smtp, resend, or stdout.
	Provider string `env:"MAILER_PROVIDER" envDefault:"smtp"`

	SMTP   smtp.Config
	Resend resend.Config
	Sentry logger.SentryConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
