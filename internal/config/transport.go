package config

import (
	"fmt"

	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/mailer/resend"
	"github.com/dmitrymomot/mailblast/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailblast/pkg/mailer/stdout"
)

// NewTransport builds the outbound transport selected by cfg.Provider.
func NewTransport(cfg Config) (mailer.Transport, error) {
	switch cfg.Provider {
	case ProviderSMTP:
		return smtp.New(cfg.SMTP)
	case ProviderResend:
		return resend.New(cfg.Resend), nil
	case ProviderStdout:
		return stdout.New(), nil
	default:
		return nil, fmt.Errorf("unknown mailer provider %q", cfg.Provider)
	}
}
