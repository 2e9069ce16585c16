// Package mailer delivers confirmation codes out-of-band. Delivery is best
// effort: callers log failures instead of failing the signup request.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"reviewhub/internal/config"
)

type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// SMTPMailer sends the confirmation code over plain SMTP.
// No third-party mail client is involved; net/smtp covers a single
// transactional message fine.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from: cfg.EmailFrom,
		auth: auth,
	}
}

func (m *SMTPMailer) SendConfirmationCode(ctx context.Context, email, code string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your confirmation code\r\n\r\n"+
		"Use this confirmation code to request an access token:\r\n\r\n%s\r\n",
		m.from, email, code)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

// LogMailer is the development fallback used when SMTP is unconfigured: it
// writes the code to the log instead of sending mail.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendConfirmationCode(ctx context.Context, email, code string) error {
	m.logger.Info("confirmation code issued", "email", email, "code", code)
	return nil
}

// FromConfig picks the SMTP mailer when a host is configured, otherwise the
// logging fallback.
func FromConfig(cfg *config.Config, logger *slog.Logger) Mailer {
	if cfg.SMTPHost != "" {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer(logger)
}
