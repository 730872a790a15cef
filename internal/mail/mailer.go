// Package mail implements the SMTP notifier for account emails.
package mail

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings, populated from the environment.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// ConfigFromEnv parses SMTP settings from environment variables.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse mailer environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the required SMTP settings are present.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}
	return nil
}

// Mailer sends account emails over SMTP. It implements service.Notifier.
type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

// NewMailer creates a Mailer from the given configuration.
func NewMailer(cfg Config) (*Mailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

// SendVerificationCode emails the six-digit registration code.
func (m *Mailer) SendVerificationCode(ctx context.Context, email string, code int) error {
	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
			<h2>Verify your email</h2>
			<p>Enter this code to finish creating your account. It expires in a few minutes.</p>
			<p style="font-size: 32px; letter-spacing: 8px; font-weight: bold;
				background: #f4f4f4; padding: 16px; text-align: center;">%06d</p>
			<p>If you didn't sign up, you can ignore this email.</p>
		</div>`, code)

	return m.sendHTML(ctx, email, "Your verification code", body)
}

// SendResetLink emails the single-use password reset URL.
func (m *Mailer) SendResetLink(ctx context.Context, email, resetURL string) error {
	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
			<h2>Reset your password</h2>
			<p>Click the link below to choose a new password. The link can be
			used once and expires shortly.</p>
			<p><a href="%s">%s</a></p>
			<p>If you didn't request this, you can ignore this email and your
			password will stay unchanged.</p>
		</div>`, resetURL, resetURL)

	return m.sendHTML(ctx, email, "Reset your password", body)
}

func (m *Mailer) sendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
