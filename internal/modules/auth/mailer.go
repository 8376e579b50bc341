package auth

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"courseportal/internal/config"
)

type Mailer interface {
	SendMagicLink(ctx context.Context, email, link string) error
}

// DevConsoleMailer surfaces magic links through the operator console.
// Strictly a non-production side channel; config.Load refuses to enable it
// in prod.
type DevConsoleMailer struct{}

func (DevConsoleMailer) SendMagicLink(_ context.Context, email, link string) error {
	slog.Info("[DEV-EMAIL] magic login link", "email", email, "link", link)
	return nil
}

// SMTPMailer delivers magic links over SMTP.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *SMTPMailer) SendMagicLink(_ context.Context, email, link string) error {
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Your Course Portal Login Link</h2>
			<p>Click the link below to sign in:</p>
			<p><a href="%s">Sign in to the Course Portal</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This link can be used once and expires in 1 hour.</p>
			<p>If you didn't request this link, you can safely ignore this email.</p>
		</body>
		</html>
	`, link, link)

	plainBody := fmt.Sprintf(`
Your Course Portal Login Link

Sign in by visiting:
%s

This link can be used once and expires in 1 hour.

If you didn't request this link, you can safely ignore this email.
	`, link)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your Course Portal Login Link")
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
