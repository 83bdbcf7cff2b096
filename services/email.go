package services

import (
	"bytes"
	"fmt"
	"net/smtp"
	"os"

	mailyak "github.com/domodwyer/mailyak/v3"
)

// SMTPConfig carries the outgoing mail settings, read from the
// environment at send time.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPConfigFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USERNAME,
// SMTP_PASSWORD and SMTP_FROM.
func SMTPConfigFromEnv() (SMTPConfig, error) {
	cfg := SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
	if cfg.Host == "" || cfg.From == "" {
		return cfg, fmt.Errorf("SMTP is not configured: set SMTP_HOST and SMTP_FROM")
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return cfg, nil
}

// SendDocEmail emails a generated quote or invoice PDF to a client.
func SendDocEmail(cfg SMTPConfig, to, subject, body, attachmentName string, pdf []byte) error {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	mail := mailyak.New(cfg.Host+":"+cfg.Port, auth)
	mail.From(cfg.From)
	mail.To(to)
	mail.Subject(subject)
	mail.Plain().Set(body)
	mail.Attach(attachmentName, bytes.NewReader(pdf))

	if err := mail.Send(); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
