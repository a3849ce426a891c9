// Package mail renders transactional email bodies and delivers them over
// SMTP. Delivery failures are logged, never surfaced to callers.
package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Config holds SMTP delivery settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Enabled reports whether delivery is configured. With delivery disabled
// the mailer logs instead of sending, mirroring a dry-run environment.
func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Mailer sends rendered messages through a single SMTP relay.
type Mailer struct {
	cfg    Config
	logger *slog.Logger
}

// NewMailer constructs a Mailer.
func NewMailer(cfg Config, logger *slog.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Send delivers one HTML message. When delivery is not configured the
// message is dropped with a warning.
func (m *Mailer) Send(to, subject, html string) error {
	if !m.cfg.Enabled() {
		m.logger.Warn("email delivery disabled, message dropped", slog.String("to", to), slog.String("subject", subject))
		return nil
	}

	from := m.cfg.From
	header := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", m.cfg.FromName, from),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}, "\r\n")
	msg := []byte(header + "\r\n\r\n" + html + "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var a smtp.Auth
	if m.cfg.Username != "" {
		a = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, a, from, []string{to}, msg); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	m.logger.Info("email sent", slog.String("to", to), slog.String("subject", subject))
	return nil
}
