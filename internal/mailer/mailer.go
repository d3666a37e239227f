package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer delivers templated mail over SMTP. With an empty host the
// mailer stays disabled and every send becomes a logged no-op, so local
// setups run without an SMTP server.
type Mailer struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Mailer {
	if cfg.Host == "" {
		logger.Warn("smtp host is empty, outgoing email disabled")
	}

	return &Mailer{cfg: cfg, logger: logger}
}

// Send delivers one message. Failures are logged, never returned:
// email is a fire-and-forget side channel and must not fail the
// operation that triggered it.
func (m *Mailer) Send(to, subject, body string) {
	if m.cfg.Host == "" {
		m.logger.Debug("email skipped (mailer disabled)", "to", to, "subject", subject)
		return
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		m.logger.Error("failed to send email", "to", to, "error", err)
	}
}
