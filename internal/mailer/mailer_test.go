package mailer

import (
	"log/slog"
	"testing"
)

func TestSend_DisabledWithoutHost(t *testing.T) {
	m := New(Config{}, slog.Default())

	// no SMTP server anywhere near this test; a disabled mailer must
	// return without dialing
	m.Send("dana@example.com", "subject", "body")
}
