package mail

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	_ "github.com/atelier-hq/atelier/testing"
)

func TestConfigEnabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{Host: "smtp.example.com"}.Enabled())
	assert.False(t, Config{From: "noreply@example.com"}.Enabled())
	assert.True(t, Config{Host: "smtp.example.com", From: "noreply@example.com"}.Enabled())
}

func TestSendDisabledDropsMessage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mailer := NewMailer(Config{}, logger)

	err := mailer.Send("user@example.com", "s", "<p>b</p>")
	assert.NoError(t, err)
}
