package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/Kingsheunn/Diary/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PicksImplementation(t *testing.T) {
	_, isLog := New(config.MailConfig{}).(LogMailer)
	assert.True(t, isLog)

	_, isSMTP := New(config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587"}).(*SMTPMailer)
	assert.True(t, isSMTP)
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := LogMailer{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	require.NoError(t, m.Send(context.Background(), Message{To: "a@x.com", Subject: "hello"}))
	assert.Contains(t, buf.String(), "to=a@x.com")
}

func TestSMTPMailer_NoSender(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{SMTPHost: "127.0.0.1", SMTPPort: "1"})
	err := m.Send(context.Background(), Message{To: "a@x.com"})
	assert.EqualError(t, err, "mail sender not configured")
}

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage("Diario", "diario@example.com", Message{
		To: "a@x.com", ToName: "Alice", Subject: "How was your day today?", HTML: "<p>hi</p>",
	}))

	assert.True(t, strings.HasPrefix(raw, "From: \"Diario\" <diario@example.com>\r\n"), raw)
	assert.Contains(t, raw, "To: \"Alice\" <a@x.com>\r\n")
	assert.Contains(t, raw, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>hi</p>\r\n"), raw)
}

func TestTemplates(t *testing.T) {
	msg, err := DailyReminder("a@x.com", "<Alice>", "https://diary.example")
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "Hi &lt;Alice&gt;")
	assert.Contains(t, msg.HTML, `href="https://diary.example"`)

	msg, err = WeeklySummary("a@x.com", "Alice", 3, "https://diary.example")
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "You wrote 3 entries this week.")

	msg, err = WeeklySummary("a@x.com", "Alice", 1, "https://diary.example")
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "You wrote 1 entry this week.")
}
