package devsender

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

func TestSender_Send(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "mail")
	fixed := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	s := New(Config{Dir: dir}, WithClock(func() time.Time { return fixed }))

	receipt, err := s.Send(context.Background(), &mailer.Email{
		From:    mailer.Address{Name: "Team", Email: "team@example.com"},
		To:      []mailer.Address{{Email: "joe@example.com"}},
		Subject: "Jane liked your photo!",
		HTML:    "<p>Hi</p>",
		Tags:    mailer.SimpleTags("social"),
	})
	require.NoError(t, err)
	require.Equal(t, ProviderName, receipt.Provider)
	require.NotEmpty(t, receipt.MessageID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlName, jsonName string
	for _, e := range entries {
		require.True(t, strings.HasPrefix(e.Name(), "2024_03_01_123045_jane_liked_your_photo_"))
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlName = e.Name()
		case ".json":
			jsonName = e.Name()
		}
	}
	require.NotEmpty(t, htmlName)
	require.NotEmpty(t, jsonName)

	html, err := os.ReadFile(filepath.Join(dir, htmlName))
	require.NoError(t, err)
	require.Equal(t, "<p>Hi</p>", string(html))

	raw, err := os.ReadFile(filepath.Join(dir, jsonName))
	require.NoError(t, err)

	var meta metadata
	require.NoError(t, json.Unmarshal(raw, &meta))
	require.Equal(t, receipt.MessageID, meta.MessageID)
	require.Equal(t, `"Team" <team@example.com>`, meta.From)
	require.Equal(t, []string{"joe@example.com"}, meta.To)
	require.Equal(t, []string{"social"}, meta.Tags)
	require.Equal(t, htmlName, meta.HTMLFile)
	require.Equal(t, "2024-03-01T12:30:45Z", meta.Timestamp)
}

func TestSender_Send_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Dir: t.TempDir()}).Send(ctx, &mailer.Email{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"Welcome aboard", "welcome_aboard"},
		{"Reset: your/password?", "reset_yourpassword"},
		{"", "email"},
		{"!!!", "email"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, sanitizeFilename(tt.input))
		})
	}
}
