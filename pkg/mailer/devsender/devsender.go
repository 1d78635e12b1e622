// Package devsender implements mailer.Sender for local development.
// Instead of delivering mail it saves every message as an HTML file plus a
// JSON metadata file in a directory.
package devsender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailkit/pkg/logger"
	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// ProviderName identifies the dev sender in receipts.
const ProviderName = "dev"

// Config holds dev sender configuration.
type Config struct {
	Dir string `env:"DEV_MAIL_DIR" envDefault:"./tmp/mail"`
}

// Sender writes emails to disk.
type Sender struct {
	logger *slog.Logger
	now    func() time.Time
	dir    string
}

// Option configures a Sender.
type Option func(*Sender)

// WithLogger sets the logger used to report saved files.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sender) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(s *Sender) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a dev sender writing into cfg.Dir.
// The directory is created on first send.
func New(cfg Config, opts ...Option) *Sender {
	s := &Sender{
		dir:    cfg.Dir,
		logger: logger.NewNope(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type metadata struct {
	Timestamp string            `json:"timestamp"`
	MessageID string            `json:"message_id"`
	From      string            `json:"from"`
	ReplyTo   string            `json:"reply_to,omitempty"`
	Subject   string            `json:"subject"`
	HTMLFile  string            `json:"html_file"`
	Headers   map[string]string `json:"headers,omitempty"`
	To        []string          `json:"to"`
	Tags      []string          `json:"tags,omitempty"`
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("devsender: failed to create directory: %w", err)
	}

	now := s.now()
	id := uuid.NewString()
	base := fmt.Sprintf("%s_%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(email.Subject), id[:8])

	htmlFile := base + ".html"
	if err := os.WriteFile(filepath.Join(s.dir, htmlFile), []byte(email.HTML), 0o644); err != nil {
		return nil, fmt.Errorf("devsender: failed to write HTML file: %w", err)
	}

	meta := metadata{
		Timestamp: now.Format(time.RFC3339),
		MessageID: id,
		From:      email.From.String(),
		ReplyTo:   email.ReplyTo,
		Subject:   email.Subject,
		HTMLFile:  htmlFile,
		Headers:   email.Headers,
		To:        make([]string, len(email.To)),
	}
	for i, a := range email.To {
		meta.To[i] = a.String()
	}
	for name := range email.Tags {
		meta.Tags = append(meta.Tags, name)
	}
	slices.Sort(meta.Tags)

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("devsender: failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, base+".json"), data, 0o644); err != nil {
		return nil, fmt.Errorf("devsender: failed to write JSON file: %w", err)
	}

	s.logger.InfoContext(ctx, "email saved",
		slog.String("dir", s.dir),
		slog.String("file", htmlFile),
		slog.String("subject", email.Subject),
	)

	return &mailer.Receipt{Provider: ProviderName, MessageID: id}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename lowercases s, turns spaces into underscores and drops
// everything outside [a-z0-9-_.], truncating to 100 bytes.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeChars.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
