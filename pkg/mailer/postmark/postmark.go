// Package postmark implements mailer.Sender on top of Postmark's transactional API.
package postmark

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// ProviderName identifies Postmark in receipts.
const ProviderName = "postmark"

// ErrInvalidConfig is returned by New for incomplete configuration.
var ErrInvalidConfig = errors.New("postmark: invalid config")

// Config holds Postmark configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	BaseURL      string `env:"POSTMARK_BASE_URL"` // Optional API endpoint override
	TrackOpens   bool   `env:"POSTMARK_TRACK_OPENS" envDefault:"true"`
}

// Sender implements mailer.Sender using Postmark.
type Sender struct {
	client *postmark.Client
	config Config
}

// New creates a Postmark-backed sender.
func New(cfg Config) (*Sender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: server token is required", ErrInvalidConfig)
	}

	client := postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	if cfg.BaseURL != "" {
		client.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return &Sender{client: client, config: cfg}, nil
}

// Send implements mailer.Sender.
// Postmark accepts a single tag, so only the alphabetically first tag name is sent.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	to := make([]string, len(email.To))
	for i, a := range email.To {
		to[i] = a.String()
	}

	msg := postmark.Email{
		From:       email.From.String(),
		To:         strings.Join(to, ","),
		ReplyTo:    email.ReplyTo,
		Subject:    email.Subject,
		HTMLBody:   email.HTML,
		Tag:        firstTag(email.Tags),
		TrackOpens: s.config.TrackOpens,
	}
	for name, value := range email.Headers {
		msg.Headers = append(msg.Headers, postmark.Header{Name: name, Value: value})
	}

	resp, err := s.client.SendEmail(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("postmark: failed to send email: %w", err)
	}
	if resp.ErrorCode > 0 {
		return nil, fmt.Errorf("postmark: error %d: %s", resp.ErrorCode, resp.Message)
	}

	return &mailer.Receipt{Provider: ProviderName, MessageID: resp.MessageID}, nil
}

func firstTag(tags mailer.Tags) string {
	if len(tags) == 0 {
		return ""
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	return slices.Min(names)
}
