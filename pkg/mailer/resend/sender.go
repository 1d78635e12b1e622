// Package resend implements mailer.Sender on top of the Resend API.
package resend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// ProviderName identifies Resend in receipts.
const ProviderName = "resend"

// ErrMissingAPIKey is returned by New when the API key is empty.
var ErrMissingAPIKey = errors.New("resend: API key is required")

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
}

// New creates a new Resend sender.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := resend.NewClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("resend: invalid base URL: %w", err)
		}
		client.BaseURL = u
	}

	return &Sender{client: client}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	req := &resend.SendEmailRequest{
		From:    email.From.String(),
		To:      addresses(email.To),
		Subject: email.Subject,
		Html:    email.HTML,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	}

	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	resp, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("resend: failed to send email: %w", err)
	}

	return &mailer.Receipt{Provider: ProviderName, MessageID: resp.Id}, nil
}

func addresses(list []mailer.Address) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.String()
	}
	return out
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
