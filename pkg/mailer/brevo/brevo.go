// Package brevo implements mailer.Sender for Brevo's transactional email API
// (POST /v3/smtp/email).
package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// ProviderName identifies Brevo in receipts.
const ProviderName = "brevo"

// DefaultBaseURL is Brevo's v3 API root.
const DefaultBaseURL = "https://api.brevo.com/v3"

var (
	// ErrMissingAPIKey is returned by New when the API key is empty.
	ErrMissingAPIKey = errors.New("brevo: API key is required")

	// ErrUnexpectedStatus is returned when the API responds with a non-2xx status.
	ErrUnexpectedStatus = errors.New("brevo: unexpected response status")
)

// Config holds Brevo configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey  string        `env:"BREVO_API_KEY"`
	BaseURL string        `env:"BREVO_BASE_URL" envDefault:"https://api.brevo.com/v3"`
	Timeout time.Duration `env:"BREVO_TIMEOUT" envDefault:"10s"`
}

// Sender implements mailer.Sender using Brevo's HTTP API.
type Sender struct {
	client   *http.Client
	apiKey   string
	endpoint string
}

// Option configures a Sender.
type Option func(*Sender)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Sender) {
		if c != nil {
			s.client = c
		}
	}
}

// New creates a Brevo sender.
func New(cfg Config, opts ...Option) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	s := &Sender{
		client:   &http.Client{Timeout: cfg.Timeout},
		apiKey:   cfg.APIKey,
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/smtp/email",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type payload struct {
	Sender      contact           `json:"sender"`
	ReplyTo     *contact          `json:"replyTo,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	To          []contact         `json:"to"`
	Tags        []string          `json:"tags,omitempty"`
}

type response struct {
	MessageID string `json:"messageId"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	body, err := json.Marshal(buildPayload(email))
	if err != nil {
		return nil, fmt.Errorf("brevo: failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("brevo: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brevo: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("brevo: failed to read response: %w", err)
	}

	var out response
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Message
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return nil, fmt.Errorf("%w: %d %s: %s", ErrUnexpectedStatus, resp.StatusCode, out.Code, msg)
	}

	return &mailer.Receipt{
		Provider:   ProviderName,
		MessageID:  out.MessageID,
		StatusCode: resp.StatusCode,
	}, nil
}

func buildPayload(email *mailer.Email) payload {
	p := payload{
		Sender:      contact{Name: email.From.Name, Email: email.From.Email},
		To:          make([]contact, len(email.To)),
		Subject:     email.Subject,
		HTMLContent: email.HTML,
		Headers:     email.Headers,
	}
	for i, a := range email.To {
		p.To[i] = contact{Name: a.Name, Email: a.Email}
	}
	if email.ReplyTo != "" {
		p.ReplyTo = &contact{Email: email.ReplyTo}
	}
	if len(email.Tags) > 0 {
		for name := range email.Tags {
			p.Tags = append(p.Tags, name)
		}
		slices.Sort(p.Tags)
	}
	return p
}
