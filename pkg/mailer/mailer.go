package mailer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/mailkit/pkg/logger"
)

// Mailer composes emails and hands them to a Sender.
// Addresses are validated before anything is loaded or composed.
type Mailer struct {
	sender   Sender
	composer *Composer
	logger   *slog.Logger
	config   Config
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithLogger sets the logger used to report sends.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a new Mailer with the given sender and composer.
func New(sender Sender, composer *Composer, cfg Config, opts ...Option) *Mailer {
	m := &Mailer{
		sender:   sender,
		composer: composer,
		logger:   logger.NewNope(),
		config:   cfg.withDefaults(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendParams contains parameters for sending a composed email.
type SendParams struct {
	From    *Address          // Override default sender
	Tags    Tags              // Provider-specific tags
	Headers map[string]string // Custom headers
	ReplyTo string            // Reply-to address
	To      []Address         // Recipients (at least one required)
	ComposeParams
}

// Send validates addresses, composes the email and delivers it.
// The sender is params.From or, when nil, the configured default sender.
func (m *Mailer) Send(ctx context.Context, params SendParams) (*Receipt, error) {
	from, err := m.resolveSender(params.From)
	if err != nil {
		return nil, err
	}
	if err := ValidateAddresses(from, params.To); err != nil {
		return nil, err
	}
	if err := ValidateReplyTo(params.ReplyTo); err != nil {
		return nil, err
	}

	composed, err := m.composer.Compose(ctx, params.ComposeParams)
	if err != nil {
		return nil, err
	}

	receipt, err := m.deliver(ctx, &Email{
		From:    from,
		To:      params.To,
		Subject: composed.Subject,
		HTML:    composed.Body,
		ReplyTo: params.ReplyTo,
		Headers: params.Headers,
		Tags:    params.Tags,
	})
	if err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "email sent",
		slog.String("content_key", params.ContentKey),
		slog.String("provider", receipt.Provider),
		slog.String("message_id", receipt.MessageID),
		slog.Int("recipients", len(params.To)),
	)
	return receipt, nil
}

// Preview composes an email without sending it.
func (m *Mailer) Preview(ctx context.Context, params ComposeParams) (*ComposedEmail, error) {
	return m.composer.Compose(ctx, params)
}

// SendRaw sends a pre-built email without composition.
// An empty From falls back to the configured default sender.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) (*Receipt, error) {
	if email.From.Email == "" {
		from, err := m.resolveSender(nil)
		if err != nil {
			return nil, err
		}
		email.From = from
	}
	if err := ValidateAddresses(email.From, email.To); err != nil {
		return nil, err
	}
	if err := ValidateReplyTo(email.ReplyTo); err != nil {
		return nil, err
	}
	if email.Subject == "" {
		return nil, ErrNoSubject
	}
	if email.HTML == "" {
		return nil, ErrNoContent
	}

	return m.deliver(ctx, email)
}

func (m *Mailer) deliver(ctx context.Context, email *Email) (*Receipt, error) {
	receipt, err := m.sender.Send(ctx, email)
	if err != nil {
		m.logger.ErrorContext(ctx, "email delivery failed",
			slog.String("subject", email.Subject),
			slog.Any("error", err),
		)
		return nil, errors.Join(ErrSendFailed, err)
	}
	if receipt == nil {
		receipt = &Receipt{}
	}
	return receipt, nil
}

func (m *Mailer) resolveSender(from *Address) (Address, error) {
	if from != nil {
		return *from, nil
	}
	if def, ok := m.config.DefaultSender(); ok {
		return def, nil
	}
	return Address{}, ErrNoSender
}
