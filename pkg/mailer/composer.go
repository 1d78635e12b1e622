package mailer

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailkit/pkg/logger"
	"github.com/dmitrymomot/mailkit/pkg/placeholder"
)

// Template tokens always supplied by the composer.
const (
	TokenTitle       = "title"
	TokenDomain      = "domain"
	TokenBody        = "body"
	TokenButtonURL   = "buttonURL"
	TokenButtonLabel = "buttonLabel"
)

// ComposeParams selects the content and template of an email.
type ComposeParams struct {
	Values       Values `json:"values,omitempty"`
	ContentKey   string `json:"contentKey"`
	TemplateName string `json:"templateName,omitempty"` // Default: Config.TemplateName
	ContentName  string `json:"contentName,omitempty"`  // Default: Config.ContentName
}

// Composer merges a content entry with an HTML template.
// It holds no per-call state and is safe for concurrent use.
type Composer struct {
	templates *TemplateRepository
	contents  *ContentRepository
	formatter *BodyFormatter
	logger    *slog.Logger
	config    Config
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithComposerLogger sets the logger used to report load failures.
func WithComposerLogger(l *slog.Logger) ComposerOption {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBodyFormatter overrides the body formatter built from Config.
func WithBodyFormatter(f *BodyFormatter) ComposerOption {
	return func(c *Composer) {
		if f != nil {
			c.formatter = f
		}
	}
}

// NewComposer creates a composer reading templates and content from the given repositories.
func NewComposer(templates *TemplateRepository, contents *ContentRepository, cfg Config, opts ...ComposerOption) *Composer {
	cfg = cfg.withDefaults()

	c := &Composer{
		templates: templates,
		contents:  contents,
		formatter: NewBodyFormatterWithConfig(BodyFormatterConfig{GlobalDomain: cfg.GlobalDomain}),
		logger:    logger.NewNope(),
		config:    cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewComposerFromSources is a shortcut building both repositories with defaults from cfg.
func NewComposerFromSources(templates, contents Source, cfg Config, opts ...ComposerOption) *Composer {
	cfg = cfg.withDefaults()
	return NewComposer(
		NewTemplateRepository(templates, cfg.TemplateName),
		NewContentRepositoryWithConfig(contents, ContentRepositoryConfig{DefaultName: cfg.ContentName}),
		cfg,
		opts...,
	)
}

// Compose loads the template and content entry, formats the body and
// populates the template's title, domain, body, buttonURL and buttonLabel tokens.
// Other {{word}} tokens in the template are preserved verbatim.
//
// Any load failure is returned joined with ErrComposition; nothing is
// partially composed.
func (c *Composer) Compose(ctx context.Context, params ComposeParams) (*ComposedEmail, error) {
	var (
		tmpl  string
		entry *ContentEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tmpl, err = c.templates.Get(gctx, c.templateName(params.TemplateName))
		return err
	})
	g.Go(func() error {
		var err error
		entry, err = c.contents.Get(gctx, params.ContentKey, c.contentName(params.ContentName))
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.WarnContext(ctx, "email composition failed",
			slog.String("content_key", params.ContentKey),
			slog.String("template", c.templateName(params.TemplateName)),
			slog.String("content", c.contentName(params.ContentName)),
			slog.Any("error", err),
		)
		return nil, errors.Join(ErrComposition, err)
	}

	values := c.config.ValuePolicy.Apply(params.Values)

	body, err := c.formatBody(entry, values)
	if err != nil {
		return nil, errors.Join(ErrComposition, err)
	}

	domain := values.Domain()
	templateDomain := domain
	if templateDomain == "" {
		templateDomain = c.config.FallbackDomain
	}

	html := placeholder.ReplaceTokens(tmpl, map[string]string{
		TokenTitle:       entry.Subject,
		TokenDomain:      templateDomain,
		TokenBody:        body,
		TokenButtonURL:   placeholder.ReplaceKeys(entry.CallToAction.URL, map[string]string{DomainKey: domain}),
		TokenButtonLabel: entry.CallToAction.Label,
	})

	return &ComposedEmail{
		Subject: entry.Subject,
		Body:    html,
	}, nil
}

func (c *Composer) formatBody(entry *ContentEntry, values Values) (string, error) {
	if entry.Format == FormatMarkdown {
		return c.formatter.FormatMarkdown(entry.Body, values)
	}
	return c.formatter.Format(entry.Body, values), nil
}

func (c *Composer) templateName(name string) string {
	if name == "" {
		return c.config.TemplateName
	}
	return name
}

func (c *Composer) contentName(name string) string {
	if name == "" {
		return c.config.ContentName
	}
	return name
}
