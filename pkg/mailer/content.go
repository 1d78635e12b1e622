package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailkit/pkg/placeholder"
)

// Body formats understood by the composer.
const (
	FormatLines    = "lines"    // Each body line becomes a paragraph (default)
	FormatMarkdown = "markdown" // Body is rendered as markdown
)

// CallToAction is the button shown below the email body.
// URL may embed a {{domain}} token.
type CallToAction struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// ContentEntry is the subject, body and call-to-action for one content key.
type ContentEntry struct {
	CallToAction CallToAction `json:"callToAction" yaml:"callToAction"`
	Subject      string       `json:"subject" yaml:"subject"`
	Body         string       `json:"body" yaml:"body"`
	Format       string       `json:"format,omitempty" yaml:"format,omitempty"`
}

// ContentDocument maps content keys to entries.
type ContentDocument map[string]ContentEntry

// Keys returns the document's content keys in sorted order.
func (d ContentDocument) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// DocumentFormat selects how content documents are decoded.
type DocumentFormat string

// Supported content document formats.
const (
	DocumentJSON DocumentFormat = "json"
	DocumentYAML DocumentFormat = "yaml"
)

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (f *DocumentFormat) UnmarshalText(text []byte) error {
	v := DocumentFormat(strings.ToLower(strings.TrimSpace(string(text))))
	switch v {
	case "":
		*f = DocumentJSON
	case DocumentJSON, DocumentYAML:
		*f = v
	default:
		return fmt.Errorf("mailer: unknown document format %q", string(text))
	}
	return nil
}

func (f DocumentFormat) ext() string {
	if f == DocumentYAML {
		return ".yaml"
	}
	return ".json"
}

func (f DocumentFormat) decode(data []byte, doc *ContentDocument) error {
	if f == DocumentYAML {
		return yaml.Unmarshal(data, doc)
	}
	return json.Unmarshal(data, doc)
}

// ContentRepositoryConfig configures a ContentRepository.
type ContentRepositoryConfig struct {
	DefaultName string         // Default: "content"
	Format      DocumentFormat // Default: json
}

// ContentRepository loads content documents from a Source.
// Documents are re-read on every call.
type ContentRepository struct {
	source      Source
	defaultName string
	format      DocumentFormat
}

// NewContentRepository creates a JSON content repository with the default document name.
func NewContentRepository(source Source) *ContentRepository {
	return NewContentRepositoryWithConfig(source, ContentRepositoryConfig{})
}

// NewContentRepositoryWithConfig creates a content repository with custom config.
func NewContentRepositoryWithConfig(source Source, cfg ContentRepositoryConfig) *ContentRepository {
	if cfg.DefaultName == "" {
		cfg.DefaultName = DefaultContentName
	}
	if cfg.Format == "" {
		cfg.Format = DocumentJSON
	}
	return &ContentRepository{
		source:      source,
		defaultName: cfg.DefaultName,
		format:      cfg.Format,
	}
}

// Get returns the entry for contentKey from the named document.
// An empty name selects the default document.
// A missing key is reported as ErrContentKeyNotFound inside a *LoadError.
func (r *ContentRepository) Get(ctx context.Context, contentKey, name string) (*ContentEntry, error) {
	return r.get(ctx, contentKey, name, nil)
}

// GetPopulated is like Get but first substitutes {{key}} tokens in the raw
// document text with values (keyed-exact mode). Values are inserted as-is, so
// a value that breaks the document syntax yields an ErrContentLoad failure.
func (r *ContentRepository) GetPopulated(ctx context.Context, contentKey, name string, values Values) (*ContentEntry, error) {
	return r.get(ctx, contentKey, name, values)
}

// Document loads and parses the whole named document.
func (r *ContentRepository) Document(ctx context.Context, name string) (ContentDocument, error) {
	return r.load(ctx, r.resolve(name), nil)
}

func (r *ContentRepository) get(ctx context.Context, contentKey, name string, values Values) (*ContentEntry, error) {
	name = r.resolve(name)

	doc, err := r.load(ctx, name, values)
	if err != nil {
		return nil, err
	}

	entry, ok := doc[contentKey]
	if !ok {
		return nil, contentLoadError(name, fmt.Errorf("%w: %q", ErrContentKeyNotFound, contentKey))
	}
	return &entry, nil
}

func (r *ContentRepository) load(ctx context.Context, name string, values Values) (ContentDocument, error) {
	data, err := r.source.Read(ctx, name+r.format.ext())
	if err != nil {
		return nil, contentLoadError(name, err)
	}

	if len(values) > 0 {
		data = []byte(placeholder.ReplaceKeys(string(data), values))
	}

	var doc ContentDocument
	if err := r.format.decode(data, &doc); err != nil {
		return nil, contentLoadError(name, fmt.Errorf("%w: %w", ErrInvalidDocument, err))
	}
	return doc, nil
}

func (r *ContentRepository) resolve(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return r.defaultName
	}
	return name
}
