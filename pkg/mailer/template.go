package mailer

import (
	"context"
	"strings"
)

const templateExt = ".html"

// TemplateRepository loads raw HTML templates from a Source.
// Templates are re-read on every call.
type TemplateRepository struct {
	source      Source
	defaultName string
}

// NewTemplateRepository creates a template repository.
// An empty defaultName falls back to "template".
func NewTemplateRepository(source Source, defaultName string) *TemplateRepository {
	if defaultName == "" {
		defaultName = DefaultTemplateName
	}
	return &TemplateRepository{source: source, defaultName: defaultName}
}

// Get returns the raw text of the named template.
// An empty name selects the default template.
// Failures are returned as a *LoadError matching ErrTemplateLoad.
func (r *TemplateRepository) Get(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = r.defaultName
	}

	data, err := r.source.Read(ctx, name+templateExt)
	if err != nil {
		return "", templateLoadError(name, err)
	}
	return string(data), nil
}
