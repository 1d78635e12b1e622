package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
	"github.com/dmitrymomot/mailkit/pkg/redis"
	"github.com/dmitrymomot/mailkit/pkg/storage"
)

func TestToHTTPError_LoadErrors(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"content.json": &fstest.MapFile{Data: []byte(`{"welcome":{"subject":"Hi","body":"Hi"}}`)},
		"broken.json":  &fstest.MapFile{Data: []byte(`{"welcome":`)},
		"broken.yaml":  &fstest.MapFile{Data: []byte("welcome: [")},
	}
	fsContents := mailer.NewContentRepository(mailer.NewFSSource(fsys, ""))
	yamlContents := mailer.NewContentRepositoryWithConfig(mailer.NewFSSource(fsys, ""),
		mailer.ContentRepositoryConfig{Format: mailer.DocumentYAML})

	sourceErr := func(err error) *mailer.ContentRepository {
		return mailer.NewContentRepository(mailer.SourceFunc(func(context.Context, string) ([]byte, error) {
			return nil, err
		}))
	}

	tests := []struct {
		name     string
		repo     *mailer.ContentRepository
		key      string
		doc      string
		status   int
		code     string
		resource string
	}{
		{"missing key", fsContents, "nope", "", http.StatusNotFound, "content_key_not_found", "content"},
		{"missing document", fsContents, "welcome", "other", http.StatusNotFound, "content_not_found", "other"},
		{"malformed json", fsContents, "welcome", "broken", http.StatusInternalServerError, "invalid_document", "broken"},
		{"malformed yaml", yamlContents, "welcome", "broken", http.StatusInternalServerError, "invalid_document", "broken"},
		{
			"s3 missing object", sourceErr(fmt.Errorf("%w: %w: NoSuchKey", storage.ErrNotFound, fs.ErrNotExist)),
			"welcome", "", http.StatusNotFound, "content_not_found", "content",
		},
		{
			"redis missing document", sourceErr(fmt.Errorf("%w: mailkit:content.json: %w", redis.ErrNotFound, fs.ErrNotExist)),
			"welcome", "", http.StatusNotFound, "content_not_found", "content",
		},
		{
			"s3 unavailable", sourceErr(fmt.Errorf("%w: connection refused", storage.ErrReadFailed)),
			"welcome", "", http.StatusBadGateway, "source_unavailable", "content",
		},
		{
			"redis unavailable", sourceErr(errors.New("dial tcp: i/o timeout")),
			"welcome", "", http.StatusBadGateway, "source_unavailable", "content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.repo.Get(context.Background(), tt.key, tt.doc)
			require.Error(t, err)

			httpErr := toHTTPError(errors.Join(mailer.ErrComposition, err))
			require.Equal(t, tt.status, httpErr.Code)
			require.Equal(t, tt.code, httpErr.ErrorCode)
			require.Equal(t, tt.resource, httpErr.Resource)
		})
	}
}

func TestToHTTPError_TemplateMissing(t *testing.T) {
	t.Parallel()

	templates := mailer.NewTemplateRepository(mailer.NewFSSource(fstest.MapFS{}, ""), "")
	_, err := templates.Get(context.Background(), "welcome")
	require.Error(t, err)

	httpErr := toHTTPError(err)
	require.Equal(t, http.StatusNotFound, httpErr.Code)
	require.Equal(t, "template_not_found", httpErr.ErrorCode)
	require.Equal(t, "welcome", httpErr.Resource)
}
