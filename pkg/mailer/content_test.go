package mailer

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

const contentJSON = `{
  "welcome": {
    "subject": "Welcome, friend",
    "body": "Hi {{values.name}}!",
    "callToAction": {"label": "Start", "url": "{{domain}}/start"}
  },
  "new-like": {
    "subject": "{{liker}} liked your photo",
    "body": "{{values.liker}} liked your photo.",
    "callToAction": {"label": "View", "url": "{{domain}}/p/{{photo}}"}
  }
}`

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"content/content.json":   &fstest.MapFile{Data: []byte(contentJSON)},
		"content/broken.json":    &fstest.MapFile{Data: []byte(`{"welcome": `)},
		"content/marketing.yaml": &fstest.MapFile{Data: []byte("promo:\n  subject: Sale\n  body: \"Up to {{values.off}} off\"\n  format: markdown\n  callToAction:\n    label: Shop\n    url: \"{{domain}}/shop\"\n")},
	}
}

func TestContentRepository_Get(t *testing.T) {
	t.Parallel()

	repo := NewContentRepository(NewFSSource(contentFS(), "content"))

	entry, err := repo.Get(context.Background(), "welcome", "")
	require.NoError(t, err)
	require.Equal(t, "Welcome, friend", entry.Subject)
	require.Equal(t, "Hi {{values.name}}!", entry.Body)
	require.Equal(t, CallToAction{Label: "Start", URL: "{{domain}}/start"}, entry.CallToAction)
}

func TestContentRepository_Errors(t *testing.T) {
	t.Parallel()

	repo := NewContentRepository(NewFSSource(contentFS(), "content"))
	ctx := context.Background()

	t.Run("missing document", func(t *testing.T) {
		t.Parallel()

		_, err := repo.Get(ctx, "welcome", "transactional")
		require.ErrorIs(t, err, ErrContentLoad)

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		require.Equal(t, "transactional", loadErr.Name)
		require.Contains(t, err.Error(), "transactional")
	})

	t.Run("malformed document", func(t *testing.T) {
		t.Parallel()

		_, err := repo.Get(ctx, "welcome", "broken")
		require.ErrorIs(t, err, ErrContentLoad)
		require.NotErrorIs(t, err, ErrContentKeyNotFound)
	})

	t.Run("missing key fails fast", func(t *testing.T) {
		t.Parallel()

		_, err := repo.Get(ctx, "nope", "")
		require.ErrorIs(t, err, ErrContentLoad)
		require.ErrorIs(t, err, ErrContentKeyNotFound)
		require.Contains(t, err.Error(), `"nope"`)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.Get(cctx, "welcome", "")
		require.ErrorIs(t, err, ErrContentLoad)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestContentRepository_RereadsEveryCall(t *testing.T) {
	t.Parallel()

	fs := contentFS()
	repo := NewContentRepository(NewFSSource(fs, "content"))

	first, err := repo.Get(context.Background(), "welcome", "")
	require.NoError(t, err)
	require.Equal(t, "Welcome, friend", first.Subject)

	fs["content/content.json"] = &fstest.MapFile{Data: []byte(`{"welcome": {"subject": "Changed"}}`)}

	second, err := repo.Get(context.Background(), "welcome", "")
	require.NoError(t, err)
	require.Equal(t, "Changed", second.Subject)
}

func TestContentRepository_YAML(t *testing.T) {
	t.Parallel()

	repo := NewContentRepositoryWithConfig(NewFSSource(contentFS(), "content"), ContentRepositoryConfig{
		DefaultName: "marketing",
		Format:      DocumentYAML,
	})

	entry, err := repo.Get(context.Background(), "promo", "")
	require.NoError(t, err)
	require.Equal(t, "Sale", entry.Subject)
	require.Equal(t, FormatMarkdown, entry.Format)
	require.Equal(t, "{{domain}}/shop", entry.CallToAction.URL)
}

func TestContentRepository_GetPopulated(t *testing.T) {
	t.Parallel()

	repo := NewContentRepository(NewFSSource(contentFS(), "content"))

	entry, err := repo.GetPopulated(context.Background(), "new-like", "", Values{
		"liker": "Jane",
		"photo": "012j4az7",
	})
	require.NoError(t, err)
	require.Equal(t, "Jane liked your photo", entry.Subject)
	require.Equal(t, "{{domain}}/p/012j4az7", entry.CallToAction.URL)
	// body tokens use the values. prefix and are untouched by keyed substitution
	require.Equal(t, "{{values.liker}} liked your photo.", entry.Body)

	_, err = repo.GetPopulated(context.Background(), "new-like", "", Values{"liker": `"`})
	require.ErrorIs(t, err, ErrContentLoad)
}

func TestContentRepository_Document(t *testing.T) {
	t.Parallel()

	repo := NewContentRepository(NewFSSource(contentFS(), "content"))

	doc, err := repo.Document(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, []string{"new-like", "welcome"}, doc.Keys())
}

func TestTemplateRepository_Get(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"templates/template.html": &fstest.MapFile{Data: []byte("<!DOCTYPE html><title>{{title}}</title>")},
		"templates/receipt.html":  &fstest.MapFile{Data: []byte("<p>receipt</p>")},
	}
	repo := NewTemplateRepository(NewFSSource(fs, "templates"), "")

	html, err := repo.Get(context.Background(), "")
	require.NoError(t, err)
	require.Contains(t, html, "<!DOCTYPE html>")

	html, err = repo.Get(context.Background(), "receipt")
	require.NoError(t, err)
	require.Equal(t, "<p>receipt</p>", html)

	_, err = repo.Get(context.Background(), "template1")
	require.ErrorIs(t, err, ErrTemplateLoad)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	require.Equal(t, "template1", loadErr.Name)
	require.Contains(t, err.Error(), "failed to load template: template1")
}

func TestSourceFunc(t *testing.T) {
	t.Parallel()

	var requested string
	src := SourceFunc(func(_ context.Context, name string) ([]byte, error) {
		requested = name
		return []byte("<p>{{body}}</p>"), nil
	})

	html, err := NewTemplateRepository(src, "base").Get(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "base.html", requested)
	require.Equal(t, "<p>{{body}}</p>", html)
}

func TestDocumentFormat_UnmarshalText(t *testing.T) {
	t.Parallel()

	var f DocumentFormat
	require.NoError(t, f.UnmarshalText([]byte(" YAML ")))
	require.Equal(t, DocumentYAML, f)

	require.NoError(t, f.UnmarshalText(nil))
	require.Equal(t, DocumentJSON, f)

	require.Error(t, f.UnmarshalText([]byte("yml")))
}
