package storage

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeS3 serves path-style object and list requests from an in-memory bucket.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	paths   []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, r.Method+" "+r.URL.Path)

	if r.Method == http.MethodHead {
		if r.URL.Path == "/mail-assets" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("list-type") == "2" {
		f.list(w, strings.Trim(r.URL.Path, "/"), r.URL.Query().Get("prefix"))
		return
	}

	if r.Method == http.MethodDelete {
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	body, ok := f.objects[r.URL.Path]
	if !ok {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
			`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
		return
	}
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(body))
}

func (f *fakeS3) list(w http.ResponseWriter, bucket, prefix string) {
	var keys []string
	for p := range f.objects {
		key, ok := strings.CutPrefix(p, "/"+bucket+"/")
		if ok && strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	fmt.Fprintf(&b, "<Name>%s</Name><Prefix>%s</Prefix><KeyCount>%d</KeyCount>", bucket, prefix, len(keys))
	b.WriteString("<MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>")
	for _, k := range keys {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>1</Size></Contents>", k)
	}
	b.WriteString("</ListBucketResult>")

	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(b.String()))
}

func newFakeStore(t *testing.T, bucket, prefix string, objects map[string]string) (*Store, *fakeS3) {
	t.Helper()

	fake := &fakeS3{objects: objects}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := New(Config{
		Bucket:    bucket,
		AccessKey: "test-access-key",
		SecretKey: "test-secret-key",
		Endpoint:  srv.URL,
		PathStyle: true,
		Prefix:    prefix,
	})
	require.NoError(t, err)
	return s, fake
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		s, err := New(Config{Bucket: "b", AccessKey: "a", SecretKey: "s", Prefix: "/templates/"})
		require.NoError(t, err)
		require.NotNil(t, s.client)
		require.Equal(t, DefaultRegion, s.cfg.Region)
		require.Equal(t, "templates", s.cfg.Prefix)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		s, err := New(Config{Bucket: "b"})
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Nil(t, s)
	})
}

func TestStore_Read(t *testing.T) {
	t.Parallel()

	s, fake := newFakeStore(t, "mail-assets", "templates", map[string]string{
		"/mail-assets/templates/template.html": "<h1>{{title}}</h1>",
	})

	data, err := s.Read(context.Background(), "template.html")
	require.NoError(t, err)
	require.Equal(t, "<h1>{{title}}</h1>", string(data))

	_, err = s.Read(context.Background(), "missing.html")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, fs.ErrNotExist)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Contains(t, fake.paths, "GET /mail-assets/templates/template.html")
}

func TestStore_NamesAndDelete(t *testing.T) {
	t.Parallel()

	s, fake := newFakeStore(t, "mail-assets", "mail", map[string]string{
		"/mail-assets/mail/templates/template.html": "<h1>{{title}}</h1>",
		"/mail-assets/mail/content/content.json":    "{}",
		"/mail-assets/other/readme.txt":             "x",
	})
	ctx := context.Background()

	names, err := s.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"content/content.json", "templates/template.html"}, names)

	require.NoError(t, s.Delete(ctx, "content/content.json"))

	names, err = s.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"templates/template.html"}, names)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Contains(t, fake.paths, "DELETE /mail-assets/mail/content/content.json")
}

func TestStore_Read_InvalidName(t *testing.T) {
	t.Parallel()

	s, err := New(Config{Bucket: "b", AccessKey: "a", SecretKey: "s"})
	require.NoError(t, err)

	for _, name := range []string{"", "../secret.json", "a/../../b", "a//b"} {
		_, err := s.Read(context.Background(), name)
		require.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestStore_Healthcheck(t *testing.T) {
	t.Parallel()

	s, _ := newFakeStore(t, "mail-assets", "", nil)
	require.NoError(t, s.Healthcheck(context.Background()))

	missing, _ := newFakeStore(t, "other-bucket", "", nil)
	require.Error(t, missing.Healthcheck(context.Background()))
}

func TestStore_Key(t *testing.T) {
	t.Parallel()

	s := &Store{cfg: Config{Prefix: "content"}}
	key, err := s.key("content.json")
	require.NoError(t, err)
	require.Equal(t, "content/content.json", key)

	s = &Store{}
	key, err = s.key("/nested/template.html")
	require.NoError(t, err)
	require.Equal(t, "nested/template.html", key)
}

func TestContentType(t *testing.T) {
	t.Parallel()

	require.Equal(t, "text/html; charset=utf-8", contentType("a.html"))
	require.Equal(t, "application/json", contentType("a.json"))
	require.Equal(t, "application/yaml", contentType("a.yaml"))
	require.Equal(t, "application/octet-stream", contentType("a"))
}
