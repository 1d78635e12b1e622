package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func convertMarkdown(t *testing.T, md goldmark.Markdown, source string) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(source), &buf))
	return buf.String()
}

func TestButtonExtension_RendersStyledButton(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithExtensions(NewButtonExtension()))

	result := convertMarkdown(t, md, `[!button|Confirm](https://example.com/confirm)`)

	require.Contains(t, result, `<a href="https://example.com/confirm" class="button" style="`+ButtonStyle+`">Confirm</a>`)
}

func TestButtonExtension_CustomStyle(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithExtensions(&ButtonExtension{Style: "color:red;"}))

	result := convertMarkdown(t, md, `[!button|Go](https://example.com)`)

	require.Contains(t, result, `style="color:red;"`)
}

func TestButtonExtension_EscapesLabelAndURL(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithExtensions(NewButtonExtension()))

	result := convertMarkdown(t, md, `[!button|<script>alert("xss")</script>](https://example.com/?a=1&b=2)`)

	require.NotContains(t, result, "<script>")
	require.Contains(t, result, "&lt;script&gt;")
	require.Contains(t, result, "a=1&amp;b=2")
}

func TestButtonExtension_WithSurroundingMarkdown(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithExtensions(NewButtonExtension()))

	result := convertMarkdown(t, md, "# Welcome\n\nPlease verify your email:\n\n[!button|Verify Email](https://example.com/verify)\n\nThank you!")

	require.Contains(t, result, "<h1>Welcome</h1>")
	require.Contains(t, result, `href="https://example.com/verify"`)
	require.Contains(t, result, ">Verify Email</a>")
	require.Contains(t, result, "Thank you!")
}

func TestButtonExtension_IgnoresRegularLinks(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithExtensions(NewButtonExtension()))

	result := convertMarkdown(t, md, `[Regular Link](https://example.com)`)

	require.NotContains(t, result, `class="button"`)
	require.Contains(t, result, `<a href="https://example.com">Regular Link</a>`)
}

func TestButtonExtension_IgnoresIncompleteButton(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithExtensions(NewButtonExtension()))

	tests := []struct {
		name   string
		source string
	}{
		{name: "missing URL", source: `[!button|Click Me]`},
		{name: "missing closing bracket", source: `[!button|Click Me(https://example.com)`},
		{name: "missing closing paren", source: `[!button|Click Me](https://example.com`},
		{name: "wrong prefix", source: `[button|Click Me](https://example.com)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.NotContains(t, convertMarkdown(t, md, tt.source), `class="button"`)
		})
	}
}

func TestButtonNode(t *testing.T) {
	t.Parallel()

	node := &ButtonNode{URL: []byte("https://example.com"), Label: []byte("Test")}

	require.Equal(t, KindButton, node.Kind())
	require.NotPanics(t, func() {
		node.Dump([]byte("source"), 0)
	})
	require.Equal(t, []byte{'['}, NewButtonParser().Trigger())
}
