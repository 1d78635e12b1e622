package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailkit/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips script injection",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: "Hello",
		},
		{
			name:     "strips all HTML tags",
			input:    `<p>Hello <strong>world</strong></p>`,
			expected: "Hello world",
		},
		{
			name:     "strips event handlers",
			input:    `<img src="x" onerror="alert('xss')">`,
			expected: "",
		},
		{
			name:     "strips javascript URLs",
			input:    `<a href="javascript:alert('xss')">click</a>`,
			expected: "click",
		},
		{
			name:     "handles plain text",
			input:    "Jane Doe",
			expected: "Jane Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&lt;b&gt;Jane&lt;/b&gt;", sanitizer.EscapeHTML("<b>Jane</b>"))
	assert.Equal(t, "Tom &amp; Jerry", sanitizer.EscapeHTML("Tom & Jerry"))
	assert.Equal(t, "plain", sanitizer.EscapeHTML("plain"))
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keeps formatting",
			input:    `<p><strong>Bold</strong> and <em>italic</em></p>`,
			expected: `<p><strong>Bold</strong> and <em>italic</em></p>`,
		},
		{
			name:     "drops scripts",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: `<p>Hello</p>`,
		},
		{
			name:     "adds nofollow to links",
			input:    `<a href="https://example.com">link</a>`,
			expected: `<a href="https://example.com" rel="nofollow">link</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.SanitizeHTML(tt.input))
		})
	}
}

func TestSanitizeHTMLCustom(t *testing.T) {
	t.Parallel()

	t.Run("nil policy returns input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<b>x</b>", sanitizer.SanitizeHTMLCustom("<b>x</b>", nil))
	})

	t.Run("custom policy is applied", func(t *testing.T) {
		t.Parallel()
		policy := bluemonday.NewPolicy().AllowElements("b")
		assert.Equal(t, "<b>x</b>y", sanitizer.SanitizeHTMLCustom("<b>x</b><i>y</i>", policy))
	})
}
