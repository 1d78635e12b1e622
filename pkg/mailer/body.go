package mailer

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/mailkit/pkg/placeholder"
)

// ParagraphStyle is the inline CSS applied to every body paragraph.
const ParagraphStyle = "color:#3c4149;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;font-size:16px;line-height:26px;margin:0 0 16px;"

const valuesPrefix = "{{values."

// unknownValue matches the remainder of a {{values.<name>}} token whose name
// is not in the value set.
var unknownValue = regexp.MustCompile(`^[^{}\s]+\}\}`)

// BodyFormatter turns a content body into HTML.
type BodyFormatter struct {
	md           goldmark.Markdown
	style        string
	globalDomain bool
}

// BodyFormatterConfig configures a BodyFormatter.
type BodyFormatterConfig struct {
	Style        string // Default: ParagraphStyle
	GlobalDomain bool   // Replace every {{domain}} on a line, not just the first
}

// NewBodyFormatter creates a formatter with the default paragraph style.
func NewBodyFormatter() *BodyFormatter {
	return NewBodyFormatterWithConfig(BodyFormatterConfig{})
}

// NewBodyFormatterWithConfig creates a formatter with custom config.
func NewBodyFormatterWithConfig(cfg BodyFormatterConfig) *BodyFormatter {
	if cfg.Style == "" {
		cfg.Style = ParagraphStyle
	}
	return &BodyFormatter{
		md:           goldmark.New(goldmark.WithExtensions(NewButtonExtension())),
		style:        cfg.Style,
		globalDomain: cfg.GlobalDomain,
	}
}

// Format splits body on "\n", substitutes each line and wraps it in its own
// paragraph. Lines are independent, so a token split across lines is never
// resolved.
//
// On each line every {{values.<name>}} token becomes values[name], or "" when
// the name is absent. Then the first {{domain}} becomes the domain value (all
// of them when GlobalDomain is set).
func (f *BodyFormatter) Format(body string, values Values) string {
	names := valueNames(values)
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = f.paragraph(f.substitute(line, values, names))
	}
	return strings.Join(lines, "\n")
}

// FormatMarkdown applies the same per-line substitution as Format and renders
// the result as markdown. [!button|Label](URL) produces a styled button link.
func (f *BodyFormatter) FormatMarkdown(body string, values Values) (string, error) {
	names := valueNames(values)
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = f.substitute(line, values, names)
	}

	var buf bytes.Buffer
	if err := f.md.Convert([]byte(strings.Join(lines, "\n")), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

func (f *BodyFormatter) substitute(line string, values Values, names []string) string {
	line = resolveValues(line, values, names)

	if f.globalDomain {
		return strings.ReplaceAll(line, placeholder.Token(DomainKey), values.Domain())
	}
	return placeholder.ReplaceFirst(line, DomainKey, values.Domain())
}

func (f *BodyFormatter) paragraph(line string) string {
	return `<p style="` + f.style + `">` + line + `</p>`
}

// valueNames returns the value names longest first, so a name that is a
// prefix of another never shadows it.
func valueNames(values Values) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return names
}

// resolveValues replaces {{values.<name>}} tokens in a single left-to-right
// pass. Names are matched literally against the value set, so they may hold
// spaces or braces. A token whose name is absent becomes "". Substituted text
// is never scanned again.
func resolveValues(line string, values Values, names []string) string {
	if !strings.Contains(line, valuesPrefix) {
		return line
	}

	var b strings.Builder
	b.Grow(len(line))
	for {
		i := strings.Index(line, valuesPrefix)
		if i < 0 {
			b.WriteString(line)
			return b.String()
		}
		b.WriteString(line[:i])
		rest := line[i+len(valuesPrefix):]

		if name, ok := matchName(rest, names); ok {
			b.WriteString(values[name])
			line = rest[len(name)+len("}}"):]
			continue
		}
		if loc := unknownValue.FindStringIndex(rest); loc != nil {
			line = rest[loc[1]:]
			continue
		}
		b.WriteString(valuesPrefix)
		line = rest
	}
}

func matchName(rest string, names []string) (string, bool) {
	for _, name := range names {
		if strings.HasPrefix(rest, name) && strings.HasPrefix(rest[len(name):], "}}") {
			return name, true
		}
	}
	return "", false
}
