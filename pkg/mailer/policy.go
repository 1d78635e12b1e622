package mailer

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/mailkit/pkg/sanitizer"
)

// ValuePolicy controls how caller values are treated before they are
// interpolated into HTML. Values are inserted unescaped by default; enable
// PolicyEscape or PolicyStrip when values may come from untrusted input
// such as a user's display name.
type ValuePolicy string

// Supported value policies.
const (
	PolicyNone   ValuePolicy = "none"   // Insert values verbatim
	PolicyEscape ValuePolicy = "escape" // HTML-escape values
	PolicyStrip  ValuePolicy = "strip"  // Remove all HTML tags from values
)

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (p *ValuePolicy) UnmarshalText(text []byte) error {
	v := ValuePolicy(strings.ToLower(strings.TrimSpace(string(text))))
	switch v {
	case "":
		*p = PolicyNone
	case PolicyNone, PolicyEscape, PolicyStrip:
		*p = v
	default:
		return fmt.Errorf("mailer: unknown value policy %q", string(text))
	}
	return nil
}

// Apply returns a copy of values with the policy applied to every value.
// The domain value is left untouched since it is a configured base URL.
func (p ValuePolicy) Apply(values Values) Values {
	if p == "" || p == PolicyNone || len(values) == 0 {
		return values
	}

	out := make(Values, len(values))
	for k, v := range values {
		if k == DomainKey {
			out[k] = v
			continue
		}
		switch p {
		case PolicyEscape:
			out[k] = sanitizer.EscapeHTML(v)
		case PolicyStrip:
			out[k] = sanitizer.StripHTML(v)
		default:
			out[k] = v
		}
	}
	return out
}
