// Package placeholder implements {{key}} token substitution for email content
// and HTML templates.
//
// Two substitution modes are provided and they are deliberately not unified:
//
//   - ReplaceKeys (keyed-exact mode) iterates the supplied mapping and replaces
//     every {{key}} for the keys it contains. Anything else is left alone.
//   - ReplaceTokens (token-scan mode) scans the target string for {{word}}
//     tokens and resolves each one against the mapping independently. Tokens
//     whose key is absent are preserved byte-for-byte, so literal text that
//     happens to look like a placeholder survives template population.
//
// Both modes are single-pass: replacement values are never scanned again, so
// a value containing {{...}} syntax is emitted verbatim.
//
// Keys are always matched literally. A key such as "a.*" only matches the
// exact token {{a.*}} and is never interpreted as a pattern.
//
// # Usage
//
//	html := placeholder.ReplaceTokens(tmpl, map[string]string{
//		"title": "Welcome",
//		"body":  "<p>Hello</p>",
//	})
//
//	raw := placeholder.ReplaceKeys(`{"subject":"Hi {{name}}"}`, map[string]string{
//		"name": "Ann",
//	})
package placeholder
