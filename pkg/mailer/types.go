package mailer

import (
	"fmt"
	"net/mail"
)

// DomainKey is the value name holding the base URL substituted for {{domain}}.
const DomainKey = "domain"

// Values maps value names to caller-supplied strings used to personalize
// a content body and button URL.
type Values map[string]string

// Domain returns the domain value or an empty string.
func (v Values) Domain() string {
	return v[DomainKey]
}

// ComposedEmail is the final subject and HTML body ready for dispatch.
type ComposedEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Tags represents email tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
// Providers without key-value support keep only the tag names.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	Headers map[string]string // Custom headers
	Tags    Tags              // Provider-specific tags/categories
	From    Address           // Sender
	Subject string            // Email subject
	HTML    string            // HTML body content
	ReplyTo string            // Reply-to address
	To      []Address         // Recipients (at least one required)
}

// Receipt is the provider's response to a successful send.
type Receipt struct {
	Provider   string `json:"provider"`
	MessageID  string `json:"messageId,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// Address is a sender or recipient mailbox.
type Address struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// String formats the address in RFC 5322 form.
// Returns `"Name" <email>` if name is provided, otherwise just email.
// The name is quoted, or RFC 2047 encoded when it is not ASCII.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return (&mail.Address{Name: a.Name, Address: a.Email}).String()
}

// Validate reports ErrInvalidAddress if Email is not a valid address.
func (a Address) Validate() error {
	if !IsValidEmail(a.Email) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, a.Email)
	}
	return nil
}
