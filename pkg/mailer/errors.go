package mailer

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateLoad indicates the HTML template could not be read.
	ErrTemplateLoad = errors.New("failed to load template")

	// ErrContentLoad indicates the content document could not be read or parsed.
	ErrContentLoad = errors.New("failed to load content")

	// ErrInvalidDocument indicates a content document could not be decoded.
	ErrInvalidDocument = errors.New("invalid content document")

	// ErrContentKeyNotFound indicates the content document has no entry for the key.
	ErrContentKeyNotFound = errors.New("content key not found")

	// ErrComposition indicates the email could not be composed.
	ErrComposition = errors.New("failed to compose email")

	// ErrInvalidAddress indicates a sender or recipient is not a valid email address.
	ErrInvalidAddress = errors.New("invalid email address")

	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSender indicates neither the request nor the config provides a sender.
	ErrNoSender = errors.New("email must have a sender")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email must have HTML content")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrUnknownProvider indicates the configured provider name has no adapter.
	ErrUnknownProvider = errors.New("unknown email provider")
)

// LoadError describes a failed template or content read.
// It matches its Kind (ErrTemplateLoad or ErrContentLoad) and the underlying
// cause with errors.Is.
type LoadError struct {
	Kind error  // ErrTemplateLoad or ErrContentLoad
	Name string // Attempted template or content document name
	Err  error  // Underlying cause
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Name)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Name, e.Err)
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func templateLoadError(name string, err error) error {
	return &LoadError{Kind: ErrTemplateLoad, Name: name, Err: err}
}

func contentLoadError(name string, err error) error {
	return &LoadError{Kind: ErrContentLoad, Name: name, Err: err}
}
