package mailer

import (
	"fmt"
	"regexp"
)

// emailPattern is a syntactic check only; no DNS or MX lookups are made.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether address is a syntactically valid email address.
func IsValidEmail(address string) bool {
	if address == "" || len(address) > 254 {
		return false
	}
	return emailPattern.MatchString(address)
}

// ValidateAddresses validates the sender and every recipient.
// Returns ErrNoRecipient if to is empty.
func ValidateAddresses(from Address, to []Address) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if len(to) == 0 {
		return ErrNoRecipient
	}
	for _, r := range to {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateReplyTo reports ErrInvalidAddress for a non-empty reply-to that is
// not a valid email address.
func ValidateReplyTo(replyTo string) error {
	if replyTo != "" && !IsValidEmail(replyTo) {
		return fmt.Errorf("%w: reply-to %q", ErrInvalidAddress, replyTo)
	}
	return nil
}
