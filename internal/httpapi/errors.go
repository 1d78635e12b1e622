package httpapi

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

// ErrInvalidJSON is returned for request bodies that do not decode.
var ErrInvalidJSON = errors.New("invalid JSON body")

// HTTPError is the JSON error body returned by the API.
type HTTPError struct {
	Err       error  `json:"-"`
	Message   string `json:"error"`
	ErrorCode string `json:"code"`
	Resource  string `json:"resource,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	Code      int    `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// toHTTPError maps domain errors onto status codes.
// Load failures name the template or content document that could not be read:
// missing documents and keys are 404, undecodable documents 500 and
// unreachable sources 502.
func toHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	e := &HTTPError{Err: err, Message: err.Error()}

	var loadErr *mailer.LoadError
	switch {
	case errors.As(err, &loadErr):
		e.Resource = loadErr.Name
		switch {
		case errors.Is(loadErr, mailer.ErrContentKeyNotFound):
			e.Code = http.StatusNotFound
			e.ErrorCode = "content_key_not_found"
		case errors.Is(loadErr, fs.ErrNotExist):
			e.Code = http.StatusNotFound
			e.ErrorCode = "template_not_found"
			if errors.Is(loadErr, mailer.ErrContentLoad) {
				e.ErrorCode = "content_not_found"
			}
		case errors.Is(loadErr, mailer.ErrInvalidDocument):
			e.Code = http.StatusInternalServerError
			e.ErrorCode = "invalid_document"
		default:
			e.Code = http.StatusBadGateway
			e.ErrorCode = "source_unavailable"
		}
	case errors.Is(err, ErrInvalidJSON):
		e.Code = http.StatusBadRequest
		e.ErrorCode = "invalid_json"
	case errors.Is(err, mailer.ErrInvalidAddress),
		errors.Is(err, mailer.ErrNoRecipient),
		errors.Is(err, mailer.ErrNoSender):
		e.Code = http.StatusUnprocessableEntity
		e.ErrorCode = "invalid_address"
	case errors.Is(err, mailer.ErrSendFailed):
		e.Code = http.StatusBadGateway
		e.ErrorCode = "send_failed"
	case errors.Is(err, mailer.ErrComposition):
		e.Code = http.StatusUnprocessableEntity
		e.ErrorCode = "composition_failed"
	default:
		e.Code = http.StatusInternalServerError
		e.ErrorCode = "internal"
		e.Message = http.StatusText(http.StatusInternalServerError)
	}
	return e
}
