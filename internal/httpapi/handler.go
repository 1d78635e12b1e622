package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailkit/pkg/logger"
	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

const maxBodyBytes = 1 << 20

// Mailer is the subset of *mailer.Mailer used by the API.
type Mailer interface {
	Send(ctx context.Context, params mailer.SendParams) (*mailer.Receipt, error)
	Preview(ctx context.Context, params mailer.ComposeParams) (*mailer.ComposedEmail, error)
}

// ContentLister lists the content keys of a document.
type ContentLister interface {
	Document(ctx context.Context, name string) (mailer.ContentDocument, error)
}

type handler struct {
	mailer   Mailer
	contents ContentLister
}

// SendRequest is the body of POST /v1/send.
type SendRequest struct {
	From    *mailer.Address   `json:"from,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	ReplyTo string            `json:"replyTo,omitempty"`
	To      []mailer.Address  `json:"to"`
	Tags    []string          `json:"tags,omitempty"`
	mailer.ComposeParams
}

// KeysResponse is the body returned by GET /v1/contents/{name}/keys.
type KeysResponse struct {
	Name string   `json:"name"`
	Keys []string `json:"keys"`
}

func (h *handler) compose(w http.ResponseWriter, r *http.Request) {
	var req mailer.ComposeParams
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	composed, err := h.mailer.Preview(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, composed)
}

func (h *handler) send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := h.mailer.Send(r.Context(), mailer.SendParams{
		From:          req.From,
		To:            req.To,
		ReplyTo:       req.ReplyTo,
		Headers:       req.Headers,
		Tags:          mailer.SimpleTags(req.Tags...),
		ComposeParams: req.ComposeParams,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *handler) contentKeys(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	doc, err := h.contents.Document(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, KeysResponse{Name: name, Keys: doc.Keys()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := toHTTPError(err)
	e.RequestID = logger.RequestID(r.Context())
	writeJSON(w, e.Code, e)
}
