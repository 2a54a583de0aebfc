// Package waitlist implements the POST /api/waitlist endpoint.
package waitlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/xcoinlabs/xcoin/internal/server/httpx"
	"github.com/xcoinlabs/xcoin/internal/store"
)

const (
	MsgJoined          = "Successfully joined waitlist"
	MsgInvalidEmail    = "Valid email is required"
	MsgUnexpectedError = "Failed to join waitlist"

	maxBodyBytes = 64 << 10
)

type Request struct {
	Email string `json:"email"`
}

type Response struct {
	Message string `json:"message"`
}

// Signup is an accepted waitlist submission.
type Signup struct {
	Email  string
	Source string
}

// ValidationError is returned for submissions the caller can fix. Its
// message is safe to show to users.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate checks that email is present and contains an @.
func Validate(req Request) error {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return &ValidationError{Message: MsgInvalidEmail}
	}
	return nil
}

type Recorder interface {
	Record(ctx context.Context, s Signup) error
}

type RecorderFunc func(ctx context.Context, s Signup) error

func (f RecorderFunc) Record(ctx context.Context, s Signup) error { return f(ctx, s) }

// LogRecorder writes every signup to the structured log.
type LogRecorder struct {
	Logger *slog.Logger
}

func (r LogRecorder) Record(ctx context.Context, s Signup) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "waitlist signup", "email", s.Email, "source", s.Source)
	return nil
}

// StoreRecorder appends signups to the sqlite store.
type StoreRecorder struct {
	Store *store.Store
}

func (r StoreRecorder) Record(ctx context.Context, s Signup) error {
	if _, err := r.Store.AddWaitlistEntry(ctx, s.Email, s.Source); err != nil {
		return fmt.Errorf("record waitlist signup: %w", err)
	}
	return nil
}

// Recorders fans a signup out to every recorder in order, stopping at the
// first error.
type Recorders []Recorder

func (rs Recorders) Record(ctx context.Context, s Signup) error {
	for _, r := range rs {
		if err := r.Record(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

type Handler struct {
	Recorder Recorder
	Logger   *slog.Logger
}

func NewHandler(rec Recorder, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Recorder: rec, Logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	err := h.submit(w, r)
	var verr *ValidationError
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, Response{Message: MsgJoined})
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, verr.Message)
	default:
		h.logger().ErrorContext(r.Context(), "waitlist submission failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, MsgUnexpectedError)
	}
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) error {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return fmt.Errorf("decode waitlist request: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decode waitlist request: trailing data after JSON body")
	}
	if err := Validate(req); err != nil {
		return err
	}
	if h.Recorder == nil {
		return nil
	}
	return h.Recorder.Record(r.Context(), Signup{Email: req.Email, Source: refererPath(r)})
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

func refererPath(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return u.Path
}
