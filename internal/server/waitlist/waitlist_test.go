package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xcoinlabs/xcoin/internal/store"
)

type captureRecorder struct {
	signups []Signup
	err     error
}

func (c *captureRecorder) Record(_ context.Context, s Signup) error {
	if c.err != nil {
		return c.err
	}
	c.signups = append(c.signups, s)
	return nil
}

func postWaitlist(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://xcoin.example/crowdfunding?ref=x")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWaitlistAcceptsValidEmail(t *testing.T) {
	rec := &captureRecorder{}
	h := NewHandler(rec, quietLogger())

	resp := postWaitlist(t, h, `{"email":"satoshi@example.com"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d, body=%s", resp.Code, http.StatusOK, resp.Body.String())
	}
	if got := decodeBody(t, resp)["message"]; got != MsgJoined {
		t.Fatalf("message: got %q want %q", got, MsgJoined)
	}
	if len(rec.signups) != 1 || rec.signups[0].Email != "satoshi@example.com" || rec.signups[0].Source != "/crowdfunding" {
		t.Fatalf("unexpected recorded signups: %+v", rec.signups)
	}
}

func TestWaitlistRejectsInvalidEmail(t *testing.T) {
	for _, body := range []string{`{"email":""}`, `{}`, `{"email":"not-an-email"}`, `{"mail":"a@b.c"}`} {
		rec := &captureRecorder{}
		resp := postWaitlist(t, NewHandler(rec, quietLogger()), body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status got %d want %d", body, resp.Code, http.StatusBadRequest)
		}
		if got := decodeBody(t, resp)["error"]; got != MsgInvalidEmail {
			t.Fatalf("body %s: error got %q want %q", body, got, MsgInvalidEmail)
		}
		if len(rec.signups) != 0 {
			t.Fatalf("body %s: invalid signup recorded: %+v", body, rec.signups)
		}
	}
}

func TestWaitlistMalformedJSONIsUnexpectedError(t *testing.T) {
	bodies := []string{
		`{"email":`,
		`not json`,
		`{"email": 42}`,
		`{"email":"a@b.c"} garbage`,
		`{"email":"a@b.c"}{"x":1}`,
	}
	for _, body := range bodies {
		rec := &captureRecorder{}
		resp := postWaitlist(t, NewHandler(rec, quietLogger()), body)
		if resp.Code != http.StatusInternalServerError {
			t.Fatalf("body %s: status got %d want %d", body, resp.Code, http.StatusInternalServerError)
		}
		if got := decodeBody(t, resp)["error"]; got != MsgUnexpectedError {
			t.Fatalf("body %s: error got %q want %q", body, got, MsgUnexpectedError)
		}
		if len(rec.signups) != 0 {
			t.Fatalf("body %s: signup recorded: %+v", body, rec.signups)
		}
	}
}

func TestWaitlistAllowsTrailingWhitespace(t *testing.T) {
	resp := postWaitlist(t, NewHandler(&captureRecorder{}, quietLogger()), "{\"email\":\"a@b.c\"}\n  ")
	if resp.Code != http.StatusOK {
		t.Fatalf("status got %d want %d", resp.Code, http.StatusOK)
	}
}

func TestWaitlistRecorderFailureHidesDetail(t *testing.T) {
	var logs bytes.Buffer
	h := NewHandler(&captureRecorder{err: errors.New("disk full at /var/lib/xcoin")}, slog.New(slog.NewTextHandler(&logs, nil)))

	resp := postWaitlist(t, h, `{"email":"a@b.c"}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d want %d", resp.Code, http.StatusInternalServerError)
	}
	if strings.Contains(resp.Body.String(), "disk full") {
		t.Fatalf("internal error leaked to client: %s", resp.Body.String())
	}
	if !strings.Contains(logs.String(), "disk full") {
		t.Fatalf("internal error not logged: %s", logs.String())
	}
}

func TestWaitlistRejectsNonPost(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/waitlist", nil)
	rec := httptest.NewRecorder()
	NewHandler(nil, quietLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestWaitlistWithoutRecorder(t *testing.T) {
	resp := postWaitlist(t, NewHandler(nil, quietLogger()), `{"email":"a@b.c"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", resp.Code, http.StatusOK)
	}
}

func TestLogRecorderWritesSignup(t *testing.T) {
	var logs bytes.Buffer
	r := LogRecorder{Logger: slog.New(slog.NewTextHandler(&logs, nil))}
	if err := r.Record(context.Background(), Signup{Email: "a@b.c", Source: "/faq"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	out := logs.String()
	if !strings.Contains(out, "waitlist signup") || !strings.Contains(out, "email=a@b.c") || !strings.Contains(out, "source=/faq") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestRecordersStopAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	var calls []string
	rs := Recorders{
		RecorderFunc(func(context.Context, Signup) error { calls = append(calls, "first"); return nil }),
		RecorderFunc(func(context.Context, Signup) error { calls = append(calls, "second"); return boom }),
		RecorderFunc(func(context.Context, Signup) error { calls = append(calls, "third"); return nil }),
	}
	if err := rs.Record(context.Background(), Signup{Email: "a@b.c"}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if strings.Join(calls, ",") != "first,second" {
		t.Fatalf("unexpected calls: %v", calls)
	}
}

func TestStoreRecorderPersistsSignup(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "waitlist.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	h := NewHandler(Recorders{LogRecorder{Logger: quietLogger()}, StoreRecorder{Store: db}}, quietLogger())
	if resp := postWaitlist(t, h, `{"email":"vitalik@example.com"}`); resp.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", resp.Code, http.StatusOK)
	}

	entries, err := db.ListWaitlistEntries(context.Background())
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Email != "vitalik@example.com" || entries[0].Source != "/crowdfunding" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Request{Email: "a@b"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	var verr *ValidationError
	if err := Validate(Request{Email: "ab"}); !errors.As(err, &verr) || verr.Message != MsgInvalidEmail {
		t.Fatalf("expected validation error, got %v", err)
	}
}
