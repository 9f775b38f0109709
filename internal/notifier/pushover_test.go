package notifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/amishk599/roomwatch/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(i int) *int { return &i }

func TestPushover_PostsFormFields(t *testing.T) {
	var form url.Values
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		form = r.PostForm
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":1}`))
	}))
	defer srv.Close()

	n := NewPushoverNotifier("app-token", "user-key", srv.Client(), discardLogger()).WithEndpoint(srv.URL)
	msg := model.Message{Title: "T", Body: "B", Priority: intPtr(1), URL: "https://example.com", URLTitle: "View Vacancies"}
	if err := n.Notify(context.Background(), msg); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if contentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", contentType)
	}
	want := map[string]string{
		"token": "app-token", "user": "user-key", "title": "T", "message": "B",
		"priority": "1", "url": "https://example.com", "url_title": "View Vacancies",
	}
	for k, v := range want {
		if got := form.Get(k); got != v {
			t.Errorf("form[%s] = %q, want %q", k, got, v)
		}
	}
}

func TestPushover_OmitsPriorityWhenUnset(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		form = r.PostForm
	}))
	defer srv.Close()

	n := NewPushoverNotifier("t", "u", srv.Client(), discardLogger()).WithEndpoint(srv.URL)
	if err := n.Notify(context.Background(), model.Message{Title: "T", Body: "B"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if _, ok := form["priority"]; ok {
		t.Errorf("priority should be omitted, got %q", form.Get("priority"))
	}
}

func TestPushover_ErrorStatusWrapsNotifyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"user":"invalid","errors":["user identifier is invalid"],"status":0}`))
	}))
	defer srv.Close()

	n := NewPushoverNotifier("t", "u", srv.Client(), discardLogger()).WithEndpoint(srv.URL)
	err := n.Notify(context.Background(), model.Message{Title: "T", Body: "B"})
	if !errors.Is(err, model.ErrNotify) {
		t.Fatalf("expected ErrNotify, got %v", err)
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected HTTPError 400, got %v", err)
	}
}

func TestPushover_DefaultClientTimeout(t *testing.T) {
	n := NewPushoverNotifier("t", "u", nil, discardLogger())
	if n.httpClient.Timeout != PushoverTimeout {
		t.Errorf("timeout = %v, want %v", n.httpClient.Timeout, PushoverTimeout)
	}
	if n.endpoint != PushoverEndpoint {
		t.Errorf("endpoint = %q", n.endpoint)
	}
}

func TestLogNotifier_ReturnsNil(t *testing.T) {
	n := NewLogNotifier(discardLogger())
	if err := n.Notify(context.Background(), model.Message{Title: "T", Body: "B", Priority: intPtr(0)}); err != nil {
		t.Errorf("Notify = %v, want nil", err)
	}
}
