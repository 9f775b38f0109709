package notifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amishk599/roomwatch/internal/model"
)

func newTelegramServer(t *testing.T, sendStatus int, gotText *string, gotChat *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"watch","username":"watch_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			_ = r.ParseForm()
			*gotText = r.Form.Get("text")
			*gotChat = r.Form.Get("chat_id")
			if sendStatus != http.StatusOK {
				w.WriteHeader(sendStatus)
				_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
				return
			}
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTelegramNotifier_SendsMessage(t *testing.T) {
	var text, chat string
	srv := newTelegramServer(t, http.StatusOK, &text, &chat)

	n := NewTelegramNotifier("123:abc", 42, srv.Client(), discardLogger()).WithEndpoint(srv.URL + "/bot%s/%s")
	msg := model.Message{Title: "Room Watch Update", Body: "No vacancies", URL: "https://example.com", URLTitle: "View Vacancies"}
	if err := n.Notify(context.Background(), msg); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if chat != "42" {
		t.Errorf("chat_id = %q, want 42", chat)
	}
	want := "Room Watch Update\n\nNo vacancies\n\nView Vacancies: https://example.com"
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestTelegramNotifier_SendFailure(t *testing.T) {
	var text, chat string
	srv := newTelegramServer(t, http.StatusBadRequest, &text, &chat)

	n := NewTelegramNotifier("123:abc", 42, srv.Client(), discardLogger()).WithEndpoint(srv.URL + "/bot%s/%s")
	err := n.Notify(context.Background(), model.Message{Title: "T", Body: "B"})
	if !errors.Is(err, model.ErrNotify) {
		t.Errorf("expected ErrNotify, got %v", err)
	}
}
