package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amishk599/roomwatch/internal/model"
)

func TestSlackNotifier_PayloadFormat(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	msg := model.Message{Title: "🏠 Room Vacancies Detected!", Body: "Room 12", Priority: intPtr(1),
		URL: "https://example.com/rooms", URLTitle: "View Vacancies"}
	if err := n.Notify(context.Background(), msg); err != nil {
		t.Fatalf("Notify() = %v", err)
	}

	var payload slackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(payload.Blocks))
	}
	if payload.Blocks[0].Type != "header" || payload.Blocks[0].Text.Text != msg.Title {
		t.Errorf("header = %+v", payload.Blocks[0])
	}
	if payload.Blocks[1].Text.Text != "Room 12" {
		t.Errorf("section text = %q", payload.Blocks[1].Text.Text)
	}
	button := payload.Blocks[2].Elements[0]
	if button.URL != "https://example.com/rooms" || button.Style != "primary" {
		t.Errorf("button = %+v", button)
	}
}

func TestSlackNotifier_NoButtonWithoutURL(t *testing.T) {
	payload := buildPayload(model.Message{Title: "T", Body: "B"})
	if len(payload.Blocks) != 2 {
		t.Errorf("expected 2 blocks without URL, got %d", len(payload.Blocks))
	}
}

func TestSlackNotifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	err := n.Notify(context.Background(), model.Message{Title: "T", Body: "B"})
	if !errors.Is(err, model.ErrNotify) {
		t.Errorf("expected ErrNotify, got %v", err)
	}
}
