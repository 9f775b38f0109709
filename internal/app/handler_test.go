package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amishk599/roomwatch/internal/model"
)

func TestHandle_Success(t *testing.T) {
	res := &model.Result{
		Report:   model.Report{Mode: model.ModeFreeText, Text: "Room 3 is free"},
		Notified: true,
	}
	h := NewHandler(func(context.Context) (*model.Result, error) { return res, nil })

	resp, err := h.Handle(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	want := map[string]any{"message": "RoomWatch executed successfully", "result": "Room 3 is free"}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestHandle_Failure(t *testing.T) {
	h := NewHandler(func(context.Context) (*model.Result, error) {
		return nil, errors.New("fetching page: boom")
	})

	resp, err := h.Handle(context.Background(), nil)
	if err != nil {
		t.Fatalf("Handle must not return an error, got %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	var body failureBody
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Message != "RoomWatch execution failed" || body.Error != "fetching page: boom" {
		t.Errorf("body = %+v", body)
	}
}

func TestHandleEvent_ConfigErrorIs500(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	resp, err := HandleEvent(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("HandleEvent returned error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "missing required environment variables") {
		t.Errorf("body = %s", resp.Body)
	}
}

func TestHandleEvent_EndToEnd(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Rooms</h1><p>Room 7 available</p></body></html>`))
	}))
	defer page.Close()

	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{
				"type": "text",
				"text": `{"has_vacancies":true,"vacancy_count":1,"summary":"Room 7","rooms":[{"room":"7","details":"single"}],"notes":""}`,
			}},
		})
	}))
	defer llm.Close()

	statePath := filepath.Join(dir, "state.json")
	t.Setenv("TARGET_URL", page.URL)
	t.Setenv("CLAUDE_API_KEY", "test-key")
	t.Setenv("LLM_BASE_URL", llm.URL)
	t.Setenv("NOTIFIER", "log")
	t.Setenv("STATE_FILE", statePath)
	t.Setenv("LOG_LEVEL", "error")

	resp, err := HandleEvent(context.Background(), json.RawMessage(`{"source":"aws.events"}`))
	if err != nil {
		t.Fatalf("HandleEvent returned error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, body = %s", resp.StatusCode, resp.Body)
	}

	var body struct {
		Message string              `json:"message"`
		Result  model.VacancyReport `json:"result"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.Result.HasVacancies || body.Result.VacancyCount != 1 {
		t.Errorf("result = %+v", body.Result)
	}
	if _, err := os.Stat(statePath); err != nil {
		t.Errorf("state file not written: %v", err)
	}
}

// clearEnv blanks every variable config.Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CLAUDE_API_KEY", "LLM_API_KEY", "PUSHOVER_TOKEN", "PUSHOVER_USER", "TARGET_URL",
		"STATE_FILE", "LOG_LEVEL", "REPORT_MODE", "LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL",
		"FETCH_MODE", "EXTRACT_MODE", "CHROME_BIN", "STATE_BACKEND", "NOTIFIER",
		"SLACK_WEBHOOK_URL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "ROOMWATCH_CONFIG",
	} {
		t.Setenv(k, "")
	}
}

// chdir changes the working directory for the duration of the test and
// restores it afterwards (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
