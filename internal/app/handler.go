package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"

	"github.com/amishk599/roomwatch/internal/config"
	"github.com/amishk599/roomwatch/internal/model"
)

const (
	successMessage = "RoomWatch executed successfully"
	failureMessage = "RoomWatch execution failed"
)

type successBody struct {
	Message string        `json:"message"`
	Result  *model.Result `json:"result"`
}

type failureBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// RunFunc performs one pipeline run.
type RunFunc func(ctx context.Context) (*model.Result, error)

// Handler adapts a RunFunc to an API Gateway style invocation.
type Handler struct {
	run RunFunc
}

// NewHandler returns a Handler around run.
func NewHandler(run RunFunc) *Handler {
	return &Handler{run: run}
}

// Handle runs the pipeline once and reports the outcome as a 200 or 500
// response. The event payload is ignored. The returned error is always nil.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) (events.APIGatewayProxyResponse, error) {
	res, err := h.run(ctx)
	if err != nil {
		return respond(http.StatusInternalServerError, failureBody{Message: failureMessage, Error: err.Error()}), nil
	}
	return respond(http.StatusOK, successBody{Message: successMessage, Result: res}), nil
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(failureBody{Message: failureMessage, Error: err.Error()})
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}

// HandleEvent is the serverless entry point. Configuration comes from the
// environment (ROOMWATCH_CONFIG optionally names a YAML file).
func HandleEvent(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	return NewHandler(runFromEnv).Handle(ctx, event)
}

func runFromEnv(ctx context.Context) (*model.Result, error) {
	cfg, err := config.Load(os.Getenv("ROOMWATCH_CONFIG"))
	if err != nil {
		slog.Default().Error("failed to load config", "error", err)
		return nil, err
	}
	logger := NewLogger(cfg.LogLevel, os.Stderr)

	a, err := Build(cfg, logger, Options{})
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		return nil, err
	}
	defer a.Close()

	return a.Runner.Run(ctx)
}
