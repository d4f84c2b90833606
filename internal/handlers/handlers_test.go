package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/brandforge/internal/services"
	"github.com/example/brandforge/internal/utils"
)

func TestErrorHandler(t *testing.T) {
	validation := utils.ValidationErrors{}
	validation.Add("name", "name is a required field")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "validation",
			err:        validation,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Invalid input"},
		},
		{
			name:       "unauthorized wrapped",
			err:        fmt.Errorf("verify: %w", services.ErrUnauthorized),
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]any{"error": "Unauthorized"},
		},
		{
			name:       "pipeline error",
			err:        &services.Error{Code: services.CodeMissingAPIKey, Message: "Logo generation is not configured", Err: services.ErrNotConfigured},
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"error":   "Internal server error",
				"code":    "MISSING_API_KEY",
				"message": "Logo generation is not configured",
			},
		},
		{
			name:       "fiber error",
			err:        fiber.NewError(fiber.StatusConflict, "user already exists"),
			wantStatus: http.StatusConflict,
			wantBody:   map[string]any{"error": "user already exists"},
		},
		{
			name:       "anything else",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "Internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			var body map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			for key, want := range tt.wantBody {
				if body[key] != want {
					t.Fatalf("%s: expected %v, got %v", key, want, body[key])
				}
			}
		})
	}
}

func TestHealthReportsDatabaseFailure(t *testing.T) {
	app := fiber.New()
	app.Get("/health", NewHealthHandler(func(context.Context) error {
		return errors.New("dial tcp: connection refused")
	}).Check)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestOptional(t *testing.T) {
	if optional("") != nil {
		t.Fatal("empty string should map to nil")
	}
	if got := optional("x"); got == nil || *got != "x" {
		t.Fatalf("unexpected %v", got)
	}
}
