package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"profile-api/internal/handlers"
)

func TestHandlerInvalidBase64Body(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		wantID  string
	}{
		{"forwards request id", map[string]string{"x-request-id": "req-42"}, "req-42"},
		{"generates request id", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := handler(context.Background(), events.APIGatewayProxyRequest{
				HTTPMethod:      http.MethodPost,
				Path:            "/api/profile",
				Headers:         tt.headers,
				Body:            "not base64!",
				IsBase64Encoded: true,
			})
			if err != nil {
				t.Fatalf("handler() error = %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("StatusCode = %d, want 400", resp.StatusCode)
			}

			var body handlers.MessageResponse
			if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body.Msg != handlers.MsgInvalidInput {
				t.Errorf("Msg = %q, want %q", body.Msg, handlers.MsgInvalidInput)
			}

			got := resp.Headers["X-Request-ID"]
			if got == "" {
				t.Fatal("X-Request-ID header missing")
			}
			if tt.wantID != "" && got != tt.wantID {
				t.Errorf("X-Request-ID = %q, want %q", got, tt.wantID)
			}
		})
	}
}
