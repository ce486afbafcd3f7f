package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"profile-api/internal/models"
	"profile-api/pkg/lambda"
)

func route(t *testing.T, router *LambdaRouter, req *lambda.Request) *lambda.Response {
	t.Helper()
	resp, err := router.Route(context.Background(), req)
	if err != nil {
		t.Fatalf("Route(%s %s) error = %v", req.Method, req.Path, err)
	}
	if ct := resp.Headers["Content-Type"]; ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	return resp
}

func TestLambdaRouter_CRUD(t *testing.T) {
	router := NewLambdaRouter(setupService(t), nil)

	resp := route(t, router, &lambda.Request{
		Method: http.MethodPost,
		Path:   "/api/profile",
		Body:   []byte(`{"first_name":"A","last_name":"B","email":"a@x.com","age":30}`),
	})
	if resp.StatusCode != http.StatusOK || string(resp.Body) != `{"msg":"Operation completed"}` {
		t.Fatalf("create = %d %s", resp.StatusCode, resp.Body)
	}

	resp = route(t, router, &lambda.Request{Method: http.MethodGet, Path: "/api/profile"})
	if want := `[{"id":1,"first_name":"A","last_name":"B","email":"a@x.com","age":30}]`; string(resp.Body) != want {
		t.Errorf("list = %s, want %s", resp.Body, want)
	}

	// id from API Gateway path parameters
	resp = route(t, router, &lambda.Request{
		Method:     http.MethodPut,
		Path:       "/api/profile/1",
		PathParams: map[string]string{"id": "1"},
		Body:       []byte(`{"email":"b@x.com","age":31}`),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update = %d %s", resp.StatusCode, resp.Body)
	}

	// id from a greedy proxy path
	resp = route(t, router, &lambda.Request{
		Method:     http.MethodGet,
		Path:       "/api/profile/1/",
		PathParams: map[string]string{"proxy": "api/profile/1"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get = %d %s", resp.StatusCode, resp.Body)
	}
	var profile map[string]interface{}
	if err := json.Unmarshal(resp.Body, &profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if profile["email"] != "b@x.com" || profile["first_name"] != "A" {
		t.Errorf("profile = %v", profile)
	}

	resp = route(t, router, &lambda.Request{Method: http.MethodDelete, Path: "/api/profile/1"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("delete = %d", resp.StatusCode)
	}
	resp = route(t, router, &lambda.Request{Method: http.MethodDelete, Path: "/api/profile/1"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", resp.StatusCode)
	}
}

func TestLambdaRouter_Dispatch(t *testing.T) {
	router := NewLambdaRouter(&stubService{}, stubChecker{})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"health wrong method", http.MethodPost, "/health", "", http.StatusMethodNotAllowed},
		{"collection wrong method", http.MethodDelete, "/api/profile", "", http.StatusMethodNotAllowed},
		{"item wrong method", http.MethodPost, "/api/profile/1", "", http.StatusMethodNotAllowed},
		{"nested path", http.MethodGet, "/api/profile/1/extra", "", http.StatusNotFound},
		{"unknown", http.MethodGet, "/other", "", http.StatusNotFound},
		{"invalid id", http.MethodGet, "/api/profile/abc", "", http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/profile", "{", http.StatusBadRequest},
		{"legacy update without id", http.MethodPut, "/api/profile", `{"email":"a@x.io","age":1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := route(t, router, &lambda.Request{Method: tt.method, Path: tt.path, Body: []byte(tt.body)})
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d, body = %s", resp.StatusCode, tt.want, resp.Body)
			}
		})
	}
}

type panickingService struct {
	stubService
}

func (p *panickingService) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	panic("boom")
}

func TestLambdaRouter_RecoversPanic(t *testing.T) {
	router := NewLambdaRouter(&panickingService{}, nil)

	resp := route(t, router, &lambda.Request{Method: http.MethodGet, Path: "/api/profile"})
	if resp.StatusCode != http.StatusInternalServerError || string(resp.Body) != `{"msg":"Unexpected error"}` {
		t.Errorf("panic response = %d %s", resp.StatusCode, resp.Body)
	}
}
