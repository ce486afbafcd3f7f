package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"profile-api/pkg/lambda"
)

// HealthChecker reports whether the database is reachable
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Service  string `json:"service" example:"profile-api"`
	Database string `json:"database" example:"up"`
}

// HealthHandler serves liveness and database health
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a health handler. A nil checker reports healthy.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(h.check(c.Request.Context()))
}

// HandleHealth handles health checks for Lambda
func (h *HealthHandler) HandleHealth(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return lambda.JSON(h.check(ctx))
}

func (h *HealthHandler) check(ctx context.Context) (int, HealthResponse) {
	resp := HealthResponse{Status: "healthy", Service: "profile-api", Database: "up"}

	if h.checker == nil {
		return http.StatusOK, resp
	}

	if err := h.checker.CheckHealth(ctx); err != nil {
		logrus.WithError(err).Warn("Health check failed")
		resp.Status = "unhealthy"
		resp.Database = "down"
		return http.StatusServiceUnavailable, resp
	}
	return http.StatusOK, resp
}
