package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// CorrelationIDKey is the key used to store correlation ID in context
const CorrelationIDKey = "correlation_id"

const maxLoggedBody = 10 * 1024

// responseWriter wraps gin.ResponseWriter to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// CorrelationID middleware adds correlation ID for distributed tracing
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = c.GetString(RequestIDKey)
		}
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(CorrelationIDKey, correlationID)
		c.Header("X-Correlation-ID", correlationID)
		c.Next()
	}
}

// StructuredLogger provides structured logging with request context
func StructuredLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Only small bodies are captured, and only in debug mode
		var requestBody []byte
		if gin.Mode() == gin.DebugMode && c.Request.Body != nil &&
			c.Request.ContentLength > 0 && c.Request.ContentLength < maxLoggedBody {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		responseBodyWriter := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBufferString(""),
		}
		c.Writer = responseBodyWriter

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := logrus.Fields{
			"request_id":     c.GetString(RequestIDKey),
			"correlation_id": c.GetString(CorrelationIDKey),
			"method":         c.Request.Method,
			"path":           path,
			"status_code":    status,
			"latency_ms":     float64(latency.Nanoseconds()) / 1e6,
			"client_ip":      c.ClientIP(),
			"user_agent":     c.Request.UserAgent(),
			"content_length": c.Request.ContentLength,
			"response_size":  c.Writer.Size(),
		}

		if raw != "" {
			fields["query"] = raw
		}
		if len(requestBody) > 0 {
			fields["request_body"] = string(requestBody)
		}
		if gin.Mode() == gin.DebugMode && status >= 400 && responseBodyWriter.body.Len() < 1024 {
			fields["response_body"] = responseBodyWriter.body.String()
		}

		switch {
		case status >= 500:
			logrus.WithFields(fields).Error("Server error")
		case status >= 400:
			logrus.WithFields(fields).Warn("Client error")
		default:
			logrus.WithFields(fields).Info("Request completed")
		}
	}
}

// AuditLogger logs every write operation against a profile
func AuditLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		operation := auditOperation(c.Request.Method)
		if operation == "" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		fields := logrus.Fields{
			"audit":          true,
			"request_id":     c.GetString(RequestIDKey),
			"operation":      operation,
			"method":         c.Request.Method,
			"path":           path,
			"status_code":    c.Writer.Status(),
			"client_ip":      c.ClientIP(),
			"operation_time": time.Since(start).Milliseconds(),
		}

		if strings.HasPrefix(path, "/api/profile") {
			fields["resource_type"] = "profile"
		}
		if id, ok := extractResourceID(c); ok {
			fields["resource_id"] = id
		}

		logrus.WithFields(fields).Info("Audit log")
	}
}

// PerformanceMonitor logs requests slower than the threshold
func PerformanceMonitor(slowThreshold time.Duration) gin.HandlerFunc {
	if slowThreshold <= 0 {
		slowThreshold = time.Second
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		if latency > slowThreshold {
			logrus.WithFields(logrus.Fields{
				"performance_alert": true,
				"request_id":        c.GetString(RequestIDKey),
				"method":            c.Request.Method,
				"path":              c.Request.URL.Path,
				"latency_ms":        float64(latency.Nanoseconds()) / 1e6,
				"threshold_ms":      float64(slowThreshold.Nanoseconds()) / 1e6,
				"status_code":       c.Writer.Status(),
			}).Warn("Slow request detected")
		}
	}
}

func auditOperation(method string) string {
	switch method {
	case http.MethodPost:
		return "CREATE"
	case http.MethodPut, http.MethodPatch:
		return "UPDATE"
	case http.MethodDelete:
		return "DELETE"
	}
	return ""
}

// extractResourceID prefers the routed :id and falls back to the last path segment
func extractResourceID(c *gin.Context) (uint64, bool) {
	raw := c.Param("id")
	if raw == "" {
		path := strings.TrimSuffix(c.Request.URL.Path, "/")
		raw = path[strings.LastIndex(path, "/")+1:]
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
