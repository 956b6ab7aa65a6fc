// Package middleware provides HTTP middleware for the balance engine API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing returns OpenTelemetry tracing middleware.
// The span name follows "HTTP METHOD route_pattern".
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// SpanDecorator tags the request span with the request ID and marks
// 4xx/5xx responses as errors. Place it after Tracing and RequestID.
func SpanDecorator() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if requestID := GetRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}

		c.Next()

		markSpanStatus(span, c.Writer.Status())
	}
}

func markSpanStatus(span trace.Span, statusCode int) {
	if statusCode < http.StatusBadRequest {
		return
	}
	message := "Client Error"
	switch {
	case statusCode >= http.StatusInternalServerError:
		message = "Internal Server Error"
	case statusCode == http.StatusNotFound:
		message = "Not Found"
	case statusCode == http.StatusConflict:
		message = "Conflict"
	case statusCode == http.StatusUnprocessableEntity:
		message = "Unprocessable Entity"
	}
	span.SetStatus(codes.Error, message)
	span.SetAttributes(attribute.Int("http.status_code", statusCode))
}
