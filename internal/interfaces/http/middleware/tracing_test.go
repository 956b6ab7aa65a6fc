package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer installs a recording tracer provider globally.
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	prev := otel.GetTracerProvider()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(prev)
	})
	return sr
}

func tracedRouter(status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), Tracing(TracingConfig{ServiceName: "test-service", Enabled: true}), SpanDecorator())
	router.GET("/api/v1/items/:id", func(c *gin.Context) {
		c.Status(status)
	})
	return router
}

func TestTracing_Disabled(t *testing.T) {
	sr := setupTestTracer(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: false}), SpanDecorator())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_RecordsSpanWithRequestID(t *testing.T) {
	sr := setupTestTracer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/7", nil)
	req.Header.Set(RequestIDHeader, "trace-req-1")
	w := httptest.NewRecorder()
	tracedRouter(http.StatusOK).ServeHTTP(w, req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/items/:id")
	assert.Contains(t, spans[0].Attributes(), attribute.String("request_id", "trace-req-1"))
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_MarksErrorResponses(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{http.StatusInternalServerError, "Internal Server Error"},
		{http.StatusUnprocessableEntity, "Unprocessable Entity"},
		{http.StatusConflict, "Conflict"},
		{http.StatusNotFound, "Not Found"},
		{http.StatusBadRequest, "Client Error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			sr := setupTestTracer(t)

			w := httptest.NewRecorder()
			tracedRouter(tt.status).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/items/1", nil))

			spans := sr.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, codes.Error, spans[0].Status().Code)
			if tt.status < http.StatusInternalServerError {
				assert.Equal(t, tt.message, spans[0].Status().Description)
			}
		})
	}
}
