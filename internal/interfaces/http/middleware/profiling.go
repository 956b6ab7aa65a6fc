package middleware

import (
	"context"

	"github.com/erp/financial-accounting/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Profiling attaches the route and method as profiling labels for the rest
// of the chain. It passes through when disabled.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		telemetry.WithProfilingLabels(c.Request.Context(), map[string]string{
			telemetry.ProfilingLabelRoute:  route,
			telemetry.ProfilingLabelMethod: c.Request.Method,
		}, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
