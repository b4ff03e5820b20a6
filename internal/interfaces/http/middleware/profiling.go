package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Profiling label names
const (
	ProfilingLabelRoute      = "route"
	ProfilingLabelMethod     = "method"
	ProfilingLabelController = "controller"
	ProfilingLabelTenantID   = "tenant_id"
)

// Profiling tags CPU samples taken while a request runs with its route,
// method, resource and tenant so profiles can be sliced per endpoint.
// It belongs after Tenant in the chain.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		pyroscope.TagWrapper(c.Request.Context(), profilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) pyroscope.LabelSet {
	kv := []string{ProfilingLabelMethod, c.Request.Method}
	if route := c.FullPath(); route != "" {
		kv = append(kv, ProfilingLabelRoute, route)
		if controller := controllerFromRoute(route); controller != "" {
			kv = append(kv, ProfilingLabelController, controller)
		}
	}
	if tenantID := GetTenantID(c); tenantID != "" {
		kv = append(kv, ProfilingLabelTenantID, tenantID)
	}
	return pyroscope.Labels(kv...)
}

// controllerFromRoute derives the resource name of a route:
// "/api/v1/inventory/items/:id/batches" -> "inventory"
func controllerFromRoute(route string) string {
	for part := range strings.SplitSeq(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) {
			continue
		}
		if strings.HasPrefix(part, ":") || strings.HasPrefix(part, "*") {
			return ""
		}
		return part
	}
	return ""
}

// isVersionSegment reports whether a path segment looks like v1, v2, ...
func isVersionSegment(segment string) bool {
	if len(segment) < 2 || (segment[0] != 'v' && segment[0] != 'V') {
		return false
	}
	for i := 1; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return false
		}
	}
	return true
}
