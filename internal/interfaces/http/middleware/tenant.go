package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qreats/backend/internal/infrastructure/logger"
	"github.com/qreats/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// Tenant resolves the tenant of the request. A validated token claim wins;
// the X-Tenant-ID header is accepted on its own only when no token was
// presented, and must agree with the claim otherwise.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimed := GetJWTTenantID(c)
		header := c.GetHeader(TenantHeaderKey)

		tenantID := claimed
		if header != "" {
			parsed, err := uuid.Parse(header)
			if err != nil {
				abortWithError(c, dto.ErrCodeInvalidInput, "Invalid tenant ID format")
				return
			}
			if claimed != "" && parsed.String() != claimed {
				logger.L(c.Request.Context()).Warn("Tenant header does not match token",
					zap.String("header_tenant_id", parsed.String()),
					zap.String("token_tenant_id", claimed),
				)
				abortWithError(c, dto.ErrCodeForbidden, "Tenant does not match token")
				return
			}
			tenantID = parsed.String()
		}

		if tenantID == "" {
			abortWithError(c, dto.ErrCodeTenantRequired, "Tenant identification required")
			return
		}

		c.Set(TenantIDKey, tenantID)
		ctx := c.Request.Context()
		ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), tenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin.Context
func GetTenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}

// GetTenantUUID retrieves the tenant ID as UUID from gin.Context
func GetTenantUUID(c *gin.Context) (uuid.UUID, error) {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(tenantID)
}
