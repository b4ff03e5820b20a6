package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/qreats/backend/internal/infrastructure/auth"
	"github.com/qreats/backend/internal/infrastructure/logger"
	"github.com/qreats/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTTenantIDKey = "jwt_tenant_id"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTAuth validates the bearer token and records its tenant claim.
// When the service has no signing secret the middleware lets every request through.
func JWTAuth(svc *auth.JWTService) gin.HandlerFunc {
	if !svc.Enabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortWithError(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortWithError(c, dto.ErrCodeUnauthorized, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(header, BearerPrefix)
		if tokenString == "" {
			abortWithError(c, dto.ErrCodeUnauthorized, "Missing token")
			return
		}

		claims, err := svc.Validate(tokenString)
		if err != nil {
			logger.L(c.Request.Context()).Debug("Token rejected", zap.Error(err))
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithError(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortWithError(c, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTTenantIDKey, claims.TenantID)
		c.Next()
	}
}

// GetJWTTenantID returns the tenant claim of a validated token, if any
func GetJWTTenantID(c *gin.Context) string {
	return c.GetString(JWTTenantIDKey)
}

// GetJWTClaims returns the validated claims, if any
func GetJWTClaims(c *gin.Context) *auth.TenantClaims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.TenantClaims); ok {
			return claims
		}
	}
	return nil
}
