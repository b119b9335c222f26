package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tillpoint/tillpoint-api/internal/infrastructure/upstream"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/response"
	"github.com/tillpoint/tillpoint-api/pkg/utils"
)

// AuthMiddleware validates the identity provider's bearer token and binds
// the operator to the request. The raw token is pushed into the request
// context so upstream calls forward the same credential.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("operator_id", claims.OperatorID)
		c.Set("operator_email", claims.Email)
		c.Set("operator_name", claims.Name)
		c.Set("operator_roles", claims.Roles)

		c.Request = c.Request.WithContext(upstream.WithBearer(c.Request.Context(), tokenString))

		c.Next()
	}
}
