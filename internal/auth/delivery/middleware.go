package delivery

import (
	"net/http"
	"strings"

	"taskmanager-backend/internal/auth/usecase"
	"taskmanager-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	TokenHeader  = "x-auth-token"
	userIDCtxKey = "userID"
)

// AuthMiddleware resolves the caller from the x-auth-token header (or an
// Authorization: Bearer header). The client-sent user-id header is ignored;
// identity comes from the token only.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			if authHeader := c.GetHeader("Authorization"); authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || parts[0] != "Bearer" {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization header format"})
					return
				}
				token = parts[1]
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		userID, err := authUsecase.VerifyToken(token)
		if err != nil {
			msg, _, ok := apperror.Details(err)
			if !ok || msg == "" {
				msg = "Token is not valid"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": msg})
			return
		}

		c.Set(userIDCtxKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated caller set by AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(userIDCtxKey)
}
