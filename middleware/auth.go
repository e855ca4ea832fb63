package middleware

import (
	"net/http"
	"strings"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the httpOnly cookie set by a successful login.
const TokenCookie = "token"

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIResponse{Status: models.StatusError, Error: msg})
}

// AuthMiddleware accepts the login cookie or an "Authorization: Bearer" header and
// requires a token issued for role.
func AuthMiddleware(secret []byte, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookie)
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortUnauthorized(c, "Authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				abortUnauthorized(c, "Invalid Authorization header format")
				return
			}
			token = parts[1]
		}

		claims, err := utils.ValidateToken(secret, token)
		if err != nil || claims.Role != role {
			abortUnauthorized(c, "Invalid authorization token")
			return
		}

		c.Set("userID", claims.ID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
