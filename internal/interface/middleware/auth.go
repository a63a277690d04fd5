package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-classifieds-api/pkg/helpers"
	"github.com/oksasatya/go-classifieds-api/pkg/response"
)

// CtxUserEmailKey is the gin context key holding the acting account's
// email. Handlers read it to resolve the principal for every service
// call.
const CtxUserEmailKey = "userEmail"

// Auth validates the access token and ensures an active session exists
// in Redis. It sets the acting account's email in the gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		key := helpers.SessionKey(claims.Email)
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.AbortError(c, http.StatusUnauthorized, "session not found", nil)
			return
		}

		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}
