package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/pkg/apierror"
	"github.com/openpaths/reentry-api/pkg/helpers"
	"github.com/openpaths/reentry-api/pkg/response"
)

// Auth validates the access token cookie and ensures an active session
// exists in Redis. It sets userID, userRole, and userEmail in the Gin
// context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortErr(c, apierror.Unauthorized("missing access token"))
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortErr(c, apierror.Unauthorized("invalid access token"))
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			response.AbortErr(c, apierror.Unauthorized("session not found"))
			return
		}

		c.Set("userID", data["user_id"])
		c.Set("userRole", data["role"])
		c.Set("userEmail", data["email"])
		c.Next()
	}
}

// RequireRole allows the request through only when the session role is
// one of the given roles. Must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := entity.Role(c.GetString("userRole"))
		if _, ok := allowed[role]; !ok {
			response.AbortErr(c, apierror.Forbidden("insufficient role"))
			return
		}
		c.Next()
	}
}
