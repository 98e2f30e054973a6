package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Yatube-Back/internal/auth"
	"github.com/ArthurDelaporte/Yatube-Back/internal/logs"
	"github.com/ArthurDelaporte/Yatube-Back/internal/user"
)

// OptionalAuthMiddleware resolves the session cookie into "user" (*user.User)
// and "user_id" (uint). Missing, invalid or stale sessions leave the request
// anonymous.
func OptionalAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(auth.SessionCookie)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		userID, err := auth.ParseToken(secret, tokenStr)
		if err != nil {
			c.Next()
			return
		}

		u, err := user.GetByID(userID)
		if err != nil {
			logs.LogJSON("WARN", "Session for unknown user", map[string]interface{}{
				"userID": userID,
				"error":  err.Error(),
			})
			c.Next()
			return
		}

		c.Set("user", u)
		c.Set("user_id", u.ID)
		c.Next()
	}
}
