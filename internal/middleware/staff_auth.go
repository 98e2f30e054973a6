package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Yatube-Back/internal/logs"
	"github.com/ArthurDelaporte/Yatube-Back/internal/user"
)

// StaffOnlyMiddleware guards the admin API. It relies on
// OptionalAuthMiddleware having loaded the user.
func StaffOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()

		value, ok := c.Get("user")
		u, _ := value.(*user.User)
		if !ok || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			logs.LogJSON("WARN", "Non-authenticated user tried admin route", map[string]interface{}{
				"route": route,
			})
			return
		}

		if !u.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff only"})
			logs.LogJSON("WARN", "Non-staff user blocked from admin route", map[string]interface{}{
				"route":  route,
				"userID": u.ID,
			})
			return
		}

		c.Next()
	}
}
