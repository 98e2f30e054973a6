package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// LoginURL is where anonymous visitors of gated pages are sent.
const LoginURL = "/auth/login/"

// LoginRequiredMiddleware redirects anonymous requests to the login page,
// passing the original path and query as next.
func LoginRequiredMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("user_id"); !ok {
			next := strings.ReplaceAll(url.QueryEscape(c.Request.URL.RequestURI()), "%2F", "/")
			c.Redirect(http.StatusFound, LoginURL+"?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}
