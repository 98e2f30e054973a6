// Package core renders the error pages shared by every feature.
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Yatube-Back/internal/logs"
	"github.com/ArthurDelaporte/Yatube-Back/internal/templates"
)

// NotFound renders core/404.html. It doubles as the router's NoRoute handler.
func NotFound(c *gin.Context) {
	templates.Render(c, http.StatusNotFound, "core/404.html", gin.H{
		"title": "Page not found",
		"path":  c.Request.URL.Path,
	})
	c.Abort()
}

// ServerError logs err and renders core/500.html.
func ServerError(c *gin.Context, err error) {
	logs.LogJSON("ERROR", "Unexpected error", map[string]interface{}{
		"error": err.Error(),
		"route": c.FullPath(),
		"path":  c.Request.URL.Path,
	})
	templates.Render(c, http.StatusInternalServerError, "core/500.html", gin.H{"title": "Server error"})
	c.Abort()
}
