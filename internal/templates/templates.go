// Package templates holds the embedded HTML pages and the helper that renders
// them with the per-request context every page expects.
package templates

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Yatube-Back/internal/storage"
)

//go:embed html
var files embed.FS

var funcs = template.FuncMap{
	"mediaURL": storage.URL,
	"date":     formatDate,
	"lines":    lines,
}

// Load parses every page. Each file declares its templates with
// {{ define "<dir>/<name>.html" }} so names match the render calls.
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "html/*/*.html")
}

// Render adds the viewer and the current path to data and renders name.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if u, ok := c.Get("user"); ok {
		data["user"] = u
	}
	data["template"] = name
	data["request_path"] = c.Request.URL.RequestURI()
	c.HTML(status, name, data)
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

func lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
