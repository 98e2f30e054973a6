package cache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// counterRouter renders a body that changes on every handler call.
func counterRouter(pages *PageCache, status int) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-User"); id != "" {
			c.Set("user_id", id)
		}
		c.Next()
	})
	r.GET("/", pages.Middleware(), func(c *gin.Context) {
		calls++
		c.Data(status, "text/html; charset=utf-8", []byte(fmt.Sprintf("render %d", calls)))
	})
	return r, &calls
}

func get(r *gin.Engine, target string, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if user != "" {
		req.Header.Set("X-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPageCacheServesStaleUntilClear(t *testing.T) {
	pages := NewPageCache("index_page", time.Minute)
	r, calls := counterRouter(pages, http.StatusOK)

	first := get(r, "/", "")
	second := get(r, "/", "")

	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "text/html; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, 1, *calls)

	pages.Clear()
	third := get(r, "/", "")

	assert.NotEqual(t, first.Body.String(), third.Body.String())
	assert.Equal(t, 2, *calls)
}

func TestPageCacheExpires(t *testing.T) {
	pages := NewPageCache("index_page", 50*time.Millisecond)
	r, _ := counterRouter(pages, http.StatusOK)

	first := get(r, "/", "")
	time.Sleep(120 * time.Millisecond)
	second := get(r, "/", "")

	assert.NotEqual(t, first.Body.String(), second.Body.String())
}

func TestPageCacheKeysByQueryAndViewer(t *testing.T) {
	pages := NewPageCache("index_page", time.Minute)
	r, calls := counterRouter(pages, http.StatusOK)

	get(r, "/", "")
	get(r, "/?page=2", "")
	get(r, "/", "7")
	get(r, "/", "7")

	assert.Equal(t, 3, *calls)
	assert.Equal(t, 3, pages.Len())
}

func TestPageCacheSkipsErrors(t *testing.T) {
	pages := NewPageCache("index_page", time.Minute)
	r, calls := counterRouter(pages, http.StatusInternalServerError)

	get(r, "/", "")
	get(r, "/", "")

	assert.Equal(t, 2, *calls)
	assert.Equal(t, 0, pages.Len())
}

func TestPageCacheDisabled(t *testing.T) {
	pages := NewPageCache("index_page", 0)
	r, calls := counterRouter(pages, http.StatusOK)

	get(r, "/", "")
	get(r, "/", "")

	assert.Equal(t, 2, *calls)
}
