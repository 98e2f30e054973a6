// Package cache keeps rendered pages for a fixed time-to-live. Entries are
// never invalidated by data changes; only expiry or Clear drops them.
package cache

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

type PageCache struct {
	prefix string
	ttl    time.Duration
	store  *gocache.Cache
}

type page struct {
	status      int
	contentType string
	body        []byte
}

// NewPageCache returns a cache whose entries live for ttl. A non-positive ttl
// disables caching.
func NewPageCache(prefix string, ttl time.Duration) *PageCache {
	cleanup := 2 * ttl
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &PageCache{
		prefix: prefix,
		ttl:    ttl,
		store:  gocache.New(ttl, cleanup),
	}
}

func (p *PageCache) Clear() {
	p.store.Flush()
}

func (p *PageCache) Len() int {
	return p.store.ItemCount()
}

// Key identifies a cached page by request URI and viewer.
func (p *PageCache) Key(c *gin.Context) string {
	viewer := "anon"
	if id, ok := c.Get("user_id"); ok {
		viewer = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s:%s:%s", p.prefix, viewer, c.Request.URL.RequestURI())
}

// Middleware serves GET requests from the cache and stores successful renders.
func (p *PageCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p.ttl <= 0 || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := p.Key(c)
		if cached, ok := p.store.Get(key); ok {
			entry := cached.(page)
			c.Header("X-Cache", "HIT")
			c.Data(entry.status, entry.contentType, entry.body)
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		if recorder.Status() != http.StatusOK {
			return
		}
		p.store.Set(key, page{
			status:      recorder.Status(),
			contentType: recorder.Header().Get("Content-Type"),
			body:        bytes.Clone(recorder.body.Bytes()),
		}, gocache.DefaultExpiration)
	}
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
