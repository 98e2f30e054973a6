package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Yatube-Back/internal/admin"
	"github.com/ArthurDelaporte/Yatube-Back/internal/auth"
	"github.com/ArthurDelaporte/Yatube-Back/internal/cache"
	"github.com/ArthurDelaporte/Yatube-Back/internal/config"
	"github.com/ArthurDelaporte/Yatube-Back/internal/core"
	"github.com/ArthurDelaporte/Yatube-Back/internal/follow"
	"github.com/ArthurDelaporte/Yatube-Back/internal/logs"
	"github.com/ArthurDelaporte/Yatube-Back/internal/middleware"
	"github.com/ArthurDelaporte/Yatube-Back/internal/post"
	"github.com/ArthurDelaporte/Yatube-Back/internal/storage"
	"github.com/ArthurDelaporte/Yatube-Back/internal/templates"
)

// SetupRouter wires every page. pages caches the home feed and media receives
// uploads; a *storage.Local backend is also served under cfg.MediaURL.
func SetupRouter(cfg *config.Config, pages *cache.PageCache, media storage.Storage) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(logs.Middleware(), gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CorsAllowedOrigins)))
	router.SetHTMLTemplate(tmpl)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	if local, ok := media.(*storage.Local); ok && strings.HasPrefix(cfg.MediaURL, "/") {
		router.Static(strings.TrimSuffix(cfg.MediaURL, "/"), local.Root)
	}

	router.Use(middleware.OptionalAuthMiddleware([]byte(cfg.JWTSecret)))

	posts := &post.Handler{PerPage: cfg.PostsPerPage, Media: media}
	accounts := &auth.Handler{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.SessionTTL,
		Secure: cfg.GinMode == gin.ReleaseMode,
	}

	// Public pages
	router.GET("/", pages.Middleware(), posts.Index)
	router.GET("/group/:slug/", posts.GroupPosts)
	router.GET("/profile/:username/", posts.Profile)
	router.GET("/posts/:id/", posts.Detail)

	// Accounts
	accountRoutes := router.Group("/auth")
	accountRoutes.GET("/signup/", accounts.SignupPage)
	accountRoutes.POST("/signup/", accounts.Signup)
	accountRoutes.GET("/login/", accounts.LoginPage)
	accountRoutes.POST("/login/", accounts.Login)
	accountRoutes.GET("/logout/", accounts.Logout)
	accountRoutes.POST("/logout/", accounts.Logout)

	// Pages for logged-in users
	protected := router.Group("/")
	protected.Use(middleware.LoginRequiredMiddleware())

	protected.GET("/create/", posts.Create)
	protected.POST("/create/", posts.Create)
	protected.GET("/posts/:id/edit/", posts.Edit)
	protected.POST("/posts/:id/edit/", posts.Edit)
	protected.GET("/posts/:id/comment/", posts.AddComment)
	protected.POST("/posts/:id/comment/", posts.AddComment)

	// Follows
	protected.GET("/follow/", posts.FollowIndex)
	protected.GET("/follow/:username/", follow.ProfileFollow)
	protected.GET("/unfollow/:username/", follow.ProfileUnfollow)

	// Staff JSON API
	adminAPI := router.Group("/admin/api")
	adminAPI.Use(middleware.StaffOnlyMiddleware())

	adminAPI.GET("/stats", admin.GetDashboardStats)
	adminAPI.GET("/charts/:type", admin.GetChartData)
	adminAPI.GET("/top-authors", admin.GetTopAuthors)
	adminAPI.POST("/groups", admin.CreateGroup)
	adminAPI.DELETE("/groups/:slug", admin.DeleteGroup)

	router.NoRoute(core.NotFound)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
