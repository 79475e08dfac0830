package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/mixlist/internal/cocktaildb"
	"github.com/windoze95/mixlist/internal/config"
	"github.com/windoze95/mixlist/internal/handlers"
	"github.com/windoze95/mixlist/internal/logger"
	"github.com/windoze95/mixlist/internal/middleware"
	"github.com/windoze95/mixlist/internal/notify"
	"github.com/windoze95/mixlist/internal/service"
	"github.com/windoze95/mixlist/internal/session"
	"github.com/windoze95/mixlist/internal/ws"
)

const (
	sessionSweepInterval = time.Minute
	limiterCleanup       = 5 * time.Minute
	limiterExpiration    = 10 * time.Minute
)

// SetupRouter sets up the Gin router. Background workers (socket hub,
// session sweeper, limiter cleanup) run until stop is closed.
func SetupRouter(cfg *config.Config, provider cocktaildb.Provider, stop <-chan struct{}) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(cfg.EnvVars.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowCredentials = true
		corsConfig.AllowOrigins = cfg.EnvVars.AllowedOrigins
		r.Use(cors.New(corsConfig))
	}

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.AccessLogMiddleware())

	r.SetHTMLTemplate(handlers.PageTemplate())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Notification sockets, one room per session
	hub := ws.NewHub()
	go hub.Run(stop)

	store := session.NewMemoryStore(
		session.WithEmitterOptions(notify.WithTTL(cfg.NotificationTTL())),
		session.WithCreateHook(hub.AttachSession),
	)
	if cfg.EnvVars.SessionIdleTTL > 0 {
		go store.RunSweeper(sessionSweepInterval, cfg.EnvVars.SessionIdleTTL, stop)
	}

	widgetService := service.NewWidgetService(cfg, store, provider)
	widgetHandler := handlers.NewWidgetHandler(widgetService)
	notificationHandler := ws.NewNotificationHandler(hub, widgetService, cfg.EnvVars.AllowedOrigins)

	searchLimiter := middleware.NewIPRateLimiter(cfg.EnvVars.SearchRateLimit)
	go searchLimiter.RunCleanup(limiterCleanup, limiterExpiration, stop)

	// Widget page, the only route that starts a session
	r.GET("/", middleware.AttachSessionToContext(store), widgetHandler.Page)

	widget := r.Group("/v1")
	widget.Use(middleware.RequireSession(store))
	{
		// Current session state
		widget.GET("/state", widgetHandler.GetState)
		// Edit the query
		widget.PUT("/query", widgetHandler.SetQuery)
		// Look up the current query
		widget.POST("/search", middleware.RateLimitByIP(searchLimiter), widgetHandler.Search)

		// Shopping list routes
		widget.POST("/shopping-list", widgetHandler.AddToShoppingList)
		widget.GET("/shopping-list/print", widgetHandler.PrintList)
		widget.DELETE("/shopping-list/*name", widgetHandler.RemoveIngredient)

		// Notification pushes
		widget.GET("/ws", notificationHandler.HandleNotifications)
	}

	return r
}
