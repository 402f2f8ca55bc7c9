// internal/api/routes.go
package api

import (
	"github.com/BigDaddyAman/webhook-catcher/internal/api/handlers"
	"github.com/BigDaddyAman/webhook-catcher/internal/api/middleware"
	"github.com/BigDaddyAman/webhook-catcher/internal/auth"
	"github.com/BigDaddyAman/webhook-catcher/internal/config"
	"github.com/BigDaddyAman/webhook-catcher/internal/forward"
	"github.com/BigDaddyAman/webhook-catcher/internal/ratelimit"
	"github.com/BigDaddyAman/webhook-catcher/internal/replay"
	"github.com/BigDaddyAman/webhook-catcher/internal/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRouter(store *storage.WebhookStore, forwarder *forward.Forwarder, replayer *replay.Replayer, rateLimiter *ratelimit.RateLimiter, cfg *config.Config) *gin.Engine {
	router := gin.Default()
	h := handlers.NewHandler(store, forwarder, replayer, cfg)

	//Swagger Route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Capture endpoint accepts any method and content type
	router.Any("/webhook", middleware.IngestRateLimit(rateLimiter), h.HandleWebhook)

	// Inspection endpoints
	router.GET("/webhooks", h.ListWebhooks)
	router.GET("/webhooks/:id", h.GetWebhook)
	router.GET("/export", h.ExportWebhooks)

	// Status endpoints
	router.GET("/healthz", h.Health)
	router.GET("/config", h.ConfigStatus)

	// Mutating operations (requires admin token when configured)
	admin := router.Group("/")
	admin.Use(middleware.AdminRateLimit(rateLimiter), auth.AdminMiddleware(cfg.Admin.Token))
	{
		admin.POST("/clear", h.ClearWebhooks)
		admin.POST("/replay/:id", h.ReplayWebhook)
	}

	return router
}
