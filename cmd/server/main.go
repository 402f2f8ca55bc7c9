// cmd/server/main.go
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/BigDaddyAman/webhook-catcher/docs" // Required for Swagger
	"github.com/BigDaddyAman/webhook-catcher/internal/api"
	"github.com/BigDaddyAman/webhook-catcher/internal/config"
	"github.com/BigDaddyAman/webhook-catcher/internal/forward"
	"github.com/BigDaddyAman/webhook-catcher/internal/ratelimit"
	"github.com/BigDaddyAman/webhook-catcher/internal/replay"
	"github.com/BigDaddyAman/webhook-catcher/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title           Webhook Catcher API
// @version         1.0
// @description     API for capturing, inspecting and replaying webhook requests

// @BasePath  /

// @securityDefinitions.apikey  AdminToken
// @in                         header
// @name                       X-Admin-Token
func main() {

	gin.SetMode(gin.ReleaseMode)

	f, _ := os.Create("gin.log")
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)

	// Load configuration from .env
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the database, creating the file and schema on first run
	db, err := storage.NewDB(storage.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := storage.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	store := storage.NewWebhookStore(db)
	forwarder := forward.NewForwarder(cfg.Forward.URL, cfg.Forward.Token)
	replayer := replay.NewReplayer()

	// Rate limiting is only active when Redis is configured
	var rateLimiter *ratelimit.RateLimiter
	if cfg.Redis.URL != "" {
		rateLimiter, err = ratelimit.NewRateLimiter(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to initialize rate limiter: %v", err)
		}
		defer rateLimiter.Close()
	}

	if cfg.ForwardingEnabled() {
		log.Printf("Forwarding enabled to %s", cfg.Forward.URL)
	}
	if cfg.AdminProtected() {
		log.Printf("Admin protection enabled")
	}

	// Set up and start the server
	router := api.SetupRouter(store, forwarder, replayer, rateLimiter, cfg)

	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	if cfg.Env == "development" {
		log.Printf("Server starting on http://localhost%s", serverAddr)
		log.Printf("Swagger UI available at http://localhost%s/swagger/index.html", serverAddr)
	}

	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
