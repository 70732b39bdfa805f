package main

import (
	"fmt"
	"os"
	"time"

	"rainrunoff/internal/api/handlers"
	"rainrunoff/internal/api/middleware"
	"rainrunoff/internal/config"
	"rainrunoff/internal/data"
	"rainrunoff/internal/log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg, err := config.Load(os.Getenv("RAINRUNOFF_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if err := log.Init(cfg.Log.Debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ttl := time.Hour
	if v := os.Getenv("RUN_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			ttl = parsed
		} else {
			log.Warnf("ignoring RUN_CACHE_TTL=%q: %v", v, err)
		}
	}
	cache := data.NewRunCache(ttl)
	cache.StartCleanup(5 * time.Minute)
	defer cache.Close()

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := NewRouter(cfg, cache)

	addr := fmt.Sprintf(":%s", port)
	log.Infow("starting API server", "addr", addr, "parameters", cfg.Parameters.ToModelParams().String(), "run_cache_ttl", ttl.String())
	if err := router.Run(addr); err != nil {
		log.Errorf("failed to start server: %v", err)
		os.Exit(1)
	}
}

// NewRouter wires middleware and routes.
func NewRouter(cfg *config.Config, cache *data.RunCache) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log.Logger()))
	router.Use(middleware.Metrics())

	simulateHandler := handlers.NewSimulateHandler(cfg.Parameters, cache, log.Logger())
	parametersHandler := handlers.NewParametersHandler(cfg.Parameters)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.GET("/simulate/:id/ledger", simulateHandler.GetLedger)
		api.POST("/simulate/compare", simulateHandler.CompareSimulations)

		api.GET("/parameters", parametersHandler.ListParameters)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Not found"})
	})
	return router
}
