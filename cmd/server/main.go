package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oryosefi2/shift-mind/pkg/auth"
	"github.com/oryosefi2/shift-mind/pkg/database"
	"github.com/oryosefi2/shift-mind/pkg/forecast"
	"github.com/oryosefi2/shift-mind/pkg/handlers"
	"github.com/oryosefi2/shift-mind/pkg/metrics"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	var cache *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.WithError(err).Fatal("invalid REDIS_URL")
		}
		cache = redis.NewClient(opts)
	}

	aiServiceURL := os.Getenv("AI_SERVICE_URL")
	if aiServiceURL == "" {
		aiServiceURL = "http://localhost:8001"
	}
	fc := forecast.NewClient(aiServiceURL, cache, log)

	h := &handlers.Handler{DB: db, Forecast: fc, Log: log}

	r := gin.Default()

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ShiftMind Scheduling API",
			"version": "1.0.0",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Business Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/employees", h.ListEmployees)
		api.POST("/employees", h.CreateEmployee)
		api.PUT("/employees/:id", h.UpdateEmployee)
		api.DELETE("/employees/:id", h.DeleteEmployee)

		api.GET("/availability/:employee_id", h.GetAvailability)
		api.PUT("/availability/:employee_id", h.PutAvailability)

		api.POST("/schedule/:week/generate", h.GenerateSchedule)
		api.GET("/schedule/:week", h.GetSchedule)

		api.POST("/forecast/:week/generate", h.GenerateForecast)
		api.GET("/forecast/:week", h.GetForecastDetails)
		api.DELETE("/forecast/:week", h.DeleteForecast)
		api.GET("/forecast-health", h.ForecastHealth)

		api.GET("/validate", h.ValidateBusiness)
		api.GET("/usage", h.GetMyUsage)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.WithField("port", port).Info("server starting")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("could not run server")
	}
}
