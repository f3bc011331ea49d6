package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/formbuilder-api/api/v1"
	"github.com/formbuilder-api/config"
	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/logger"
	"github.com/formbuilder-api/realtime"
)

func main() {
	// Load environment and set Gin mode
	config.LoadEnv()
	ginMode := config.GetEnv("GIN_MODE", gin.ReleaseMode)
	gin.SetMode(ginMode)

	logger.Init(ginMode)
	defer logger.Sync()

	// Connect to database and migrate the schema
	database.Initialize()

	// Initialize router
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	// Service banner
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "formbuilder-api",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1.RegisterRoutes(router.Group("/api/v1"))

	port := config.GetEnv("PORT", "8080")

	log.Printf("🚀 FormBuilder API starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		realtime.Default().Close()
		log.Fatalf("Failed to start server: %v", err)
	}
}
