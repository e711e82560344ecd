package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/lewishowell/yacht-provisioning/config"
	"github.com/lewishowell/yacht-provisioning/database"
	"github.com/lewishowell/yacht-provisioning/handlers"
	"github.com/lewishowell/yacht-provisioning/monitoring"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize schema
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.Default()

	metrics := monitoring.New()
	router.Use(metrics.Middleware())
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := handlers.New(db, cfg)
	handlers.RegisterRoutes(router, api)

	// Add CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Start server
	log.Printf("Starting provisioning server on 0.0.0.0:%s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.ServerPort, c.Handler(router)))
}
