package main

import (
	"log"
	"os"

	"qnahub/internal/db"
	"qnahub/internal/middleware"
	"qnahub/internal/router"
	"qnahub/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Oracle client, shared by the stages and the pipeline
	oracle := services.NewOracleService()

	// Clustering pipeline on a fixed interval
	clustering := services.NewClusteringService(oracle)
	interval := os.Getenv("PIPELINE_INTERVAL")
	if interval == "" {
		interval = "@every 1m"
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(interval, func() {
		if err := clustering.Run(); err != nil {
			log.Printf("[AI Pipeline] run failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid PIPELINE_INTERVAL %q: %v", interval, err)
	}
	scheduler.Start()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("qnahub_session", store))
	r.Use(middleware.EnsureSession())

	router.RegisterRoutes(r, oracle)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("QnAHub server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
