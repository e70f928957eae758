package main

import (
	"context"
	"log"
	"net"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/router"
	"github.com/foodgram/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	healthDB, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer healthDB.Close()

	gormDB, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to open gorm connection: %v", err)
	}

	deps := api.Deps{
		DB:       gormDB,
		HealthDB: healthDB,
	}

	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Redis unavailable, rate limiting disabled: %v", err)
		} else {
			deps.Redis = redisClient
			defer redisClient.Close()
		}
	}

	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		deps.S3 = s3Config
	}

	engine := router.SetupRouter(deps, cfg.JWTSecret, cfg.AllowedOrigins)

	srv := server.NewServer(engine)
	addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
