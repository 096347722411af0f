package main

import (
	"meetapp/pkg/cache"
	"meetapp/pkg/config"
	"meetapp/pkg/database"
	"meetapp/pkg/logger"
	"meetapp/pkg/s3"
	meetupApp "meetapp/services/meetup/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Meetup Service API
// @version         1.0
// @description     Meetup management service for Meetapp

// @host      localhost:8002
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	// S3 (or MinIO) stores meetup banners
	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to initialize S3 client: %v", err)
		panic(err)
	}

	meetupApp.Run(cfg, log, db, redisClient, s3Client)
}
