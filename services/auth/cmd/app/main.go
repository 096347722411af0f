package main

import (
	"meetapp/pkg/cache"
	"meetapp/pkg/config"
	"meetapp/pkg/database"
	"meetapp/pkg/logger"
	authApp "meetapp/services/auth/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Auth Service API
// @version         1.0
// @description     User registration and authentication service for Meetapp

// @host      localhost:8001
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

	authApp.Run(cfg, log, db, redisClient)
}
