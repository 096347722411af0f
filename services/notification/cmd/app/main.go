package main

import (
	"meetapp/pkg/cache"
	"meetapp/pkg/config"
	"meetapp/pkg/logger"
	"meetapp/pkg/mail"
	"meetapp/pkg/queue"
	notificationApp "meetapp/services/notification/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Notification Service API
// @version         1.0
// @description     Subscription email worker and notification feed for Meetapp

// @host      localhost:8004
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

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	// Connect to RabbitMQ to consume subscription email tasks
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil // Allow service to start without RabbitMQ
	}

	mailer := mail.NewMailer(cfg)

	notificationApp.Run(cfg, log, redisClient, queueClient, mailer)
}
