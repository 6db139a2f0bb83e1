package main

import (
	"flipfit/internal/notifications/consumer"
	"flipfit/internal/notifications/handler"
	"flipfit/internal/notifications/repository"
	"flipfit/internal/notifications/service"
	"flipfit/pkg/app"
	"flipfit/pkg/config"
	"flipfit/pkg/kafka"
	kafka_config "flipfit/pkg/kafka/config"
	kafka_middleware "flipfit/pkg/kafka/middleware"
)

const ServiceName = "notifications"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Notifications service", "topic", cfg.NotificationTopic, "group", cfg.NotificationGroupID)

	notificationService := service.NewNotificationService(repository.NewMongoNotificationRepository(cfg), cfg)
	serverApp := app.NewApplication()

	if len(cfg.KafkaBrokers) > 0 {
		eventConsumer := initConsumer(cfg, notificationService)
		serverApp.AddWorker(eventConsumer.Start)
		serverApp.OnShutdown(func() {
			if err := eventConsumer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka consumer", "error", err)
			}
		})
	} else {
		cfg.Log.Warn("No Kafka brokers configured, serving the notification API only")
	}

	serverApp.SetApp(cfg, handler.NewNotificationHandler(notificationService, cfg.Log))
	serverApp.OnShutdown(cfg.GracefulShutdown)
	serverApp.Run()
}

func initConsumer(cfg *config.Config, notifications service.NotificationService) *kafka.Consumer {
	kafkaCfg, err := kafka_config.Load(cfg.KafkaBrokers, cfg.ServiceName)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	eventConsumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.Log,
		cfg.NotificationTopic,
		cfg.NotificationGroupID,
		cfg.NotificationDLQTopic,
		consumer.NewEventHandler(notifications, cfg.Log),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	eventConsumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	eventConsumer.Use(kafka_middleware.MetricsConsumerMiddleware())

	return eventConsumer
}
