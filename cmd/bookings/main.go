package main

import (
	"flipfit/internal/bookings/handler"
	bookingsrepo "flipfit/internal/bookings/repository"
	"flipfit/internal/bookings/service"
	"flipfit/internal/bookings/validator"
	cataloghandler "flipfit/internal/catalog/handler"
	catalogrepo "flipfit/internal/catalog/repository"
	catalogservice "flipfit/internal/catalog/service"
	catalogvalidator "flipfit/internal/catalog/validator"
	notificationshandler "flipfit/internal/notifications/handler"
	notificationsrepo "flipfit/internal/notifications/repository"
	notificationsservice "flipfit/internal/notifications/service"
	"flipfit/pkg/app"
	"flipfit/pkg/config"
	"flipfit/pkg/kafka"
	kafka_config "flipfit/pkg/kafka/config"
	kafka_middleware "flipfit/pkg/kafka/middleware"
	"flipfit/pkg/lock"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	if cfg.LockBackend == config.LockBackendRedis {
		cfg.SetRedis()
	}

	cfg.Log.Info("Starting Bookings service",
		"lock_backend", cfg.LockBackend,
		"notification_transport", cfg.NotificationTransport,
		"transactions", cfg.MongoTransactions,
	)

	serverApp := app.NewApplication()

	catalogService := initCatalog(cfg)
	notificationService := notificationsservice.NewNotificationService(notificationsrepo.NewMongoNotificationRepository(cfg), cfg)
	sink := initSink(cfg, serverApp, notificationService)
	bookingService := initBookings(cfg, catalogService, sink)

	serverApp.SetApp(cfg,
		cataloghandler.NewCatalogHandler(catalogService, cfg.Log),
		handler.NewBookingHandler(bookingService, cfg.Log),
		notificationshandler.NewNotificationHandler(notificationService, cfg.Log),
	)
	serverApp.OnShutdown(cfg.GracefulShutdown)
	serverApp.Run()
}

func initCatalog(cfg *config.Config) catalogservice.CatalogService {
	return catalogservice.NewCatalogService(
		catalogrepo.NewMongoGymCenterRepository(cfg),
		catalogrepo.NewMongoSlotRepository(cfg),
		catalogvalidator.NewCatalogValidator(cfg.Log),
		cfg,
	)
}

func initBookings(cfg *config.Config, catalog service.SlotCatalog, sink service.NotificationSink) service.BookingService {
	bookingService := service.NewBookingService(
		bookingsrepo.NewMongoBookingRepository(cfg),
		bookingsrepo.NewMongoWaitlistRepository(cfg),
		catalog,
		sink,
		initLocker(cfg),
		validator.NewBookingValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initLocker(cfg *config.Config) lock.Locker {
	switch cfg.LockBackend {
	case config.LockBackendMongo:
		collection := cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(lock.LocksCollection)
		return lock.NewMongoLocker(collection, cfg.LockTTL, cfg.LockRetryInterval)
	case config.LockBackendRedis:
		return lock.NewRedisLocker(cfg.Client.Redis, cfg.LockTTL, cfg.LockRetryInterval)
	default:
		return lock.NewKeyedMutex()
	}
}

func initSink(cfg *config.Config, serverApp *app.Application, notifications notificationsservice.NotificationService) service.NotificationSink {
	if cfg.NotificationTransport != config.NotificationTransportKafka {
		return notificationsservice.NewStoreSink(notifications, cfg)
	}

	kafkaCfg, err := kafka_config.Load(cfg.KafkaBrokers, cfg.ServiceName)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, cfg.NotificationTopic, cfg.NotificationDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware())

	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	cfg.Log.Info("Publishing notifications to Kafka", "topic", producer.Topic(), "brokers", cfg.KafkaBrokers)
	return notificationsservice.NewKafkaSink(producer, cfg)
}
