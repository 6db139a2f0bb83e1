package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "flipfit"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultMongoTransactions = false

	DefaultRedisURL = "redis://localhost:6379/0"

	DefaultPort = "8080"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLockBackend        = LockBackendMemory
	DefaultLockTTL            = 30 * time.Second
	DefaultLockAcquireTimeout = 10 * time.Second
	DefaultLockRetryInterval  = 50 * time.Millisecond

	DefaultNotificationTransport = NotificationTransportStore
	DefaultKafkaBrokers          = "localhost:9092"
	DefaultNotificationTopic     = "flipfit.notifications"
	DefaultNotificationDLQTopic  = "flipfit.notifications.dlq"
	DefaultNotificationGroupID   = "flipfit-notifications"
	DefaultNotificationTimeout   = 5 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

const (
	LockBackendMemory = "memory"
	LockBackendMongo  = "mongo"
	LockBackendRedis  = "redis"

	NotificationTransportStore = "store"
	NotificationTransportKafka = "kafka"
)
