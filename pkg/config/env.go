package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"
	EnvMongoTransactions = "MONGO_TRANSACTIONS"

	EnvRedisURL = "REDIS_URL"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvLockBackend        = "LOCK_BACKEND"
	EnvLockTTL            = "LOCK_TTL"
	EnvLockAcquireTimeout = "LOCK_ACQUIRE_TIMEOUT"
	EnvLockRetryInterval  = "LOCK_RETRY_INTERVAL"

	EnvNotificationTransport = "NOTIFICATION_TRANSPORT"
	EnvKafkaBrokers          = "KAFKA_BROKERS"
	EnvNotificationTopic     = "NOTIFICATION_TOPIC"
	EnvNotificationDLQTopic  = "NOTIFICATION_DLQ_TOPIC"
	EnvNotificationGroupID   = "NOTIFICATION_GROUP_ID"
	EnvNotificationTimeout   = "NOTIFICATION_TIMEOUT"
)
