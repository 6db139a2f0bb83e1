package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"flipfit/pkg/client"
	"flipfit/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration
	MongoTransactions bool

	RedisURL string

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	LockBackend        string
	LockTTL            time.Duration
	LockAcquireTimeout time.Duration
	LockRetryInterval  time.Duration

	NotificationTransport string
	KafkaBrokers          []string
	NotificationTopic     string
	NotificationDLQTopic  string
	NotificationGroupID   string
	NotificationTimeout   time.Duration

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the environment (and a .env file when present) and exits on invalid configuration.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: serviceName,

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		MongoTransactions: getEnvBool(EnvMongoTransactions, DefaultMongoTransactions),

		RedisURL: getEnvStr(EnvRedisURL, DefaultRedisURL),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		LockBackend:        strings.ToLower(getEnvStr(EnvLockBackend, DefaultLockBackend)),
		LockTTL:            getEnvDuration(EnvLockTTL, DefaultLockTTL),
		LockAcquireTimeout: getEnvDuration(EnvLockAcquireTimeout, DefaultLockAcquireTimeout),
		LockRetryInterval:  getEnvDuration(EnvLockRetryInterval, DefaultLockRetryInterval),

		NotificationTransport: strings.ToLower(getEnvStr(EnvNotificationTransport, DefaultNotificationTransport)),
		KafkaBrokers:          getEnvList(EnvKafkaBrokers, DefaultKafkaBrokers),
		NotificationTopic:     getEnvStr(EnvNotificationTopic, DefaultNotificationTopic),
		NotificationDLQTopic:  getEnvStr(EnvNotificationDLQTopic, DefaultNotificationDLQTopic),
		NotificationGroupID:   getEnvStr(EnvNotificationGroupID, DefaultNotificationGroupID),
		NotificationTimeout:   getEnvDuration(EnvNotificationTimeout, DefaultNotificationTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisURL, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"LockTTL", cfg.LockTTL},
		{"LockAcquireTimeout", cfg.LockAcquireTimeout},
		{"LockRetryInterval", cfg.LockRetryInterval},
		{"NotificationTimeout", cfg.NotificationTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	switch cfg.LockBackend {
	case LockBackendMemory, LockBackendMongo:
	case LockBackendRedis:
		if cfg.RedisURL == "" {
			errors = append(errors, "RedisURL cannot be empty when LockBackend is redis")
		}
	default:
		errors = append(errors, fmt.Sprintf("LockBackend must be one of memory, mongo, redis, got: %s", cfg.LockBackend))
	}

	switch cfg.NotificationTransport {
	case NotificationTransportStore:
	case NotificationTransportKafka:
		if len(cfg.KafkaBrokers) == 0 {
			errors = append(errors, "KafkaBrokers cannot be empty when NotificationTransport is kafka")
		}
		if cfg.NotificationTopic == "" {
			errors = append(errors, "NotificationTopic cannot be empty when NotificationTransport is kafka")
		}
	default:
		errors = append(errors, fmt.Sprintf("NotificationTransport must be one of store, kafka, got: %s", cfg.NotificationTransport))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"mongo_transactions", cfg.MongoTransactions,
		"redis_url", redactRedisURL(cfg.RedisURL),
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"lock_backend", cfg.LockBackend,
		"lock_ttl", cfg.LockTTL,
		"lock_acquire_timeout", cfg.LockAcquireTimeout,
		"notification_transport", cfg.NotificationTransport,
		"kafka_brokers", cfg.KafkaBrokers,
		"notification_topic", cfg.NotificationTopic,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func redactRedisURL(uri string) string {
	credentialRegex := regexp.MustCompile(`(rediss?://)[^@]*@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnvStr(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}
