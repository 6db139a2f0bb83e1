package kafka_config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type ProducerConfig struct {
	MaxAttempts  int
	BatchTimeout time.Duration
	RequiredAcks int    // -1 all replicas, 0 fire-and-forget, 1 leader
	Compression  string // none, gzip, snappy, lz4, zstd
}

type ConsumerConfig struct {
	StartOffset       int64 // -1 newest, -2 oldest
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	CommitInterval    time.Duration
	HeartbeatInterval time.Duration
	SessionTimeout    time.Duration
	RebalanceTimeout  time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
}

// Config carries broker addresses from the service config plus KAFKA_* tuning.
type Config struct {
	Brokers  []string
	ClientID string
	Producer ProducerConfig
	Consumer ConsumerConfig
}

var (
	validCompressions = []string{"none", "gzip", "snappy", "lz4", "zstd"}
	validAcks         = map[int]bool{-1: true, 0: true, 1: true}
)

func Load(brokers []string, clientID string) (*Config, error) {
	if clientID == "" {
		clientID = DefaultClientID
	}

	cfg := &Config{
		Brokers:  brokers,
		ClientID: clientID,
		Producer: ProducerConfig{
			MaxAttempts:  getEnvInt(EnvProducerMaxAttempts, DefaultProducerMaxAttempts),
			BatchTimeout: getEnvDuration(EnvProducerBatchTimeout, DefaultProducerBatchTimeout),
			RequiredAcks: getEnvInt(EnvProducerRequiredAcks, DefaultProducerRequiredAcks),
			Compression:  strings.ToLower(getEnvStr(EnvProducerCompression, DefaultProducerCompression)),
		},
		Consumer: ConsumerConfig{
			StartOffset:       int64(getEnvInt(EnvConsumerStartOffset, DefaultConsumerStartOffset)),
			MinBytes:          getEnvInt(EnvConsumerMinBytes, DefaultConsumerMinBytes),
			MaxBytes:          getEnvInt(EnvConsumerMaxBytes, DefaultConsumerMaxBytes),
			MaxWait:           getEnvDuration(EnvConsumerMaxWait, DefaultConsumerMaxWait),
			CommitInterval:    getEnvDuration(EnvConsumerCommitInterval, DefaultConsumerCommitInterval),
			HeartbeatInterval: getEnvDuration(EnvConsumerHeartbeat, DefaultConsumerHeartbeat),
			SessionTimeout:    getEnvDuration(EnvConsumerSessionTimeout, DefaultConsumerSessionTimeout),
			RebalanceTimeout:  getEnvDuration(EnvConsumerRebalanceTimeout, DefaultConsumerRebalanceTimeout),
			MaxRetries:        getEnvInt(EnvConsumerMaxRetries, DefaultConsumerMaxRetries),
			RetryBackoff:      getEnvDuration(EnvConsumerRetryBackoff, DefaultConsumerRetryBackoff),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(cfg.Brokers) == 0 {
		add("At least one Kafka broker is required")
	}
	for i, broker := range cfg.Brokers {
		if strings.TrimSpace(broker) == "" {
			add("Broker %d cannot be empty", i)
		}
	}

	p := cfg.Producer
	if p.MaxAttempts <= 0 {
		add("Producer.MaxAttempts must be positive, got: %d", p.MaxAttempts)
	}
	if p.BatchTimeout <= 0 {
		add("Producer.BatchTimeout must be positive, got: %s", p.BatchTimeout)
	}
	if !validAcks[p.RequiredAcks] {
		add("Producer.RequiredAcks must be -1, 0, or 1, got: %d", p.RequiredAcks)
	}
	if !contains(validCompressions, p.Compression) {
		add("Producer.Compression must be one of [%s], got: %s", strings.Join(validCompressions, ", "), p.Compression)
	}

	c := cfg.Consumer
	if c.StartOffset != -1 && c.StartOffset != -2 {
		add("Consumer.StartOffset must be -1 (newest) or -2 (oldest), got: %d", c.StartOffset)
	}
	if c.MinBytes <= 0 || c.MaxBytes < c.MinBytes {
		add("Consumer.MinBytes (%d) must be positive and <= Consumer.MaxBytes (%d)", c.MinBytes, c.MaxBytes)
	}
	if c.MaxWait <= 0 {
		add("Consumer.MaxWait must be positive, got: %s", c.MaxWait)
	}
	if c.CommitInterval < 0 {
		add("Consumer.CommitInterval cannot be negative, got: %s", c.CommitInterval)
	}
	if c.SessionTimeout <= c.HeartbeatInterval {
		add("Consumer.SessionTimeout (%s) must exceed Consumer.HeartbeatInterval (%s)", c.SessionTimeout, c.HeartbeatInterval)
	}
	if c.RebalanceTimeout <= 0 {
		add("Consumer.RebalanceTimeout must be positive, got: %s", c.RebalanceTimeout)
	}
	if c.MaxRetries < 0 || c.RetryBackoff < 0 {
		add("Consumer.MaxRetries (%d) and Consumer.RetryBackoff (%s) cannot be negative", c.MaxRetries, c.RetryBackoff)
	}

	if len(problems) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("Kafka configuration validation failed:\n")
	for i, problem := range problems {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, problem)
	}
	return fmt.Errorf("%s", b.String())
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func getEnvStr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnvStr(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnvStr(key, ""))
	if err != nil {
		return fallback
	}
	return d
}
