package kafka_config

import "time"

const DefaultClientID = "flipfit"

// Producer: notifications are small and keyed per customer.
const (
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequiredAcks = -1
	DefaultProducerCompression  = "snappy"
)

// Consumer: start from the oldest offset so a fresh group replays every pending notification.
const (
	DefaultConsumerStartOffset      = -2
	DefaultConsumerMinBytes         = 1
	DefaultConsumerMaxBytes         = 1 << 20
	DefaultConsumerMaxWait          = 500 * time.Millisecond
	DefaultConsumerCommitInterval   = 0
	DefaultConsumerHeartbeat        = 3 * time.Second
	DefaultConsumerSessionTimeout   = 10 * time.Second
	DefaultConsumerRebalanceTimeout = 30 * time.Second
	DefaultConsumerMaxRetries       = 3
	DefaultConsumerRetryBackoff     = 250 * time.Millisecond
)
