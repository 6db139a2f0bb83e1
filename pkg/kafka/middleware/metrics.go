package kafka_middleware

import (
	"context"
	"time"

	"flipfit/pkg/kafka"
	"flipfit/pkg/metrics"
)

const (
	directionProduce = "produce"
	directionConsume = "consume"
)

func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.RecordKafka(directionProduce, msg.Topic, status(err), time.Since(start).Seconds())
		return err
	}
}

func MetricsConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.RecordKafka(directionConsume, msg.Topic, status(err), time.Since(start).Seconds())
		return err
	}
}

func status(err error) string {
	if err != nil {
		return metrics.StatusFailure
	}
	return metrics.StatusSuccess
}
