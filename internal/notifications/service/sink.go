package service

import (
	"context"
	"time"

	"flipfit/pkg/config"
	"flipfit/pkg/kafka"
	"flipfit/pkg/logger"
	"flipfit/pkg/metrics"
	"flipfit/pkg/model"
)

const eventSource = "bookings"

// StoreSink writes events straight to the notification store.
type StoreSink struct {
	service NotificationService
	log     *logger.Logger
	timeout time.Duration
}

func NewStoreSink(service NotificationService, cfg *config.Config) *StoreSink {
	return &StoreSink{
		service: service,
		log:     cfg.Log,
		timeout: cfg.NotificationTimeout,
	}
}

// Emit never fails the caller; errors are logged and counted.
func (s *StoreSink) Emit(ctx context.Context, event model.NotificationEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.service.Record(ctx, event); err != nil {
		metrics.RecordNotification(config.NotificationTransportStore, metrics.StatusFailure)
		s.log.Warn("Failed to store notification", "event", event.Event, "user_id", event.UserID, "error", err)
		return
	}
	metrics.RecordNotification(config.NotificationTransportStore, metrics.StatusSuccess)
}

// Publisher is the part of kafka.Producer the sink needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaSink publishes events keyed by user, so each user's notifications stay ordered.
type KafkaSink struct {
	publisher Publisher
	log       *logger.Logger
	timeout   time.Duration
}

func NewKafkaSink(publisher Publisher, cfg *config.Config) *KafkaSink {
	return &KafkaSink{
		publisher: publisher,
		log:       cfg.Log,
		timeout:   cfg.NotificationTimeout,
	}
}

func (s *KafkaSink) Emit(ctx context.Context, event model.NotificationEvent) {
	msg, err := kafka.NewMessage().
		WithKey(event.UserID).
		WithValue(event).
		WithEventID(event.ID).
		WithEventType(event.Event).
		WithCorrelationID(event.BookingID).
		WithSource(eventSource).
		Build()
	if err != nil {
		metrics.RecordNotification(config.NotificationTransportKafka, metrics.StatusFailure)
		s.log.Error("Failed to build notification message", "event", event.Event, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		metrics.RecordNotification(config.NotificationTransportKafka, metrics.StatusFailure)
		s.log.Warn("Failed to publish notification", "event", event.Event, "user_id", event.UserID, "error", err)
		return
	}
	metrics.RecordNotification(config.NotificationTransportKafka, metrics.StatusSuccess)
}
