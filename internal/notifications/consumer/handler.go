// Package consumer turns notification events read from Kafka into stored notifications.
package consumer

import (
	"context"

	"flipfit/internal/notifications/service"
	apperrors "flipfit/pkg/errors"
	"flipfit/pkg/kafka"
	"flipfit/pkg/logger"
	"flipfit/pkg/model"
)

// NewEventHandler returns the message handler for the notification topic. Malformed events are
// permanent failures; storage failures are transient so the consumer retries them.
func NewEventHandler(svc service.NotificationService, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event model.NotificationEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}
		if event.ID == "" {
			event.ID = msg.GetEventID()
		}
		if event.UserID == "" {
			event.UserID = msg.Key
		}

		if err := svc.Record(ctx, event); err != nil {
			if apperrors.HasCode(err, apperrors.CodeInvalidInput) {
				return kafka.NewPermanentError("invalid notification event", err)
			}
			return kafka.NewTransientError("failed to store notification", err)
		}

		log.Debug("Notification event stored",
			"event_id", event.ID,
			"event", event.Event,
			"user_id", event.UserID,
			"correlation_id", msg.GetCorrelationID(),
		)
		return nil
	}
}
