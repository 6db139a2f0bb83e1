package consumer

import (
	"context"
	"errors"
	"testing"

	"flipfit/internal/notifications/service"
	apperrors "flipfit/pkg/errors"
	"flipfit/pkg/kafka"
	"flipfit/pkg/logger"
	"flipfit/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	service.NotificationService
	recorded []model.NotificationEvent
	err      error
}

func (s *stubService) Record(ctx context.Context, event model.NotificationEvent) error {
	if s.err != nil {
		return s.err
	}
	s.recorded = append(s.recorded, event)
	return nil
}

func message(t *testing.T, key string, value any) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().WithKey(key).WithValue(value).WithEventID("NOTFROMHDR").Build()
	require.NoError(t, err)
	return msg
}

func TestEventHandler_Stores(t *testing.T) {
	svc := &stubService{}
	handle := NewEventHandler(svc, logger.Discard())

	err := handle(context.Background(), message(t, "C1", model.NotificationEvent{
		Event: model.EventBookingCancelled,
		Title: "Booking Cancelled",
		Type:  model.NotificationCancellation,
	}))
	require.NoError(t, err)
	require.Len(t, svc.recorded, 1)

	got := svc.recorded[0]
	assert.Equal(t, "NOTFROMHDR", got.ID, "event id falls back to the header")
	assert.Equal(t, "C1", got.UserID, "user falls back to the message key")
}

func TestEventHandler_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		msg       kafka.Message
		recordErr error
		want      kafka.ErrorType
	}{
		{
			name: "undecodable payload",
			msg:  kafka.Message{Key: "C1", Value: []byte("{not json"), Headers: map[string]string{}},
			want: kafka.ErrorTypePermanent,
		},
		{
			name:      "invalid event",
			msg:       kafka.Message{Key: "", Value: []byte(`{"event":"PROMOTED"}`), Headers: map[string]string{}},
			recordErr: apperrors.InvalidInput("Notification user ID cannot be empty"),
			want:      kafka.ErrorTypePermanent,
		},
		{
			name:      "storage failure",
			msg:       kafka.Message{Key: "C1", Value: []byte(`{"event":"PROMOTED"}`), Headers: map[string]string{}},
			recordErr: apperrors.Internal("Failed to record notification", errors.New("no primary")),
			want:      kafka.ErrorTypeTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handle := NewEventHandler(&stubService{err: tt.recordErr}, logger.Discard())
			err := handle(context.Background(), tt.msg)
			require.Error(t, err)
			assert.Equal(t, tt.want, kafka.ClassifyError(err))
		})
	}
}
