package model

import "time"

type NotificationType string

const (
	NotificationBooking      NotificationType = "BOOKING"
	NotificationCancellation NotificationType = "CANCELLATION"
	NotificationPromotion    NotificationType = "PROMOTION"
	NotificationGeneral      NotificationType = "GENERAL"
)

// Event names carried on the notification stream.
const (
	EventBookingConfirmed = "BOOKING_CONFIRMED"
	EventBookingCancelled = "BOOKING_CANCELLED"
	EventPromoted         = "PROMOTED"
	EventWaitlisted       = "WAITLISTED"
)

type Notification struct {
	ID        string           `json:"id" bson:"_id"`
	UserID    string           `json:"user_id" bson:"user_id"`
	Title     string           `json:"title" bson:"title"`
	Message   string           `json:"message" bson:"message"`
	Type      NotificationType `json:"type" bson:"type"`
	Event     string           `json:"event,omitempty" bson:"event,omitempty"`
	Read      bool             `json:"read" bson:"read"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// NotificationEvent is what the booking core hands to a notification sink.
type NotificationEvent struct {
	ID         string           `json:"id"`
	Event      string           `json:"event"`
	UserID     string           `json:"user_id"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Type       NotificationType `json:"type"`
	BookingID  string           `json:"booking_id,omitempty"`
	SlotID     string           `json:"slot_id,omitempty"`
	Date       string           `json:"date,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func (e NotificationEvent) ToNotification() *Notification {
	return &Notification{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Message:   e.Message,
		Type:      e.Type,
		Event:     e.Event,
		CreatedAt: e.OccurredAt,
	}
}
