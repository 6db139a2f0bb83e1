package model

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID          string        `json:"id" bson:"_id"`
	CustomerID  string        `json:"customer_id" bson:"customer_id"`
	SlotID      string        `json:"slot_id" bson:"slot_id"`
	BookingDate string        `json:"booking_date" bson:"booking_date"`
	Status      BookingStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

func (b *Booking) IsCancelled() bool {
	return b.Status == BookingCancelled
}

// BookingRequest is the payload accepted for both booking and waitlisting.
type BookingRequest struct {
	CustomerID string `json:"customer_id" validate:"required,min=1,max=64"`
	SlotID     string `json:"slot_id" validate:"required,min=1,max=64"`
	Date       string `json:"date" validate:"required,booking_date"`
}

// BookingDetails is a booking joined with its slot times and gym name.
type BookingDetails struct {
	Booking
	GymName   string `json:"gym_name"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}
