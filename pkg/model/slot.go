package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Slot is a recurring daily time window at a gym. Capacity applies to every date independently.
type Slot struct {
	ID         string          `json:"id" bson:"_id"`
	GymID      string          `json:"gym_id" bson:"gym_id" validate:"required"`
	StartTime  string          `json:"start_time" bson:"start_time" validate:"required,time_of_day"`
	EndTime    string          `json:"end_time" bson:"end_time" validate:"required,time_of_day"`
	TotalSeats int             `json:"total_seats" bson:"total_seats" validate:"required,min=1,max=500"`
	Price      decimal.Decimal `json:"price" bson:"price"`
	Active     bool            `json:"active" bson:"active"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
}

// Overlaps reports whether two slots share any instant, endpoints included.
func (s *Slot) Overlaps(other *Slot) bool {
	aStart, aEnd, err := s.bounds()
	if err != nil {
		return false
	}
	bStart, bEnd, err := other.bounds()
	if err != nil {
		return false
	}
	return !(aEnd < bStart || aStart > bEnd)
}

// StartSecond returns the start time as seconds since midnight.
func (s *Slot) StartSecond() (int, error) {
	return SecondsOfDay(s.StartTime)
}

func (s *Slot) bounds() (int, int, error) {
	start, err := SecondsOfDay(s.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := SecondsOfDay(s.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// SlotAvailability is a slot joined with its gym and the occupancy for one date.
type SlotAvailability struct {
	Slot
	GymName        string `json:"gym_name,omitempty"`
	City           string `json:"city,omitempty"`
	GymAddress     string `json:"gym_address,omitempty"`
	BookingDate    string `json:"booking_date,omitempty"`
	BookedSeats    int    `json:"booked_seats"`
	AvailableSeats int    `json:"available_seats"`
}

type SlotActiveUpdate struct {
	Active *bool `json:"active" validate:"required"`
}
