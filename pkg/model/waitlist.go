package model

import "time"

type WaitlistStatus string

const (
	WaitlistWaiting   WaitlistStatus = "WAITING"
	WaitlistAllocated WaitlistStatus = "ALLOCATED"
)

type WaitlistEntry struct {
	ID            string         `json:"id" bson:"_id"`
	CustomerID    string         `json:"customer_id" bson:"customer_id"`
	SlotID        string         `json:"slot_id" bson:"slot_id"`
	RequestedDate string         `json:"requested_date" bson:"requested_date"`
	Status        WaitlistStatus `json:"status" bson:"status"`
	Position      int64          `json:"position" bson:"position"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
	AllocatedAt   *time.Time     `json:"allocated_at,omitempty" bson:"allocated_at,omitempty"`
}
