package model

import "time"

type GymCenter struct {
	ID        string    `json:"id" bson:"_id" validate:"omitempty"`
	OwnerID   string    `json:"owner_id" bson:"owner_id" validate:"required,min=1,max=64"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Address   string    `json:"address" bson:"address" validate:"required,min=2,max=200"`
	City      string    `json:"city" bson:"city" validate:"required,min=2,max=50"`
	CityKey   string    `json:"-" bson:"city_key"`
	State     string    `json:"state,omitempty" bson:"state,omitempty" validate:"omitempty,max=50"`
	Pincode   string    `json:"pincode,omitempty" bson:"pincode,omitempty" validate:"omitempty,numeric,min=4,max=10"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
