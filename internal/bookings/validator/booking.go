package validator

import (
	"flipfit/pkg/logger"
	"flipfit/pkg/model"
	"flipfit/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to register booking validation rules", "error", err)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// ValidateRequest checks a booking or waitlist request. Past dates are allowed.
func (v *BookingValidator) ValidateRequest(req *model.BookingRequest) error {
	return validation.Struct(v.validate, req)
}

// ValidateTimeOfDay checks a preferred start time such as "07:30".
func (v *BookingValidator) ValidateTimeOfDay(value string) error {
	if err := v.validate.Var(value, "required,"+validation.TagTimeOfDay); err != nil {
		return validation.ValidationErrors{{
			Field:   "time",
			Message: "time must be a time of day in HH:MM format",
		}}
	}
	return nil
}
