// Package validation holds the validator rules shared by the catalog and booking domains.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"flipfit/pkg/model"

	"github.com/go-playground/validator/v10"
)

const (
	TagTimeOfDay   = "time_of_day"
	TagBookingDate = "booking_date"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details flattens the errors into a field -> message map for API responses.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

// New returns a validator with the time_of_day and booking_date rules registered.
func New() (*validator.Validate, error) {
	v := validator.New()

	if err := v.RegisterValidation(TagTimeOfDay, validateTimeOfDay); err != nil {
		return nil, fmt.Errorf("register %s: %w", TagTimeOfDay, err)
	}
	if err := v.RegisterValidation(TagBookingDate, validateBookingDate); err != nil {
		return nil, fmt.Errorf("register %s: %w", TagBookingDate, err)
	}

	return v, nil
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := model.SecondsOfDay(fl.Field().String())
	return err == nil
}

func validateBookingDate(fl validator.FieldLevel) bool {
	return model.IsValidDate(fl.Field().String())
}

// Struct validates s and translates failures into ValidationErrors.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return Translate(validationErrs)
	}
	return err
}

func Translate(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +919876543210)", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "numeric":
			message = fmt.Sprintf("%s must contain digits only", err.Field())
		case TagTimeOfDay:
			message = fmt.Sprintf("%s must be a time of day in HH:MM format", err.Field())
		case TagBookingDate:
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		}

		out = append(out, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return out
}

// DetailsOf returns per-field details when err is a ValidationErrors, or the raw message otherwise.
func DetailsOf(err error) map[string]any {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Details()
	}
	return map[string]any{"error": err.Error()}
}
