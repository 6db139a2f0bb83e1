package validator

import (
	"flipfit/pkg/logger"
	"flipfit/pkg/model"
	"flipfit/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type CatalogValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCatalogValidator(log *logger.Logger) *CatalogValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to register catalog validation rules", "error", err)
	}

	log.Info("Catalog validator initialized successfully")

	return &CatalogValidator{
		validate: v,
		logger:   log,
	}
}

func (v *CatalogValidator) ValidateGymCenter(gym *model.GymCenter) error {
	return validation.Struct(v.validate, gym)
}

func (v *CatalogValidator) ValidateSlot(slot *model.Slot) error {
	if err := validation.Struct(v.validate, slot); err != nil {
		return err
	}

	start, _ := model.SecondsOfDay(slot.StartTime)
	end, _ := model.SecondsOfDay(slot.EndTime)
	if end <= start {
		return validation.ValidationErrors{{
			Field:   "EndTime",
			Message: "end_time must be after start_time",
		}}
	}

	if slot.Price.IsNegative() {
		return validation.ValidationErrors{{
			Field:   "Price",
			Message: "price cannot be negative",
		}}
	}

	return nil
}

func (v *CatalogValidator) ValidateActiveUpdate(update *model.SlotActiveUpdate) error {
	return validation.Struct(v.validate, update)
}
