package service

import (
	"context"
	"errors"
	"net/http"

	catalogerrors "flipfit/internal/catalog/errors"
	"flipfit/internal/catalog/repository"
	"flipfit/internal/catalog/validator"
	"flipfit/pkg/config"
	apperrors "flipfit/pkg/errors"
	"flipfit/pkg/model"
	"flipfit/pkg/sanitizer"
	"flipfit/pkg/validation"
)

type CatalogService interface {
	GetSlot(ctx context.Context, slotID string) (*model.Slot, error)
	GetSlots(ctx context.Context, slotIDs []string) (map[string]*model.Slot, error)
	GetGymCenters(ctx context.Context, gymIDs []string) (map[string]*model.GymCenter, error)
	ListSlotsForGym(ctx context.Context, gymID string) ([]*model.Slot, error)
	ListSlotsByCity(ctx context.Context, city string) ([]*model.SlotAvailability, error)
	ListGymCentersByCity(ctx context.Context, city string) ([]*model.GymCenter, error)
	CreateGymCenter(ctx context.Context, gym *model.GymCenter) error
	CreateSlot(ctx context.Context, gymID string, slot *model.Slot) error
	SetSlotActive(ctx context.Context, slotID string, update *model.SlotActiveUpdate) (*model.Slot, error)
}

type catalogService struct {
	gyms      repository.GymCenterRepository
	slots     repository.SlotRepository
	validator *validator.CatalogValidator
	cfg       *config.Config
}

func NewCatalogService(
	gyms repository.GymCenterRepository,
	slots repository.SlotRepository,
	validator *validator.CatalogValidator,
	cfg *config.Config,
) CatalogService {
	return &catalogService{
		gyms:      gyms,
		slots:     slots,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *catalogService) GetSlot(ctx context.Context, slotID string) (*model.Slot, error) {
	slotID = sanitizer.NormalizeID(slotID)
	if slotID == "" {
		return nil, apperrors.InvalidInput("Slot ID cannot be empty")
	}

	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrSlotNotFound) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "Slot not found", http.StatusNotFound).WithDetail("id", slotID)
		}
		return nil, apperrors.Internal("Failed to retrieve slot", err)
	}
	return slot, nil
}

// GetSlots returns the slots found among slotIDs keyed by ID. Missing IDs are simply absent.
func (s *catalogService) GetSlots(ctx context.Context, slotIDs []string) (map[string]*model.Slot, error) {
	slots, err := s.slots.FindByIDs(ctx, dedupe(slotIDs))
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve slots", err)
	}

	byID := make(map[string]*model.Slot, len(slots))
	for _, slot := range slots {
		byID[slot.ID] = slot
	}
	return byID, nil
}

func (s *catalogService) GetGymCenters(ctx context.Context, gymIDs []string) (map[string]*model.GymCenter, error) {
	gyms, err := s.gyms.FindByIDs(ctx, dedupe(gymIDs))
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve gym centers", err)
	}

	byID := make(map[string]*model.GymCenter, len(gyms))
	for _, gym := range gyms {
		byID[gym.ID] = gym
	}
	return byID, nil
}

// ListSlotsForGym returns the gym's active slots ordered by start time. An unknown gym has no slots.
func (s *catalogService) ListSlotsForGym(ctx context.Context, gymID string) ([]*model.Slot, error) {
	gymID = sanitizer.NormalizeID(gymID)
	if gymID == "" {
		return nil, apperrors.InvalidInput("Gym ID cannot be empty")
	}

	slots, err := s.slots.FindActiveByGyms(ctx, []string{gymID})
	if err != nil {
		s.cfg.Log.Error("Failed to list gym slots", "gym_id", gymID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve slots", err)
	}
	return slots, nil
}

// ListSlotsByCity joins every active slot in the city with its gym, grouped in gym order.
func (s *catalogService) ListSlotsByCity(ctx context.Context, city string) ([]*model.SlotAvailability, error) {
	gyms, err := s.ListGymCentersByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	if len(gyms) == 0 {
		return []*model.SlotAvailability{}, nil
	}

	gymIDs := make([]string, 0, len(gyms))
	for _, gym := range gyms {
		gymIDs = append(gymIDs, gym.ID)
	}

	slots, err := s.slots.FindActiveByGyms(ctx, gymIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to list city slots", "city", city, "error", err)
		return nil, apperrors.Internal("Failed to retrieve slots", err)
	}

	byGym := make(map[string][]*model.Slot, len(gyms))
	for _, slot := range slots {
		byGym[slot.GymID] = append(byGym[slot.GymID], slot)
	}

	result := make([]*model.SlotAvailability, 0, len(slots))
	for _, gym := range gyms {
		for _, slot := range byGym[gym.ID] {
			result = append(result, &model.SlotAvailability{
				Slot:           *slot,
				GymName:        gym.Name,
				City:           gym.City,
				GymAddress:     gym.Address,
				AvailableSeats: slot.TotalSeats,
			})
		}
	}
	return result, nil
}

func (s *catalogService) ListGymCentersByCity(ctx context.Context, city string) ([]*model.GymCenter, error) {
	key := sanitizer.CityKey(city)
	if key == "" {
		return nil, apperrors.InvalidInput("City cannot be empty")
	}

	gyms, err := s.gyms.FindByCityKey(ctx, key)
	if err != nil {
		s.cfg.Log.Error("Failed to list gym centers", "city", city, "error", err)
		return nil, apperrors.Internal("Failed to retrieve gym centers", err)
	}
	return gyms, nil
}

func (s *catalogService) CreateGymCenter(ctx context.Context, gym *model.GymCenter) error {
	s.sanitizeGym(gym)
	gym.ID = model.NewID(model.PrefixGym)

	if err := s.validator.ValidateGymCenter(gym); err != nil {
		s.cfg.Log.Warn("Gym center validation failed",
			"name", gym.Name,
			"city", gym.City,
			"error", err,
		)
		return apperrors.Validation("Gym center validation failed", validation.DetailsOf(err))
	}

	if err := s.gyms.Create(ctx, gym); err != nil {
		if errors.Is(err, catalogerrors.ErrDuplicateEntry) {
			return apperrors.Conflict("Gym center already exists").WithDetail("id", gym.ID)
		}
		s.cfg.Log.Error("Failed to create gym center", "error", err)
		return apperrors.Internal("Failed to create gym center", err)
	}

	s.cfg.Log.Info("Gym center created",
		"id", gym.ID,
		"name", gym.Name,
		"city", gym.City,
	)
	return nil
}

// CreateSlot adds an active slot template to an existing gym.
func (s *catalogService) CreateSlot(ctx context.Context, gymID string, slot *model.Slot) error {
	slot.GymID = sanitizer.NormalizeID(gymID)
	slot.StartTime = sanitizer.NormalizeTimeOfDay(slot.StartTime)
	slot.EndTime = sanitizer.NormalizeTimeOfDay(slot.EndTime)
	slot.Active = true
	slot.ID = model.NewID(model.PrefixSlot)

	if err := s.validator.ValidateSlot(slot); err != nil {
		s.cfg.Log.Warn("Slot validation failed", "gym_id", slot.GymID, "error", err)
		return apperrors.Validation("Slot validation failed", validation.DetailsOf(err))
	}

	if _, err := s.gyms.FindByID(ctx, slot.GymID); err != nil {
		if errors.Is(err, catalogerrors.ErrGymNotFound) {
			return apperrors.NotFoundWithID("Gym center", slot.GymID)
		}
		return apperrors.Internal("Failed to retrieve gym center", err)
	}

	if err := s.slots.Create(ctx, slot); err != nil {
		if errors.Is(err, catalogerrors.ErrDuplicateEntry) {
			return apperrors.Conflict("Slot already exists").WithDetail("id", slot.ID)
		}
		s.cfg.Log.Error("Failed to create slot", "gym_id", slot.GymID, "error", err)
		return apperrors.Internal("Failed to create slot", err)
	}

	s.cfg.Log.Info("Slot created",
		"id", slot.ID,
		"gym_id", slot.GymID,
		"start_time", slot.StartTime,
		"end_time", slot.EndTime,
		"total_seats", slot.TotalSeats,
	)
	return nil
}

// SetSlotActive toggles a slot. Existing bookings are left as they are.
func (s *catalogService) SetSlotActive(ctx context.Context, slotID string, update *model.SlotActiveUpdate) (*model.Slot, error) {
	slotID = sanitizer.NormalizeID(slotID)
	if slotID == "" {
		return nil, apperrors.InvalidInput("Slot ID cannot be empty")
	}
	if err := s.validator.ValidateActiveUpdate(update); err != nil {
		return nil, apperrors.Validation("Invalid slot update", validation.DetailsOf(err))
	}

	if err := s.slots.SetActive(ctx, slotID, *update.Active); err != nil {
		if errors.Is(err, catalogerrors.ErrSlotNotFound) {
			return nil, apperrors.NotFoundWithID("Slot", slotID)
		}
		return nil, apperrors.Internal("Failed to update slot", err)
	}

	s.cfg.Log.Info("Slot activity changed", "id", slotID, "active", *update.Active)
	return s.GetSlot(ctx, slotID)
}

func (s *catalogService) sanitizeGym(gym *model.GymCenter) {
	gym.OwnerID = sanitizer.NormalizeID(gym.OwnerID)
	gym.Name = sanitizer.NormalizeName(gym.Name)
	gym.Address = sanitizer.TrimAndNormalize(gym.Address)
	gym.City = sanitizer.NormalizeCity(gym.City)
	gym.CityKey = sanitizer.CityKey(gym.City)
	gym.State = sanitizer.TrimAndNormalize(gym.State)
	gym.Pincode = sanitizer.TrimAndNormalize(gym.Pincode)
	gym.Email = sanitizer.NormalizeEmail(gym.Email)
	if gym.Phone != "" {
		normalized := sanitizer.NormalizePhone(gym.Phone)
		if normalized == "" {
			normalized = "invalid_phone"
		}
		gym.Phone = normalized
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
