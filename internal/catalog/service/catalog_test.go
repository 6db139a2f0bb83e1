package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	catalogerrors "flipfit/internal/catalog/errors"
	"flipfit/internal/catalog/validator"
	"flipfit/pkg/config"
	apperrors "flipfit/pkg/errors"
	"flipfit/pkg/logger"
	"flipfit/pkg/model"

	"github.com/shopspring/decimal"
)

type mockGymCenterRepository struct {
	createFunc        func(ctx context.Context, gym *model.GymCenter) error
	findByIDFunc      func(ctx context.Context, id string) (*model.GymCenter, error)
	findByCityKeyFunc func(ctx context.Context, cityKey string) ([]*model.GymCenter, error)
}

func (m *mockGymCenterRepository) Create(ctx context.Context, gym *model.GymCenter) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, gym)
	}
	return nil
}

func (m *mockGymCenterRepository) FindByID(ctx context.Context, id string) (*model.GymCenter, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, catalogerrors.ErrGymNotFound
}

func (m *mockGymCenterRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.GymCenter, error) {
	return []*model.GymCenter{}, nil
}

func (m *mockGymCenterRepository) FindByCityKey(ctx context.Context, cityKey string) ([]*model.GymCenter, error) {
	if m.findByCityKeyFunc != nil {
		return m.findByCityKeyFunc(ctx, cityKey)
	}
	return []*model.GymCenter{}, nil
}

type mockSlotRepository struct {
	createFunc           func(ctx context.Context, slot *model.Slot) error
	findByIDFunc         func(ctx context.Context, id string) (*model.Slot, error)
	findByIDsFunc        func(ctx context.Context, ids []string) ([]*model.Slot, error)
	findActiveByGymsFunc func(ctx context.Context, gymIDs []string) ([]*model.Slot, error)
	setActiveFunc        func(ctx context.Context, id string, active bool) error
}

func (m *mockSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, slot)
	}
	return nil
}

func (m *mockSlotRepository) FindByID(ctx context.Context, id string) (*model.Slot, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, catalogerrors.ErrSlotNotFound
}

func (m *mockSlotRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Slot, error) {
	if m.findByIDsFunc != nil {
		return m.findByIDsFunc(ctx, ids)
	}
	return []*model.Slot{}, nil
}

func (m *mockSlotRepository) FindActiveByGyms(ctx context.Context, gymIDs []string) ([]*model.Slot, error) {
	if m.findActiveByGymsFunc != nil {
		return m.findActiveByGymsFunc(ctx, gymIDs)
	}
	return []*model.Slot{}, nil
}

func (m *mockSlotRepository) SetActive(ctx context.Context, id string, active bool) error {
	if m.setActiveFunc != nil {
		return m.setActiveFunc(ctx, id, active)
	}
	return nil
}

func newTestService(gyms *mockGymCenterRepository, slots *mockSlotRepository) CatalogService {
	log := logger.Discard()
	cfg := &config.Config{Log: log}
	return NewCatalogService(gyms, slots, validator.NewCatalogValidator(log), cfg)
}

func TestCreateGymCenter_Sanitizes(t *testing.T) {
	var stored *model.GymCenter
	gyms := &mockGymCenterRepository{
		createFunc: func(ctx context.Context, gym *model.GymCenter) error {
			stored = gym
			return nil
		},
	}
	svc := newTestService(gyms, &mockSlotRepository{})

	gym := &model.GymCenter{
		OwnerID: " OWN1 ",
		Name:    "  Iron   Temple ",
		Address: "12  MG Road",
		City:    "  Bengaluru ",
		Phone:   "98765 43210",
		Email:   "Front@IronTemple.IN",
	}
	if err := svc.CreateGymCenter(context.Background(), gym); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("gym center was not stored")
	}
	if !strings.HasPrefix(stored.ID, model.PrefixGym) || len(stored.ID) != len(model.PrefixGym)+8 {
		t.Errorf("unexpected ID %q", stored.ID)
	}
	if stored.Name != "Iron Temple" || stored.City != "Bengaluru" || stored.CityKey != "bengaluru" {
		t.Errorf("unexpected sanitized fields: %+v", stored)
	}
	if stored.Phone != "+919876543210" {
		t.Errorf("phone = %q, want E.164", stored.Phone)
	}
	if stored.Email != "front@irontemple.in" {
		t.Errorf("email = %q", stored.Email)
	}
}

func TestCreateGymCenter_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		gym   model.GymCenter
		field string
	}{
		{"missing name", model.GymCenter{OwnerID: "O", Address: "Main St", City: "Pune"}, "Name"},
		{"missing city", model.GymCenter{OwnerID: "O", Name: "Gym", Address: "Main St"}, "City"},
		{"unparseable phone", model.GymCenter{OwnerID: "O", Name: "Gym", Address: "Main St", City: "Pune", Phone: "call me"}, "Phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			gyms := &mockGymCenterRepository{
				createFunc: func(ctx context.Context, gym *model.GymCenter) error {
					created = true
					return nil
				},
			}
			svc := newTestService(gyms, &mockSlotRepository{})

			gym := tt.gym
			err := svc.CreateGymCenter(context.Background(), &gym)
			if !apperrors.HasCode(err, apperrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := apperrors.AsAppError(err).Details[tt.field]; !ok {
				t.Errorf("expected detail for %s, got %v", tt.field, apperrors.AsAppError(err).Details)
			}
			if created {
				t.Error("invalid gym center must not be stored")
			}
		})
	}
}

func TestCreateSlot(t *testing.T) {
	knownGym := func(ctx context.Context, id string) (*model.GymCenter, error) {
		if id == "GYM00000001" {
			return &model.GymCenter{ID: id}, nil
		}
		return nil, catalogerrors.ErrGymNotFound
	}

	tests := []struct {
		name     string
		gymID    string
		slot     model.Slot
		wantCode string
	}{
		{
			name:  "valid slot",
			gymID: "GYM00000001",
			slot:  model.Slot{StartTime: "6:00", EndTime: "07:00", TotalSeats: 10, Price: decimal.RequireFromString("199.00")},
		},
		{
			name:     "unknown gym",
			gymID:    "GYM404",
			slot:     model.Slot{StartTime: "06:00", EndTime: "07:00", TotalSeats: 10},
			wantCode: apperrors.CodeNotFound,
		},
		{
			name:     "end before start",
			gymID:    "GYM00000001",
			slot:     model.Slot{StartTime: "08:00", EndTime: "07:00", TotalSeats: 10},
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "zero seats",
			gymID:    "GYM00000001",
			slot:     model.Slot{StartTime: "06:00", EndTime: "07:00"},
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "negative price",
			gymID:    "GYM00000001",
			slot:     model.Slot{StartTime: "06:00", EndTime: "07:00", TotalSeats: 5, Price: decimal.NewFromInt(-1)},
			wantCode: apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stored *model.Slot
			slots := &mockSlotRepository{
				createFunc: func(ctx context.Context, slot *model.Slot) error {
					stored = slot
					return nil
				},
			}
			svc := newTestService(&mockGymCenterRepository{findByIDFunc: knownGym}, slots)

			slot := tt.slot
			err := svc.CreateSlot(context.Background(), tt.gymID, &slot)

			if tt.wantCode != "" {
				if !apperrors.HasCode(err, tt.wantCode) {
					t.Fatalf("expected %s, got %v", tt.wantCode, err)
				}
				if stored != nil {
					t.Error("slot must not be stored on failure")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(stored.ID, model.PrefixSlot) {
				t.Errorf("unexpected slot ID %q", stored.ID)
			}
			if !stored.Active || stored.GymID != tt.gymID || stored.StartTime != "06:00" {
				t.Errorf("unexpected stored slot %+v", stored)
			}
		})
	}
}

func TestGetSlot_NotFoundKeepsSentinel(t *testing.T) {
	svc := newTestService(&mockGymCenterRepository{}, &mockSlotRepository{})

	_, err := svc.GetSlot(context.Background(), "SLT404")
	if !errors.Is(err, catalogerrors.ErrSlotNotFound) {
		t.Errorf("expected ErrSlotNotFound in chain, got %v", err)
	}
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND code, got %v", err)
	}
}

func TestGetSlot_StorageFailure(t *testing.T) {
	slots := &mockSlotRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Slot, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestService(&mockGymCenterRepository{}, slots)

	_, err := svc.GetSlot(context.Background(), "SLT1")
	if !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestListSlotsByCity_GroupsInGymOrder(t *testing.T) {
	var requestedKey string
	gyms := &mockGymCenterRepository{
		findByCityKeyFunc: func(ctx context.Context, cityKey string) ([]*model.GymCenter, error) {
			requestedKey = cityKey
			return []*model.GymCenter{
				{ID: "GYMB", Name: "Alpha Fitness", City: "Pune", Address: "1 Lane"},
				{ID: "GYMA", Name: "Zen Gym", City: "Pune", Address: "2 Lane"},
			}, nil
		},
	}
	slots := &mockSlotRepository{
		findActiveByGymsFunc: func(ctx context.Context, gymIDs []string) ([]*model.Slot, error) {
			if len(gymIDs) != 2 {
				t.Errorf("expected both gyms to be queried, got %v", gymIDs)
			}
			return []*model.Slot{
				{ID: "S1", GymID: "GYMA", StartTime: "06:00", TotalSeats: 5},
				{ID: "S2", GymID: "GYMB", StartTime: "07:00", TotalSeats: 3},
				{ID: "S3", GymID: "GYMB", StartTime: "08:00", TotalSeats: 3},
			}, nil
		},
	}
	svc := newTestService(gyms, slots)

	result, err := svc.ListSlotsByCity(context.Background(), " PUNE ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requestedKey != "pune" {
		t.Errorf("city key = %q, want pune", requestedKey)
	}

	var order []string
	for _, r := range result {
		order = append(order, r.ID)
	}
	if strings.Join(order, ",") != "S2,S3,S1" {
		t.Errorf("order = %v, want S2,S3,S1", order)
	}
	if result[0].GymName != "Alpha Fitness" || result[2].GymAddress != "2 Lane" {
		t.Errorf("gym fields not joined: %+v", result[0])
	}
}

func TestListGymCentersByCity_EmptyCity(t *testing.T) {
	svc := newTestService(&mockGymCenterRepository{}, &mockSlotRepository{})

	_, err := svc.ListGymCentersByCity(context.Background(), "   ")
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestSetSlotActive(t *testing.T) {
	inactive := false
	var gotActive *bool
	slots := &mockSlotRepository{
		setActiveFunc: func(ctx context.Context, id string, active bool) error {
			if id != "SLT1" {
				return catalogerrors.ErrSlotNotFound
			}
			gotActive = &active
			return nil
		},
		findByIDFunc: func(ctx context.Context, id string) (*model.Slot, error) {
			return &model.Slot{ID: id, Active: *gotActive}, nil
		},
	}
	svc := newTestService(&mockGymCenterRepository{}, slots)

	slot, err := svc.SetSlotActive(context.Background(), "SLT1", &model.SlotActiveUpdate{Active: &inactive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Active {
		t.Error("slot should be inactive")
	}

	if _, err := svc.SetSlotActive(context.Background(), "SLT1", &model.SlotActiveUpdate{}); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("missing active flag should fail validation, got %v", err)
	}
	if _, err := svc.SetSlotActive(context.Background(), "SLT404", &model.SlotActiveUpdate{Active: &inactive}); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("unknown slot should be NOT_FOUND, got %v", err)
	}
}
