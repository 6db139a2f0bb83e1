package service

import (
	"context"
	"sort"

	bookingserrors "flipfit/internal/bookings/errors"
	apperrors "flipfit/pkg/errors"
	"flipfit/pkg/model"
	"flipfit/pkg/sanitizer"
	"flipfit/pkg/validation"
)

const unknownGymName = "Unknown"

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	bookingID = sanitizer.NormalizeID(bookingID)
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	return s.findBooking(ctx, bookingID)
}

// ViewMyBookings lists every booking of the customer, latest date and start time first.
func (s *bookingService) ViewMyBookings(ctx context.Context, customerID string) ([]*model.BookingDetails, error) {
	customerID = sanitizer.NormalizeID(customerID)
	if customerID == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}

	bookings, err := s.bookings.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, bookingserrors.StorageError("booking lookup", err)
	}

	details, err := s.withDetails(ctx, bookings)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(details, func(i, j int) bool {
		if details[i].BookingDate != details[j].BookingDate {
			return details[i].BookingDate > details[j].BookingDate
		}
		return details[i].StartTime > details[j].StartTime
	})
	return details, nil
}

// ViewPlanByDate lists the customer's bookings on date in start-time order. An empty date means today.
func (s *bookingService) ViewPlanByDate(ctx context.Context, customerID, date string) ([]*model.BookingDetails, error) {
	customerID = sanitizer.NormalizeID(customerID)
	if customerID == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}
	date = s.dateOrToday(date)

	bookings, err := s.bookings.FindByCustomerAndDate(ctx, customerID, date)
	if err != nil {
		return nil, bookingserrors.StorageError("booking lookup", err)
	}

	details, err := s.withDetails(ctx, bookings)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].StartTime < details[j].StartTime
	})
	return details, nil
}

func (s *bookingService) ViewWaitlist(ctx context.Context, customerID string) ([]*model.WaitlistEntry, error) {
	customerID = sanitizer.NormalizeID(customerID)
	if customerID == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}

	entries, err := s.waitlist.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, bookingserrors.StorageError("waitlist lookup", err)
	}
	return entries, nil
}

// ViewAvailableSlots returns the gym's active slots. With a date, each slot carries that
// date's booked and available seats; without one the templates are returned as-is.
func (s *bookingService) ViewAvailableSlots(ctx context.Context, gymID, date string) ([]*model.SlotAvailability, error) {
	slots, err := s.catalog.ListSlotsForGym(ctx, gymID)
	if err != nil {
		return nil, err
	}

	gyms, err := s.catalog.GetGymCenters(ctx, []string{sanitizer.NormalizeID(gymID)})
	if err != nil {
		return nil, err
	}

	result := make([]*model.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		view := &model.SlotAvailability{Slot: *slot, AvailableSeats: slot.TotalSeats}
		if gym, ok := gyms[slot.GymID]; ok {
			view.GymName = gym.Name
			view.City = gym.City
			view.GymAddress = gym.Address
		}
		result = append(result, view)
	}

	if date == "" {
		return result, nil
	}
	if err := s.fillOccupancy(ctx, result, date); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *bookingService) ViewAvailableSlotsByCity(ctx context.Context, city, date string) ([]*model.SlotAvailability, error) {
	result, err := s.catalog.ListSlotsByCity(ctx, city)
	if err != nil {
		return nil, err
	}

	if date == "" {
		return result, nil
	}
	if err := s.fillOccupancy(ctx, result, date); err != nil {
		return nil, err
	}
	return result, nil
}

// FindNearestAvailableSlot picks the gym's slot with free seats on date whose start time is
// closest to preferredTime. Ties keep catalog order, so the earlier slot wins.
func (s *bookingService) FindNearestAvailableSlot(ctx context.Context, gymID, preferredTime, date string) (*model.SlotAvailability, error) {
	preferredTime = sanitizer.NormalizeTimeOfDay(preferredTime)
	if err := s.validator.ValidateTimeOfDay(preferredTime); err != nil {
		return nil, apperrors.Validation("Invalid preferred time", validation.DetailsOf(err))
	}
	preferred, _ := model.SecondsOfDay(preferredTime)

	slots, err := s.ViewAvailableSlots(ctx, gymID, s.dateOrToday(date))
	if err != nil {
		return nil, err
	}

	var nearest *model.SlotAvailability
	bestDiff := -1
	for _, slot := range slots {
		if slot.AvailableSeats <= 0 {
			continue
		}
		start, err := slot.StartSecond()
		if err != nil {
			s.cfg.Log.Warn("Skipping slot with unparseable start time", "slot_id", slot.ID, "start_time", slot.StartTime)
			continue
		}
		diff := start - preferred
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			nearest = slot
			bestDiff = diff
		}
	}

	if nearest == nil {
		return nil, bookingserrors.NoAvailableSlot(gymID)
	}
	return nearest, nil
}

func (s *bookingService) fillOccupancy(ctx context.Context, views []*model.SlotAvailability, date string) error {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}

	counts, err := s.bookings.CountConfirmedBySlots(ctx, ids, date)
	if err != nil {
		return bookingserrors.StorageError("availability lookup", err)
	}

	for _, v := range views {
		v.BookingDate = date
		v.BookedSeats = counts[v.ID]
		v.AvailableSeats = max(v.TotalSeats-v.BookedSeats, 0)
	}
	return nil
}

// withDetails joins bookings with slot times and gym names. Bookings whose slot or gym is gone
// are reported with the gym name "Unknown".
func (s *bookingService) withDetails(ctx context.Context, bookings []*model.Booking) ([]*model.BookingDetails, error) {
	details := make([]*model.BookingDetails, 0, len(bookings))
	if len(bookings) == 0 {
		return details, nil
	}

	slotIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		slotIDs = append(slotIDs, b.SlotID)
	}
	slots, err := s.catalog.GetSlots(ctx, slotIDs)
	if err != nil {
		return nil, err
	}

	gymIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		gymIDs = append(gymIDs, slot.GymID)
	}
	gyms, err := s.catalog.GetGymCenters(ctx, gymIDs)
	if err != nil {
		return nil, err
	}

	for _, b := range bookings {
		d := &model.BookingDetails{Booking: *b, GymName: unknownGymName}
		if slot, ok := slots[b.SlotID]; ok {
			d.StartTime = slot.StartTime
			d.EndTime = slot.EndTime
			if gym, ok := gyms[slot.GymID]; ok {
				d.GymName = gym.Name
			}
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *bookingService) dateOrToday(date string) string {
	if date == "" {
		return s.now().UTC().Format(model.DateLayout)
	}
	return date
}
