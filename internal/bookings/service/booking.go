package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "flipfit/internal/bookings/errors"
	"flipfit/internal/bookings/repository"
	"flipfit/internal/bookings/validator"
	catalogerrors "flipfit/internal/catalog/errors"
	"flipfit/pkg/config"
	apperrors "flipfit/pkg/errors"
	"flipfit/pkg/lock"
	"flipfit/pkg/metrics"
	"flipfit/pkg/model"
	"flipfit/pkg/sanitizer"
	"flipfit/pkg/validation"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotCatalog is the read side of the slot catalog the booking core depends on.
type SlotCatalog interface {
	GetSlot(ctx context.Context, slotID string) (*model.Slot, error)
	GetSlots(ctx context.Context, slotIDs []string) (map[string]*model.Slot, error)
	GetGymCenters(ctx context.Context, gymIDs []string) (map[string]*model.GymCenter, error)
	ListSlotsForGym(ctx context.Context, gymID string) ([]*model.Slot, error)
	ListSlotsByCity(ctx context.Context, city string) ([]*model.SlotAvailability, error)
}

// NotificationSink receives booking lifecycle events. Delivery is best-effort.
type NotificationSink interface {
	Emit(ctx context.Context, event model.NotificationEvent)
}

type BookingService interface {
	BookSlot(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (bool, error)
	AddToWaitList(ctx context.Context, req *model.BookingRequest) (bool, error)
	GetBooking(ctx context.Context, bookingID string) (*model.Booking, error)
	ViewMyBookings(ctx context.Context, customerID string) ([]*model.BookingDetails, error)
	ViewPlanByDate(ctx context.Context, customerID, date string) ([]*model.BookingDetails, error)
	ViewWaitlist(ctx context.Context, customerID string) ([]*model.WaitlistEntry, error)
	ViewAvailableSlots(ctx context.Context, gymID, date string) ([]*model.SlotAvailability, error)
	ViewAvailableSlotsByCity(ctx context.Context, city, date string) ([]*model.SlotAvailability, error)
	FindNearestAvailableSlot(ctx context.Context, gymID, preferredTime, date string) (*model.SlotAvailability, error)
}

type bookingService struct {
	bookings  repository.BookingRepository
	waitlist  repository.WaitlistRepository
	catalog   SlotCatalog
	sink      NotificationSink
	locks     *slotLocks
	validator *validator.BookingValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	bookings repository.BookingRepository,
	waitlist repository.WaitlistRepository,
	catalog SlotCatalog,
	sink NotificationSink,
	locker lock.Locker,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		bookings: bookings,
		waitlist: waitlist,
		catalog:  catalog,
		sink:     sink,
		locks: &slotLocks{
			locker:  locker,
			backend: cfg.LockBackend,
			timeout: cfg.LockAcquireTimeout,
		},
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

type slotDate struct {
	slotID string
	date   string
}

func (s *bookingService) BookSlot(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.prepareRequest(req); err != nil {
		metrics.RecordBooking(metrics.OutcomeRejected)
		return nil, err
	}

	release, err := s.locks.acquire(ctx, req.SlotID, req.Date)
	if err != nil {
		metrics.RecordBooking(metrics.OutcomeFailed)
		return nil, err
	}
	defer release()

	return s.bookLocked(ctx, req.CustomerID, req.SlotID, req.Date)
}

// bookLocked runs the booking pipeline. The caller holds the (slotID, date) lock.
func (s *bookingService) bookLocked(ctx context.Context, customerID, slotID, date string) (*model.Booking, error) {
	slot, err := s.resolveSlot(ctx, slotID)
	if err != nil {
		metrics.RecordBooking(metrics.OutcomeRejected)
		return nil, err
	}
	if !slot.Active {
		metrics.RecordBooking(metrics.OutcomeRejected)
		return nil, bookingserrors.SlotInactive(slotID)
	}

	existing, err := s.bookings.FindByCustomerAndDate(ctx, customerID, date)
	if err != nil {
		metrics.RecordBooking(metrics.OutcomeFailed)
		return nil, bookingserrors.StorageError("conflict detection", err)
	}

	var reusable *model.Booking
	var candidates []*model.Booking
	for _, b := range existing {
		switch {
		case b.SlotID == slot.ID && !b.IsCancelled():
			s.cfg.Log.Info("Customer already holds this slot",
				"booking_id", b.ID,
				"customer_id", customerID,
				"slot_id", slotID,
				"date", date,
			)
			metrics.RecordBooking(metrics.OutcomeExisting)
			return b, nil
		case b.SlotID == slot.ID:
			reusable = b
		case !b.IsCancelled():
			candidates = append(candidates, b)
		}
	}

	if err := s.ensureAvailable(ctx, slot, date); err != nil {
		recordBookingFailure(err)
		return nil, err
	}

	if err := s.resolveConflicts(ctx, slot, candidates); err != nil {
		metrics.RecordBooking(metrics.OutcomeFailed)
		return nil, err
	}

	var booking *model.Booking
	commit := func(ctx context.Context) error {
		if err := s.ensureAvailable(ctx, slot, date); err != nil {
			return err
		}

		if reusable != nil {
			if err := s.bookings.Reuse(ctx, reusable.ID); err != nil {
				return bookingserrors.StorageError("booking reuse", err)
			}
			reused := *reusable
			reused.Status = model.BookingConfirmed
			reused.UpdatedAt = s.now().UTC()
			booking = &reused
			return nil
		}

		created := &model.Booking{
			ID:          model.NewID(model.PrefixBooking),
			CustomerID:  customerID,
			SlotID:      slot.ID,
			BookingDate: date,
			Status:      model.BookingConfirmed,
		}
		if err := s.bookings.Create(ctx, created); err != nil {
			return bookingserrors.StorageError("booking insert", err)
		}
		booking = created
		return nil
	}

	if err := s.inTransaction(ctx, commit); err != nil {
		recordBookingFailure(err)
		if !apperrors.HasCode(err, bookingserrors.CodeSlotFull) {
			s.cfg.Log.Error("Failed to commit booking", "slot_id", slotID, "date", date, "error", err)
		}
		return nil, err
	}

	if reusable != nil {
		metrics.RecordBooking(metrics.OutcomeReused)
	} else {
		metrics.RecordBooking(metrics.OutcomeConfirmed)
	}

	s.cfg.Log.Info("Booking confirmed",
		"id", booking.ID,
		"customer_id", customerID,
		"slot_id", slot.ID,
		"date", date,
		"reused", reusable != nil,
	)
	s.emit(ctx, bookingConfirmedEvent(booking, slot))

	return booking, nil
}

// resolveConflicts cancels the customer's bookings that overlap slot, without promotion.
func (s *bookingService) resolveConflicts(ctx context.Context, slot *model.Slot, candidates []*model.Booking) error {
	if len(candidates) == 0 {
		return nil
	}

	ids := make([]string, 0, len(candidates))
	for _, b := range candidates {
		ids = append(ids, b.SlotID)
	}
	slots, err := s.catalog.GetSlots(ctx, ids)
	if err != nil {
		return bookingserrors.StorageError("conflict detection", err)
	}

	for _, b := range candidates {
		other, ok := slots[b.SlotID]
		if !ok {
			s.cfg.Log.Warn("Skipping booking with unknown slot during conflict detection",
				"booking_id", b.ID,
				"slot_id", b.SlotID,
			)
			continue
		}
		if !other.Overlaps(slot) {
			continue
		}

		s.cfg.Log.Info("Cancelling overlapping booking",
			"booking_id", b.ID,
			"slot_id", b.SlotID,
			"new_slot_id", slot.ID,
			"date", b.BookingDate,
		)
		if err := s.cancelInternal(ctx, b, metrics.ReasonConflict); err != nil {
			return bookingserrors.ConflictResolutionFailed(b.ID, err)
		}
	}
	return nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	bookingID = sanitizer.NormalizeID(bookingID)
	if bookingID == "" {
		return false, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return false, err
	}
	if booking.IsCancelled() {
		return false, bookingserrors.AlreadyCancelled(bookingID)
	}

	release, err := s.locks.acquire(ctx, booking.SlotID, booking.BookingDate)
	if err != nil {
		return false, err
	}
	defer release()

	// Re-read under the lock; a concurrent cancel may have won.
	booking, err = s.findBooking(ctx, bookingID)
	if err != nil {
		return false, err
	}
	if booking.IsCancelled() {
		return false, bookingserrors.AlreadyCancelled(bookingID)
	}

	if err := s.cancelInternal(ctx, booking, metrics.ReasonCustomer); err != nil {
		return false, err
	}

	// The cancellation is committed; promotion must not depend on the caller staying connected.
	s.drainPromotions(context.WithoutCancel(ctx), []slotDate{{slotID: booking.SlotID, date: booking.BookingDate}})

	return true, nil
}

// cancelInternal marks b cancelled and emits the cancellation. Promotion is left to the caller.
func (s *bookingService) cancelInternal(ctx context.Context, b *model.Booking, reason string) error {
	if err := s.bookings.UpdateStatus(ctx, b.ID, model.BookingConfirmed, model.BookingCancelled); err != nil {
		s.cfg.Log.Error("Failed to cancel booking", "booking_id", b.ID, "error", err)
		return bookingserrors.CancellationFailed(b.ID, err)
	}
	b.Status = model.BookingCancelled
	b.UpdatedAt = s.now().UTC()

	metrics.RecordCancellation(reason)
	s.cfg.Log.Info("Booking cancelled",
		"id", b.ID,
		"customer_id", b.CustomerID,
		"slot_id", b.SlotID,
		"date", b.BookingDate,
		"reason", reason,
	)
	s.emit(ctx, bookingCancelledEvent(b))
	return nil
}

// drainPromotions promotes the FIFO head for each freed (slot, date). Every key in queue must be
// locked by the caller. Conflict cancellations during a promotion do not add keys.
func (s *bookingService) drainPromotions(ctx context.Context, queue []slotDate) {
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]

		entry, err := s.waitlist.FindFirstWaiting(ctx, key.slotID, key.date)
		if err != nil {
			metrics.RecordPromotion(metrics.StatusFailure)
			s.cfg.Log.Error("Failed to read waitlist", "slot_id", key.slotID, "date", key.date, "error", err)
			continue
		}
		if entry == nil {
			s.cfg.Log.Debug("No waitlisted customers", "slot_id", key.slotID, "date", key.date)
			continue
		}

		booking, err := s.bookLocked(ctx, entry.CustomerID, entry.SlotID, entry.RequestedDate)
		if err != nil {
			metrics.RecordPromotion(metrics.StatusFailure)
			s.cfg.Log.Warn("Waitlist promotion failed",
				"waitlist_id", entry.ID,
				"customer_id", entry.CustomerID,
				"slot_id", entry.SlotID,
				"date", entry.RequestedDate,
				"error", err,
			)
			continue
		}

		if err := s.waitlist.MarkAllocated(ctx, entry.ID); err != nil {
			metrics.RecordPromotion(metrics.StatusFailure)
			s.cfg.Log.Error("Failed to mark waitlist entry allocated",
				"waitlist_id", entry.ID,
				"booking_id", booking.ID,
				"error", err,
			)
			continue
		}

		metrics.RecordPromotion(metrics.StatusSuccess)
		s.cfg.Log.Info("Customer promoted from waitlist",
			"waitlist_id", entry.ID,
			"booking_id", booking.ID,
			"customer_id", entry.CustomerID,
			"slot_id", entry.SlotID,
			"date", entry.RequestedDate,
		)
		s.emit(ctx, promotedEvent(booking))
	}
}

// AddToWaitList enqueues the customer for a full slot. It reports false, without error, when the
// customer is already waiting, the slot is unknown, or seats are still available.
func (s *bookingService) AddToWaitList(ctx context.Context, req *model.BookingRequest) (bool, error) {
	if err := s.prepareRequest(req); err != nil {
		return false, err
	}

	release, err := s.locks.acquire(ctx, req.SlotID, req.Date)
	if err != nil {
		return false, err
	}
	defer release()

	waiting, err := s.waitlist.IsWaiting(ctx, req.CustomerID, req.SlotID, req.Date)
	if err != nil {
		return false, bookingserrors.StorageError("waitlist lookup", err)
	}
	if waiting {
		s.cfg.Log.Info("Customer already on waitlist", "customer_id", req.CustomerID, "slot_id", req.SlotID, "date", req.Date)
		return false, nil
	}

	slot, err := s.resolveSlot(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrSlotNotFound) {
			return false, nil
		}
		return false, err
	}

	available, err := s.available(ctx, slot, req.Date)
	if err != nil {
		return false, bookingserrors.StorageError("availability check", err)
	}
	if available > 0 {
		s.cfg.Log.Info("Slot has seats, waitlist not needed", "slot_id", slot.ID, "date", req.Date, "available", available)
		return false, nil
	}

	entry := &model.WaitlistEntry{
		ID:            model.NewID(model.PrefixWaitlist),
		CustomerID:    req.CustomerID,
		SlotID:        slot.ID,
		RequestedDate: req.Date,
		Status:        model.WaitlistWaiting,
	}
	if err := s.waitlist.Create(ctx, entry); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicateEntry) {
			return false, nil
		}
		return false, bookingserrors.StorageError("waitlist insert", err)
	}

	metrics.RecordWaitlistEntry()
	s.cfg.Log.Info("Customer added to waitlist",
		"id", entry.ID,
		"customer_id", entry.CustomerID,
		"slot_id", entry.SlotID,
		"date", entry.RequestedDate,
	)
	s.emit(ctx, waitlistedEvent(entry))

	return true, nil
}

func (s *bookingService) prepareRequest(req *model.BookingRequest) error {
	req.CustomerID = sanitizer.NormalizeID(req.CustomerID)
	req.SlotID = sanitizer.NormalizeID(req.SlotID)
	req.Date = sanitizer.TrimAndNormalize(req.Date)

	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "customer_id", req.CustomerID, "error", err)
		return apperrors.Validation("Booking request validation failed", validation.DetailsOf(err))
	}
	return nil
}

func (s *bookingService) resolveSlot(ctx context.Context, slotID string) (*model.Slot, error) {
	slot, err := s.catalog.GetSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrSlotNotFound) {
			return nil, bookingserrors.SlotNotFound(slotID)
		}
		return nil, bookingserrors.StorageError("slot lookup", err)
	}
	return slot, nil
}

func (s *bookingService) available(ctx context.Context, slot *model.Slot, date string) (int, error) {
	booked, err := s.bookings.CountConfirmed(ctx, slot.ID, date)
	if err != nil {
		return 0, err
	}
	return slot.TotalSeats - booked, nil
}

func (s *bookingService) ensureAvailable(ctx context.Context, slot *model.Slot, date string) error {
	available, err := s.available(ctx, slot, date)
	if err != nil {
		return bookingserrors.StorageError("availability check", err)
	}
	if available <= 0 {
		return bookingserrors.SlotFull(slot.ID, date)
	}
	return nil
}

func recordBookingFailure(err error) {
	if apperrors.HasCode(err, bookingserrors.CodeSlotFull) {
		metrics.RecordBooking(metrics.OutcomeFull)
		return
	}
	metrics.RecordBooking(metrics.OutcomeFailed)
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, bookingserrors.BookingNotFound(bookingID)
		}
		return nil, bookingserrors.StorageError("booking lookup", err)
	}
	return booking, nil
}

// inTransaction runs fn inside a Mongo transaction when they are enabled, directly otherwise.
func (s *bookingService) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.cfg.MongoTransactions {
		return fn(ctx)
	}
	return s.bookings.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		return fn(sessCtx)
	})
}

func (s *bookingService) emit(ctx context.Context, event model.NotificationEvent) {
	if s.sink == nil {
		return
	}
	event.ID = model.NewID(model.PrefixNotification)
	event.OccurredAt = s.now().UTC()
	s.sink.Emit(ctx, event)
}
