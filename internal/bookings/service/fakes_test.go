package service

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingserrors "flipfit/internal/bookings/errors"
	"flipfit/internal/bookings/validator"
	catalogerrors "flipfit/internal/catalog/errors"
	"flipfit/pkg/config"
	mongotx "flipfit/pkg/db/mongo"
	apperrors "flipfit/pkg/errors"
	"flipfit/pkg/lock"
	"flipfit/pkg/logger"
	"flipfit/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// fakeBookingRepository keeps bookings in memory and enforces the same conditional
// transitions as the Mongo repository.
type fakeBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
	order    []string
	txCalls  int

	countErr        error
	updateStatusErr map[string]error
}

func newFakeBookingRepository() *fakeBookingRepository {
	return &fakeBookingRepository{
		bookings:        make(map[string]*model.Booking),
		updateStatusErr: make(map[string]error),
	}
}

func (f *fakeBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.CustomerID == booking.CustomerID && b.SlotID == booking.SlotID && b.BookingDate == booking.BookingDate {
			return bookingserrors.ErrDuplicateEntry
		}
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	stored := *booking
	f.bookings[booking.ID] = &stored
	f.order = append(f.order, booking.ID)
	return nil
}

func (f *fakeBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	out := *b
	return &out, nil
}

func (f *fakeBookingRepository) FindByCustomer(ctx context.Context, customerID string) ([]*model.Booking, error) {
	return f.filter(func(b *model.Booking) bool { return b.CustomerID == customerID }), nil
}

func (f *fakeBookingRepository) FindByCustomerAndDate(ctx context.Context, customerID, date string) ([]*model.Booking, error) {
	return f.filter(func(b *model.Booking) bool {
		return b.CustomerID == customerID && b.BookingDate == date
	}), nil
}

func (f *fakeBookingRepository) CountConfirmed(ctx context.Context, slotID, date string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.filter(func(b *model.Booking) bool {
		return b.SlotID == slotID && b.BookingDate == date && b.Status == model.BookingConfirmed
	})), nil
}

func (f *fakeBookingRepository) CountConfirmedBySlots(ctx context.Context, slotIDs []string, date string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, id := range slotIDs {
		n, err := f.CountConfirmed(ctx, id, date)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

func (f *fakeBookingRepository) Reuse(ctx context.Context, id string) error {
	return f.UpdateStatus(ctx, id, model.BookingCancelled, model.BookingConfirmed)
}

func (f *fakeBookingRepository) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.updateStatusErr[id]; err != nil {
		return err
	}
	b, ok := f.bookings[id]
	if !ok {
		return bookingserrors.ErrNotFound
	}
	if b.Status != from {
		return bookingserrors.ErrStatusTransition
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	f.mu.Lock()
	f.txCalls++
	f.mu.Unlock()
	return fn(mongo.NewSessionContext(ctx, nil))
}

func (f *fakeBookingRepository) filter(keep func(*model.Booking) bool) []*model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*model.Booking{}
	for _, id := range f.order {
		if b := f.bookings[id]; keep(b) {
			c := *b
			out = append(out, &c)
		}
	}
	return out
}

func (f *fakeBookingRepository) confirmed(slotID, date string) int {
	n, _ := f.CountConfirmed(context.Background(), slotID, date)
	return n
}

type fakeWaitlistRepository struct {
	mu       sync.Mutex
	entries  []*model.WaitlistEntry
	position int64

	isWaitingErr error
}

func (f *fakeWaitlistRepository) Create(ctx context.Context, entry *model.WaitlistEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.entries {
		if e.Status == model.WaitlistWaiting && e.CustomerID == entry.CustomerID &&
			e.SlotID == entry.SlotID && e.RequestedDate == entry.RequestedDate {
			return bookingserrors.ErrDuplicateEntry
		}
	}
	f.position++
	entry.Position = f.position
	entry.CreatedAt = time.Now().UTC()
	entry.Status = model.WaitlistWaiting
	stored := *entry
	f.entries = append(f.entries, &stored)
	return nil
}

func (f *fakeWaitlistRepository) FindFirstWaiting(ctx context.Context, slotID, date string) (*model.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var waiting []*model.WaitlistEntry
	for _, e := range f.entries {
		if e.SlotID == slotID && e.RequestedDate == date && e.Status == model.WaitlistWaiting {
			waiting = append(waiting, e)
		}
	}
	if len(waiting) == 0 {
		return nil, nil
	}
	sort.Slice(waiting, func(i, j int) bool { return waiting[i].Position < waiting[j].Position })
	head := *waiting[0]
	return &head, nil
}

func (f *fakeWaitlistRepository) MarkAllocated(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.entries {
		if e.ID == id && e.Status == model.WaitlistWaiting {
			now := time.Now().UTC()
			e.Status = model.WaitlistAllocated
			e.AllocatedAt = &now
			return nil
		}
	}
	return bookingserrors.ErrStatusTransition
}

func (f *fakeWaitlistRepository) IsWaiting(ctx context.Context, customerID, slotID, date string) (bool, error) {
	if f.isWaitingErr != nil {
		return false, f.isWaitingErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.entries {
		if e.Status == model.WaitlistWaiting && e.CustomerID == customerID && e.SlotID == slotID && e.RequestedDate == date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWaitlistRepository) FindByCustomer(ctx context.Context, customerID string) ([]*model.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*model.WaitlistEntry{}
	for _, e := range f.entries {
		if e.CustomerID == customerID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeWaitlistRepository) status(customerID, slotID, date string) model.WaitlistStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.entries {
		if e.CustomerID == customerID && e.SlotID == slotID && e.RequestedDate == date {
			return e.Status
		}
	}
	return ""
}

type fakeCatalog struct {
	mu    sync.Mutex
	slots map[string]*model.Slot
	gyms  map[string]*model.GymCenter
	order []string

	getSlotErr error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		slots: make(map[string]*model.Slot),
		gyms:  make(map[string]*model.GymCenter),
	}
}

func (f *fakeCatalog) addGym(id, name, city string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gyms[id] = &model.GymCenter{ID: id, Name: name, City: city, Address: name + " Road"}
}

func (f *fakeCatalog) addSlot(id, gymID, start, end string, seats int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[id] = &model.Slot{ID: id, GymID: gymID, StartTime: start, EndTime: end, TotalSeats: seats, Active: true}
	f.order = append(f.order, id)
}

func (f *fakeCatalog) setActive(id string, active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[id].Active = active
}

func (f *fakeCatalog) GetSlot(ctx context.Context, slotID string) (*model.Slot, error) {
	if f.getSlotErr != nil {
		return nil, f.getSlotErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[slotID]
	if !ok {
		return nil, apperrors.Wrap(catalogerrors.ErrSlotNotFound, apperrors.CodeNotFound, "Slot not found", 404)
	}
	c := *slot
	return &c, nil
}

func (f *fakeCatalog) GetSlots(ctx context.Context, slotIDs []string) (map[string]*model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]*model.Slot)
	for _, id := range slotIDs {
		if slot, ok := f.slots[id]; ok {
			c := *slot
			out[id] = &c
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetGymCenters(ctx context.Context, gymIDs []string) (map[string]*model.GymCenter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]*model.GymCenter)
	for _, id := range gymIDs {
		if gym, ok := f.gyms[id]; ok {
			out[id] = gym
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListSlotsForGym(ctx context.Context, gymID string) ([]*model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*model.Slot{}
	for _, id := range f.order {
		if slot := f.slots[id]; slot.GymID == gymID && slot.Active {
			c := *slot
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeCatalog) ListSlotsByCity(ctx context.Context, city string) ([]*model.SlotAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*model.SlotAvailability{}
	for _, id := range f.order {
		slot := f.slots[id]
		gym, ok := f.gyms[slot.GymID]
		if !ok || gym.City != city || !slot.Active {
			continue
		}
		out = append(out, &model.SlotAvailability{Slot: *slot, GymName: gym.Name, City: gym.City, AvailableSeats: slot.TotalSeats})
	}
	return out, nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []model.NotificationEvent
}

func (r *recordingSink) Emit(ctx context.Context, event model.NotificationEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingSink) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Event)
	}
	return out
}

func (r *recordingSink) forUser(userID, event string) []model.NotificationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.NotificationEvent
	for _, e := range r.events {
		if e.UserID == userID && e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

type timeoutLocker struct{}

func (timeoutLocker) Lock(ctx context.Context, key string) (func(), error) {
	return nil, lock.ErrLockTimeout
}

type fixture struct {
	svc      BookingService
	bookings *fakeBookingRepository
	waitlist *fakeWaitlistRepository
	catalog  *fakeCatalog
	sink     *recordingSink
	locker   lock.Locker
	cfg      *config.Config
}

const testDate = "2025-06-02"

func newFixture(opts ...func(*fixture)) *fixture {
	log := logger.Discard()
	f := &fixture{
		bookings: newFakeBookingRepository(),
		waitlist: &fakeWaitlistRepository{},
		catalog:  newFakeCatalog(),
		sink:     &recordingSink{},
		locker:   lock.NewKeyedMutex(),
		cfg: &config.Config{
			Log:                log,
			LockBackend:        config.LockBackendMemory,
			LockAcquireTimeout: 2 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.svc = NewBookingService(f.bookings, f.waitlist, f.catalog, f.sink, f.locker, validator.NewBookingValidator(log), f.cfg)
	return f
}

func (f *fixture) book(customerID, slotID, date string) (*model.Booking, error) {
	return f.svc.BookSlot(context.Background(), &model.BookingRequest{CustomerID: customerID, SlotID: slotID, Date: date})
}

func (f *fixture) wait(customerID, slotID, date string) (bool, error) {
	return f.svc.AddToWaitList(context.Background(), &model.BookingRequest{CustomerID: customerID, SlotID: slotID, Date: date})
}
