package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	bookingserrors "flipfit/internal/bookings/errors"
	apperrors "flipfit/pkg/errors"
	httputil "flipfit/pkg/http"
	"flipfit/pkg/logger"
	"flipfit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	bookSlotFunc      func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	cancelFunc        func(ctx context.Context, bookingID string) (bool, error)
	addToWaitListFunc func(ctx context.Context, req *model.BookingRequest) (bool, error)
	planFunc          func(ctx context.Context, customerID, date string) ([]*model.BookingDetails, error)
	nearestFunc       func(ctx context.Context, gymID, preferredTime, date string) (*model.SlotAvailability, error)
	gymSlotsFunc      func(ctx context.Context, gymID, date string) ([]*model.SlotAvailability, error)
}

func (m *mockBookingService) BookSlot(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if m.bookSlotFunc != nil {
		return m.bookSlotFunc(ctx, req)
	}
	return &model.Booking{ID: "BKG00000001", CustomerID: req.CustomerID, SlotID: req.SlotID, BookingDate: req.Date, Status: model.BookingConfirmed}, nil
}

func (m *mockBookingService) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, bookingID)
	}
	return true, nil
}

func (m *mockBookingService) AddToWaitList(ctx context.Context, req *model.BookingRequest) (bool, error) {
	if m.addToWaitListFunc != nil {
		return m.addToWaitListFunc(ctx, req)
	}
	return true, nil
}

func (m *mockBookingService) GetBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	return &model.Booking{ID: bookingID}, nil
}

func (m *mockBookingService) ViewMyBookings(ctx context.Context, customerID string) ([]*model.BookingDetails, error) {
	return []*model.BookingDetails{}, nil
}

func (m *mockBookingService) ViewPlanByDate(ctx context.Context, customerID, date string) ([]*model.BookingDetails, error) {
	if m.planFunc != nil {
		return m.planFunc(ctx, customerID, date)
	}
	return []*model.BookingDetails{}, nil
}

func (m *mockBookingService) ViewWaitlist(ctx context.Context, customerID string) ([]*model.WaitlistEntry, error) {
	return []*model.WaitlistEntry{}, nil
}

func (m *mockBookingService) ViewAvailableSlots(ctx context.Context, gymID, date string) ([]*model.SlotAvailability, error) {
	if m.gymSlotsFunc != nil {
		return m.gymSlotsFunc(ctx, gymID, date)
	}
	return []*model.SlotAvailability{}, nil
}

func (m *mockBookingService) ViewAvailableSlotsByCity(ctx context.Context, city, date string) ([]*model.SlotAvailability, error) {
	return []*model.SlotAvailability{}, nil
}

func (m *mockBookingService) FindNearestAvailableSlot(ctx context.Context, gymID, preferredTime, date string) (*model.SlotAvailability, error) {
	if m.nearestFunc != nil {
		return m.nearestFunc(ctx, gymID, preferredTime, date)
	}
	return &model.SlotAvailability{}, nil
}

func newRouter(svc *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBook(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		bookErr    error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       `{"customer_id":"C1","slot_id":"SLT1","date":"2025-06-02"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed body",
			body:       `{"customer_id":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeInvalidInput,
		},
		{
			name:       "slot full",
			body:       `{"customer_id":"C1","slot_id":"SLT1","date":"2025-06-02"}`,
			bookErr:    bookingserrors.SlotFull("SLT1", "2025-06-02"),
			wantStatus: http.StatusConflict,
			wantCode:   bookingserrors.CodeSlotFull,
		},
		{
			name:       "lock timeout",
			body:       `{"customer_id":"C1","slot_id":"SLT1","date":"2025-06-02"}`,
			bookErr:    bookingserrors.LockTimeout("SLT1", "2025-06-02", context.DeadlineExceeded),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   bookingserrors.CodeLockTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{}
			if tt.bookErr != nil {
				svc.bookSlotFunc = func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
					return nil, tt.bookErr
				}
			}

			rec := serve(newRouter(svc), http.MethodPost, "/api/v1/bookings", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode == "" {
				return
			}
			var resp httputil.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	var gotID string
	svc := &mockBookingService{
		cancelFunc: func(ctx context.Context, bookingID string) (bool, error) {
			gotID = bookingID
			if bookingID == "BKGGONE" {
				return false, bookingserrors.AlreadyCancelled(bookingID)
			}
			return true, nil
		},
	}
	router := newRouter(svc)

	rec := serve(router, http.MethodDelete, "/api/v1/bookings/id/BKG12345678", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotID != "BKG12345678" {
		t.Errorf("booking id = %q", gotID)
	}
	var resp struct {
		Data cancelResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil || !resp.Data.Cancelled {
		t.Errorf("unexpected body %v %v", resp, err)
	}

	rec = serve(router, http.MethodDelete, "/api/v1/bookings/id/BKGGONE", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("already cancelled status = %d, want 409", rec.Code)
	}
}

func TestJoinWaitlist(t *testing.T) {
	tests := []struct {
		name       string
		added      bool
		wantStatus int
	}{
		{"added", true, http.StatusCreated},
		{"not added", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				addToWaitListFunc: func(ctx context.Context, req *model.BookingRequest) (bool, error) {
					return tt.added, nil
				},
			}
			rec := serve(newRouter(svc), http.MethodPost, "/api/v1/waitlist",
				`{"customer_id":"C1","slot_id":"SLT1","date":"2025-06-02"}`)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp struct {
				Data waitlistResponse `json:"data"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Data.Added != tt.added {
				t.Errorf("added = %v, want %v", resp.Data.Added, tt.added)
			}
		})
	}
}

func TestCustomerPlan_DateQuery(t *testing.T) {
	var gotDate string
	svc := &mockBookingService{
		planFunc: func(ctx context.Context, customerID, date string) ([]*model.BookingDetails, error) {
			gotDate = date
			return []*model.BookingDetails{{Booking: model.Booking{ID: "BKG1"}}}, nil
		},
	}
	router := newRouter(svc)

	rec := serve(router, http.MethodGet, "/api/v1/customers/C1/plan?date=2025-06-02", "")
	if rec.Code != http.StatusOK || gotDate != "2025-06-02" {
		t.Fatalf("status = %d date = %q", rec.Code, gotDate)
	}
	var list httputil.ListResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil || list.TotalCount != 1 {
		t.Errorf("unexpected list %+v %v", list, err)
	}

	rec = serve(router, http.MethodGet, "/api/v1/customers/C1/plan?date=June", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", rec.Code)
	}
}

func TestNearestSlot(t *testing.T) {
	var gotGym, gotTime, gotDate string
	svc := &mockBookingService{
		nearestFunc: func(ctx context.Context, gymID, preferredTime, date string) (*model.SlotAvailability, error) {
			gotGym, gotTime, gotDate = gymID, preferredTime, date
			if gymID == "EMPTY" {
				return nil, bookingserrors.NoAvailableSlot(gymID)
			}
			return &model.SlotAvailability{Slot: model.Slot{ID: "SLT1"}}, nil
		},
	}
	router := newRouter(svc)

	rec := serve(router, http.MethodGet, "/api/v1/gyms/GYM1/slots/nearest?time=07:30&date=2025-06-02", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotGym != "GYM1" || gotTime != "07:30" || gotDate != "2025-06-02" {
		t.Errorf("params = %q %q %q", gotGym, gotTime, gotDate)
	}

	rec = serve(router, http.MethodGet, "/api/v1/gyms/EMPTY/slots/nearest?time=07:30", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGymSlots_PassesDate(t *testing.T) {
	var gotDate string
	svc := &mockBookingService{
		gymSlotsFunc: func(ctx context.Context, gymID, date string) ([]*model.SlotAvailability, error) {
			gotDate = date
			return []*model.SlotAvailability{}, nil
		},
	}

	rec := serve(newRouter(svc), http.MethodGet, "/api/v1/gyms/GYM1/slots", "")
	if rec.Code != http.StatusOK || gotDate != "" {
		t.Errorf("status = %d date = %q", rec.Code, gotDate)
	}
}
