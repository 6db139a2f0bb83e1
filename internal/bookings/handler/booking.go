package handler

import (
	"encoding/json"
	"net/http"

	"flipfit/internal/bookings/service"
	apperrors "flipfit/pkg/errors"
	httputil "flipfit/pkg/http"
	"flipfit/pkg/logger"
	"flipfit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

type cancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

type waitlistResponse struct {
	Added bool `json:"added"`
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Book", apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.BookSlot(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cancelled, err := h.service.CancelBooking(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, cancelResponse{Cancelled: cancelled}); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetBooking(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) CustomerBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.ViewMyBookings(r.Context(), ps.ByName("customerId"))
	if err != nil {
		h.writeError(w, "CustomerBookings", err)
		return
	}

	if err := httputil.WriteList(w, bookings, len(bookings)); err != nil {
		h.log.Error("failed to write list response", "handler", "CustomerBookings", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) CustomerPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date, err := httputil.QueryDate(r, "date")
	if err != nil {
		h.writeError(w, "CustomerPlan", err)
		return
	}

	bookings, err := h.service.ViewPlanByDate(r.Context(), ps.ByName("customerId"), date)
	if err != nil {
		h.writeError(w, "CustomerPlan", err)
		return
	}

	if err := httputil.WriteList(w, bookings, len(bookings)); err != nil {
		h.log.Error("failed to write list response", "handler", "CustomerPlan", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) JoinWaitlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "JoinWaitlist", apperrors.InvalidInput("Invalid request body"))
		return
	}

	added, err := h.service.AddToWaitList(r.Context(), &req)
	if err != nil {
		h.writeError(w, "JoinWaitlist", err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	if err := httputil.WriteJSON(w, status, httputil.SuccessResponse{Data: waitlistResponse{Added: added}}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "JoinWaitlist", "operation", "WriteJSON", "error", err)
	}
}

func (h *BookingHandler) CustomerWaitlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	entries, err := h.service.ViewWaitlist(r.Context(), ps.ByName("customerId"))
	if err != nil {
		h.writeError(w, "CustomerWaitlist", err)
		return
	}

	if err := httputil.WriteList(w, entries, len(entries)); err != nil {
		h.log.Error("failed to write list response", "handler", "CustomerWaitlist", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) GymSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date, err := httputil.QueryDate(r, "date")
	if err != nil {
		h.writeError(w, "GymSlots", err)
		return
	}

	slots, err := h.service.ViewAvailableSlots(r.Context(), ps.ByName("gymId"), date)
	if err != nil {
		h.writeError(w, "GymSlots", err)
		return
	}

	if err := httputil.WriteList(w, slots, len(slots)); err != nil {
		h.log.Error("failed to write list response", "handler", "GymSlots", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) NearestSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date, err := httputil.QueryDate(r, "date")
	if err != nil {
		h.writeError(w, "NearestSlot", err)
		return
	}

	slot, err := h.service.FindNearestAvailableSlot(r.Context(), ps.ByName("gymId"), r.URL.Query().Get("time"), date)
	if err != nil {
		h.writeError(w, "NearestSlot", err)
		return
	}

	if err := httputil.WriteSuccess(w, slot); err != nil {
		h.log.Error("failed to write success response", "handler", "NearestSlot", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) CitySlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date, err := httputil.QueryDate(r, "date")
	if err != nil {
		h.writeError(w, "CitySlots", err)
		return
	}

	slots, err := h.service.ViewAvailableSlotsByCity(r.Context(), ps.ByName("city"), date)
	if err != nil {
		h.writeError(w, "CitySlots", err)
		return
	}

	if err := httputil.WriteList(w, slots, len(slots)); err != nil {
		h.log.Error("failed to write list response", "handler", "CitySlots", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Book)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.DELETE("/api/v1/bookings/id/:id", h.Cancel)
	router.POST("/api/v1/waitlist", h.JoinWaitlist)
	router.GET("/api/v1/customers/:customerId/bookings", h.CustomerBookings)
	router.GET("/api/v1/customers/:customerId/plan", h.CustomerPlan)
	router.GET("/api/v1/customers/:customerId/waitlist", h.CustomerWaitlist)
	router.GET("/api/v1/gyms/:gymId/slots", h.GymSlots)
	router.GET("/api/v1/gyms/:gymId/slots/nearest", h.NearestSlot)
	router.GET("/api/v1/cities/:city/slots", h.CitySlots)
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
