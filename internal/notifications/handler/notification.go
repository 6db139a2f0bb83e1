package handler

import (
	"net/http"

	"flipfit/internal/notifications/service"
	httputil "flipfit/pkg/http"
	"flipfit/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type NotificationHandler struct {
	service service.NotificationService
	log     *logger.Logger
}

func NewNotificationHandler(service service.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

type markAllResponse struct {
	Updated int64 `json:"updated"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	unread, err := httputil.QueryBool(r, "unread")
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	notifications, err := h.service.GetNotifications(r.Context(), ps.ByName("customerId"), unread)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteList(w, notifications, len(notifications)); err != nil {
		h.log.Error("failed to write list response", "handler", "List", "operation", "WriteList", "error", err)
	}
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.MarkRead(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "MarkRead", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	updated, err := h.service.MarkAllRead(r.Context(), ps.ByName("customerId"))
	if err != nil {
		h.writeError(w, "MarkAllRead", err)
		return
	}

	if err := httputil.WriteSuccess(w, markAllResponse{Updated: updated}); err != nil {
		h.log.Error("failed to write success response", "handler", "MarkAllRead", "operation", "WriteSuccess", "error", err)
	}
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *NotificationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/customers/:customerId/notifications", h.List)
	router.PATCH("/api/v1/customers/:customerId/notifications/read", h.MarkAllRead)
	router.PATCH("/api/v1/notifications/:id/read", h.MarkRead)
	router.DELETE("/api/v1/notifications/:id", h.Delete)
}

func (h *NotificationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
