package handler

import (
	"encoding/json"
	"net/http"

	"flipfit/internal/catalog/service"
	apperrors "flipfit/pkg/errors"
	httputil "flipfit/pkg/http"
	"flipfit/pkg/logger"
	"flipfit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

func (h *CatalogHandler) CreateGymCenter(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var gym model.GymCenter
	if err := json.NewDecoder(r.Body).Decode(&gym); err != nil {
		h.writeBadBody(w, "CreateGymCenter")
		return
	}

	if err := h.service.CreateGymCenter(r.Context(), &gym); err != nil {
		h.writeError(w, "CreateGymCenter", err)
		return
	}

	if err := httputil.WriteCreated(w, gym); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateGymCenter", "operation", "WriteCreated", "error", err)
	}
}

func (h *CatalogHandler) CreateSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var slot model.Slot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		h.writeBadBody(w, "CreateSlot")
		return
	}

	if err := h.service.CreateSlot(r.Context(), ps.ByName("gymId"), &slot); err != nil {
		h.writeError(w, "CreateSlot", err)
		return
	}

	if err := httputil.WriteCreated(w, slot); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateSlot", "operation", "WriteCreated", "error", err)
	}
}

func (h *CatalogHandler) SetSlotActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.SlotActiveUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeBadBody(w, "SetSlotActive")
		return
	}

	slot, err := h.service.SetSlotActive(r.Context(), ps.ByName("slotId"), &update)
	if err != nil {
		h.writeError(w, "SetSlotActive", err)
		return
	}

	if err := httputil.WriteSuccess(w, slot); err != nil {
		h.log.Error("failed to write success response", "handler", "SetSlotActive", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) GymCentersByCity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gyms, err := h.service.ListGymCentersByCity(r.Context(), ps.ByName("city"))
	if err != nil {
		h.writeError(w, "GymCentersByCity", err)
		return
	}

	if err := httputil.WriteList(w, gyms, len(gyms)); err != nil {
		h.log.Error("failed to write list response", "handler", "GymCentersByCity", "operation", "WriteList", "error", err)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/gyms", h.CreateGymCenter)
	router.POST("/api/v1/gyms/:gymId/slots", h.CreateSlot)
	router.PATCH("/api/v1/slots/:slotId/active", h.SetSlotActive)
	router.GET("/api/v1/cities/:city/gyms", h.GymCentersByCity)
}

func (h *CatalogHandler) writeBadBody(w http.ResponseWriter, handler string) {
	if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Code:  apperrors.CodeInvalidInput,
		Error: "Invalid request body",
	}); writeErr != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "operation", "WriteJSON", "error", writeErr)
	}
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
