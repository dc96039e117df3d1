package handlers

import (
	"net/http"

	"seo-spinner/internal/models"
	"seo-spinner/internal/services"

	"go.uber.org/zap"
)

type ServiceAreaHandler struct {
	service *services.ServiceAreaService
	logr    *zap.Logger
}

func NewServiceAreaHandler(svc *services.ServiceAreaService, logr *zap.Logger) *ServiceAreaHandler {
	return &ServiceAreaHandler{service: svc, logr: logr}
}

// POST /business/{id}/areas
func (h *ServiceAreaHandler) AddArea(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.CreateServiceAreaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	area, err := h.service.AddArea(r.Context(), id, req)
	if err != nil {
		writeError(w, h.logr, "failed to add service area", err, "Failed to add service area")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"areaId":  area.ID,
		"area":    area,
		"message": "Service area added successfully",
	})
}

// POST /business/{id}/areas/bulk  {"areas": ["Austin, TX", "Round Rock"]}
func (h *ServiceAreaHandler) AddAreasBulk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.BulkAreasRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.service.AddAreasBulk(r.Context(), id, req.Areas)
	if err != nil {
		writeError(w, h.logr, "failed to bulk add service areas", err, "Failed to add service areas")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"areas":   created,
		"message": "Service areas added successfully",
	})
}

// DELETE /business/areas/{areaId}
func (h *ServiceAreaHandler) DeleteArea(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "areaId")
	if !ok {
		return
	}
	if err := h.service.DeleteArea(r.Context(), id); err != nil {
		writeError(w, h.logr, "failed to delete service area", err, "Failed to delete service area")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Service area deleted successfully"})
}
