package handlers

import (
	"net/http"

	"seo-spinner/internal/models"
	"seo-spinner/internal/services"

	"go.uber.org/zap"
)

type BusinessHandler struct {
	service *services.BusinessService
	logr    *zap.Logger
}

func NewBusinessHandler(svc *services.BusinessService, logr *zap.Logger) *BusinessHandler {
	return &BusinessHandler{service: svc, logr: logr}
}

// GET /business
func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logr, "failed to list businesses", err, "Failed to fetch businesses")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "businesses": businesses})
}

// POST /business
func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBusinessRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logr, "failed to create business", err, "Failed to create business")
		return
	}
	h.logr.Info("business created", zap.Int64("business_id", b.ID), zap.String("name", b.Name))
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":    true,
		"businessId": b.ID,
		"business":   b,
		"message":    "Business created successfully",
	})
}

// GET /business/{id}
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logr, "failed to get business", err, "Failed to fetch business")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"business":     detail.Business,
		"services":     detail.Services,
		"serviceAreas": detail.ServiceAreas,
	})
}

// POST /business/{id}/services
func (h *BusinessHandler) AddService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.CreateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := h.service.AddService(r.Context(), id, req)
	if err != nil {
		writeError(w, h.logr, "failed to add service", err, "Failed to add service")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"serviceId": svc.ID,
		"service":   svc,
		"message":   "Service added successfully",
	})
}

// POST /business/{id}/services/bulk
func (h *BusinessHandler) AddServicesBulk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.BulkServicesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.service.AddServicesBulk(r.Context(), id, req.Services)
	if err != nil {
		writeError(w, h.logr, "failed to bulk add services", err, "Failed to add services")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"services": created,
		"message":  "Services added successfully",
	})
}

// DELETE /business/services/{serviceId}
func (h *BusinessHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "serviceId")
	if !ok {
		return
	}
	if err := h.service.DeleteService(r.Context(), id); err != nil {
		writeError(w, h.logr, "failed to delete service", err, "Failed to delete service")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Service deleted successfully"})
}
