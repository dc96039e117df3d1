package handlers

import (
	"net/http"

	"seo-spinner/internal/models"
	"seo-spinner/internal/services"
	"seo-spinner/internal/utils"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
	logr    *zap.Logger
}

func NewAnalyticsHandler(svc *services.AnalyticsService, logr *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc, logr: logr}
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId")
	if !ok {
		return
	}
	d, err := h.service.Dashboard(r.Context(), businessID)
	if err != nil {
		writeError(w, h.logr, "failed to build dashboard", err, "Failed to fetch analytics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "analytics": d})
}

func (h *AnalyticsHandler) Keywords(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId")
	if !ok {
		return
	}
	k, err := h.service.Keywords(r.Context(), businessID)
	if err != nil {
		writeError(w, h.logr, "failed to analyse keywords", err, "Failed to fetch keyword analysis")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "keywords": k})
}

func (h *AnalyticsHandler) AddKeyword(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId")
	if !ok {
		return
	}
	var req models.CreateKeywordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	k, err := h.service.AddKeyword(r.Context(), businessID, req)
	if err != nil {
		writeError(w, h.logr, "failed to add keyword", err, "Failed to add keyword")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"keywordId": k.ID,
		"message":   "Keyword added successfully",
	})
}

func (h *AnalyticsHandler) Performance(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId")
	if !ok {
		return
	}
	p, err := h.service.Performance(r.Context(), businessID)
	if err != nil {
		writeError(w, h.logr, "failed to build performance matrix", err, "Failed to fetch performance metrics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "performance": p})
}

func (h *AnalyticsHandler) Exports(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId")
	if !ok {
		return
	}
	stats, err := h.service.Exports(r.Context(), businessID)
	if err != nil {
		writeError(w, h.logr, "failed to load export stats", err, "Failed to fetch export statistics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "exports": stats})
}

func (h *AnalyticsHandler) Track(w http.ResponseWriter, r *http.Request) {
	contentID, ok := pathID(w, r, "contentId")
	if !ok {
		return
	}
	var req models.TrackMetricRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := h.service.Track(r.Context(), contentID, req)
	if err != nil {
		writeError(w, h.logr, "failed to record metric", err, "Failed to record analytics")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"analyticsId": m.ID,
		"message":     "Analytics recorded successfully",
	})
}

// GET /analytics/trends/{businessId}?days=30
func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId")
	if !ok {
		return
	}
	t, err := h.service.Trends(r.Context(), businessID, utils.IntOr(r.URL.Query().Get("days"), 30))
	if err != nil {
		writeError(w, h.logr, "failed to load trends", err, "Failed to fetch trends")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trends": t})
}
