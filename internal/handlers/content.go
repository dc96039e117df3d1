package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"seo-spinner/internal/models"
	"seo-spinner/internal/services"
	"seo-spinner/internal/utils"
	"seo-spinner/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ContentHandler struct {
	generator *services.GenerationService
	content   *services.ContentService
	exporter  *services.ExportService
	logr      *zap.Logger
}

func NewContentHandler(gen *services.GenerationService, content *services.ContentService, exporter *services.ExportService, logr *zap.Logger) *ContentHandler {
	return &ContentHandler{generator: gen, content: content, exporter: exporter, logr: logr}
}

// GET /content/templates
func (h *ContentHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.content.ListTemplates(r.Context())
	if err != nil {
		writeError(w, h.logr, "failed to list templates", err, "Failed to fetch templates")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "templates": templates})
}

// POST /content/generate
func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		badRequest(w, "invalid payload")
		return
	}
	if err := validation.ValidateGeneration(body); err != nil {
		badRequest(w, "invalid request: "+err.Error())
		return
	}
	var req models.GenerationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(w, "invalid payload")
		return
	}

	result, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		writeError(w, h.logr, "content generation failed", err, "Failed to generate content")
		return
	}

	msg := fmt.Sprintf("Generated %d content pieces", len(result.Generated))
	if failed := result.Failed(); failed > 0 {
		msg = fmt.Sprintf("Generated %d of %d content pieces (%d failed)", len(result.Generated), result.TotalCombinations, failed)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"generated":         result.Generated,
		"totalCombinations": result.TotalCombinations,
		"message":           msg,
	})
}

// GET /content/generated/{businessId}?limit=50&offset=0&section=hero,about
func (h *ContentHandler) ListGenerated(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId")
	if !ok {
		return
	}
	q := r.URL.Query()
	var sections []models.SectionType
	for _, v := range utils.ParseQueryList(q, "section") {
		section := models.SectionType(v)
		if !section.Valid() {
			badRequest(w, "invalid section parameter")
			return
		}
		sections = append(sections, section)
	}

	rows, err := h.content.ListGenerated(r.Context(), services.GeneratedQuery{
		BusinessID: businessID,
		Sections:   sections,
		Limit:      utils.IntOr(q.Get("limit"), 50),
		Offset:     utils.IntOr(q.Get("offset"), 0),
	})
	if err != nil {
		writeError(w, h.logr, "failed to list generated content", err, "Failed to fetch content")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "content": rows})
}

// POST /content/projects
func (h *ContentHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.content.CreateProject(r.Context(), req)
	if err != nil {
		writeError(w, h.logr, "failed to create project", err, "Failed to create project")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"projectId": p.ID,
		"project":   p,
		"message":   "Project created successfully",
	})
}

// GET /content/projects/{businessId}
func (h *ContentHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(w, r, "businessId")
	if !ok {
		return
	}
	projects, err := h.content.ListProjects(r.Context(), businessID)
	if err != nil {
		writeError(w, h.logr, "failed to list projects", err, "Failed to fetch projects")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "projects": projects})
}

// POST /content/projects/{projectId}/content
func (h *ContentHandler) AttachContent(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}
	var req models.AttachContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := h.content.AttachContent(r.Context(), projectID, req.ContentIDs)
	if err != nil {
		writeError(w, h.logr, "failed to attach content", err, "Failed to attach content")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"attached": n,
		"message":  fmt.Sprintf("Attached %d content pieces", n),
	})
}

// GET /content/export/{projectId}/{format}
func (h *ContentHandler) Export(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}
	format := models.ExportFormat(chi.URLParam(r, "format"))
	if !format.Valid() {
		badRequest(w, "Invalid format")
		return
	}

	file, err := h.exporter.Export(r.Context(), projectID, format)
	if err != nil {
		writeError(w, h.logr, "failed to export project", err, "Failed to export content")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(file.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}
