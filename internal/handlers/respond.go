package handlers

import (
	"encoding/json"
	"net/http"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(data)
}

// writeError maps err to a status and a {success:false, error} body. Server
// errors are logged with op; their details never reach the client.
func writeError(w http.ResponseWriter, logr *zap.Logger, op string, err error, fallback string) {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logr.Error(op, zap.Error(err))
	}
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   apperr.MessageOf(err, fallback),
	})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "invalid payload")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, name))
	if err != nil {
		badRequest(w, "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}
