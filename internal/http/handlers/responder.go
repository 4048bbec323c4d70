package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/profootballhighlights/pfh-scoreboard/internal/http/middleware"
	"github.com/profootballhighlights/pfh-scoreboard/internal/logging"
)

const (
	contentTypeJSON = "application/json"
	contentTypeUTF8 = "application/json; charset=utf-8"
	contentTypeXML  = "application/xml"
	contentTypeHTML = "text/html; charset=utf-8"
	cacheNoStore    = "no-store"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", contentTypeUTF8)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

// writeError writes {"error": message} and marks the response non-cacheable.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeErrorBody(w, r, status, map[string]any{"error": message}, logger)
}

func writeErrorBody(w http.ResponseWriter, r *http.Request, status int, body map[string]any, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	if reqID != "" {
		body["requestId"] = reqID
	}
	w.Header().Set("Cache-Control", cacheNoStore)
	writeJSON(w, status, body, logger)
}

func writeRaw(w http.ResponseWriter, contentType, cacheControl string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func publicMaxAge(d time.Duration) string {
	return "public, max-age=" + strconv.Itoa(int(d.Seconds()))
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
