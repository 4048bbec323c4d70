package handlers

import (
	"log/slog"
	"net/http"

	"github.com/profootballhighlights/pfh-scoreboard/internal/logging"
)

// Standings returns {source, titles, html} for the newest available season.
// Responses are never cacheable.
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.standings == nil {
		writeError(w, r, http.StatusServiceUnavailable, "standings not configured", logger)
		return
	}

	res, err := h.standings.Fetch(r.Context())
	if err != nil {
		logging.Warn(logger, "standings fetch failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error(), logger)
		return
	}

	logging.Info(logger, "served standings",
		slog.Any("titles", res.Titles),
		slog.Int(logging.FieldCount, len(res.HTML)),
	)
	w.Header().Set("Cache-Control", cacheNoStore)
	writeJSON(w, http.StatusOK, res, logger)
}
