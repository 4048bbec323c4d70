package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/profootballhighlights/pfh-scoreboard/internal/dashboard"
	"github.com/profootballhighlights/pfh-scoreboard/internal/logging"
	"github.com/profootballhighlights/pfh-scoreboard/internal/preferences"
)

// Page renders the dashboard; ?conf=NFC selects the NFC standings tab.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var buf bytes.Buffer
	if err := dashboard.Render(&buf, h.dashboard.View(), r.URL.Query().Get("conf")); err != nil {
		logging.Error(logger, "render dashboard failed", err)
		writeError(w, r, http.StatusInternalServerError, "render failed", logger)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.Header().Set("Cache-Control", cacheNoStore)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// State returns the dashboard view as JSON.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", cacheNoStore)
	writeJSON(w, http.StatusOK, h.dashboard.View(), loggerFromContext(r, h.logger))
}

// Refresh reloads both feeds and redirects back to the page.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	// Not tied to the client connection; each feed has its own timeout.
	ctx := logging.WithLogger(context.WithoutCancel(r.Context()), logger)
	if err := h.dashboard.Refresh(ctx); err != nil {
		if errors.Is(err, dashboard.ErrRefreshInProgress) {
			writeError(w, r, http.StatusConflict, err.Error(), logger)
			return
		}
		logging.Error(logger, "refresh failed", err)
		writeError(w, r, http.StatusInternalServerError, err.Error(), logger)
		return
	}
	redirectHome(w, r)
}

// ToggleTheme flips the theme and redirects back to the page.
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	theme, err := h.dashboard.ToggleTheme(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not save preferences", logger)
		return
	}
	logging.Info(logger, "theme changed", "theme", string(theme))
	redirectHome(w, r)
}

// AutoRefresh sets auto-refresh from ?enabled=on|off (query or form).
func (h *Handler) AutoRefresh(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	on, err := preferences.ParseAutoRefresh(r.FormValue("enabled"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	if err := h.dashboard.SetAutoRefresh(r.Context(), on); err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not save preferences", logger)
		return
	}
	logging.Info(logger, "auto-refresh changed", "enabled", on)
	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
