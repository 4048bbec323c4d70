package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/profootballhighlights/pfh-scoreboard/internal/dashboard"
	"github.com/profootballhighlights/pfh-scoreboard/internal/preferences"
	"github.com/profootballhighlights/pfh-scoreboard/internal/proxy"
	"github.com/profootballhighlights/pfh-scoreboard/internal/standings"
)

// Forwarder relays one allow-listed upstream; *proxy.Proxy satisfies it.
type Forwarder interface {
	Forward(ctx context.Context, key, id string) (proxy.Result, error)
}

// Headlines returns the raw headlines feed; *proxy.News satisfies it.
type Headlines interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// StandingsSource returns the newest standings HTML; *standings.Fetcher satisfies it.
type StandingsSource interface {
	Fetch(ctx context.Context) (standings.Result, error)
}

// Dashboard is the session behind the page routes; *dashboard.Session satisfies it.
type Dashboard interface {
	View() dashboard.View
	Status() dashboard.Status
	Refresh(ctx context.Context) error
	ToggleTheme(ctx context.Context) (preferences.Theme, error)
	SetAutoRefresh(ctx context.Context, on bool) error
}

// Deps are the collaborators a Handler serves. Dashboard may be nil.
type Deps struct {
	ESPN      Forwarder
	SportsDB  Forwarder
	News      Headlines
	Standings StandingsSource
	Dashboard Dashboard
	Logger    *slog.Logger
}

// Handler wires HTTP routes to the proxies, the standings fetcher and the dashboard session.
type Handler struct {
	espn      Forwarder
	sportsdb  Forwarder
	news      Headlines
	standings StandingsSource
	dashboard Dashboard
	logger    *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		espn:      deps.ESPN,
		sportsdb:  deps.SportsDB,
		news:      deps.News,
		standings: deps.Standings,
		dashboard: deps.Dashboard,
		logger:    deps.Logger,
	}
}

// HasDashboard reports whether page routes should be registered.
func (h *Handler) HasDashboard() bool {
	return h.dashboard != nil
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports ready once the dashboard has settled its first refresh.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.dashboard == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.dashboard.Status().IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	writeError(w, r, http.StatusServiceUnavailable, "not ready", h.logger)
}

// NotFound answers unknown routes with a JSON error.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}
