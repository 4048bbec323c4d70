package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/profootballhighlights/pfh-scoreboard/internal/http/handlers"
	"github.com/profootballhighlights/pfh-scoreboard/internal/http/middleware"
	"github.com/profootballhighlights/pfh-scoreboard/internal/metrics"
)

// Legacy function paths kept so bookmarked clients keep working.
const (
	legacyESPN      = "/.netlify/functions/espnProxy"
	legacySportsDB  = "/.netlify/functions/sportsdbProxy"
	legacyStandings = "/.netlify/functions/wikiStandings"
	legacyNews      = "/.netlify/functions/newsProxy"
)

// NewRouter registers HTTP routes. Dashboard routes are only added when the
// handler has a session.
func NewRouter(h *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logging(logger, recorder))

	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)

	r.HandleFunc("/api/espn", h.ESPN).Methods(nethttp.MethodGet)
	r.HandleFunc("/api/sportsdb", h.SportsDB).Methods(nethttp.MethodGet)
	r.HandleFunc("/api/standings", h.Standings).Methods(nethttp.MethodGet)
	r.HandleFunc("/api/news", h.News).Methods(nethttp.MethodGet)

	r.HandleFunc(legacyESPN, h.ESPN).Methods(nethttp.MethodGet)
	r.HandleFunc(legacySportsDB, h.SportsDB).Methods(nethttp.MethodGet)
	r.HandleFunc(legacyStandings, h.Standings).Methods(nethttp.MethodGet)
	r.HandleFunc(legacyNews, h.News).Methods(nethttp.MethodGet)

	if h.HasDashboard() {
		r.HandleFunc("/", h.Page).Methods(nethttp.MethodGet)
		r.HandleFunc("/dashboard/state", h.State).Methods(nethttp.MethodGet)
		r.HandleFunc("/refresh", h.Refresh).Methods(nethttp.MethodPost)
		r.HandleFunc("/preferences/theme", h.ToggleTheme).Methods(nethttp.MethodPost)
		r.HandleFunc("/preferences/auto-refresh", h.AutoRefresh).Methods(nethttp.MethodPost)
	}

	r.NotFoundHandler = middleware.LoggingMiddleware(logger, recorder, nethttp.HandlerFunc(h.NotFound))
	r.MethodNotAllowedHandler = middleware.LoggingMiddleware(logger, recorder, nethttp.HandlerFunc(h.MethodNotAllowed))
	return r
}
