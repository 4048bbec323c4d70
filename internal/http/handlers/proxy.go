package handlers

import (
	"log/slog"
	"net/http"

	"github.com/profootballhighlights/pfh-scoreboard/internal/http/requestutil"
	"github.com/profootballhighlights/pfh-scoreboard/internal/logging"
	"github.com/profootballhighlights/pfh-scoreboard/internal/proxy"
	"github.com/profootballhighlights/pfh-scoreboard/internal/upstream"
)

// ESPN relays an allow-listed score-feed path (?path=football/nfl/scoreboard).
func (h *Handler) ESPN(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, h.espn, requestutil.UpstreamPath(r, "path"), "")
}

// SportsDB relays an allow-listed league lookup (?endpoint=lookupleague&id=4391).
func (h *Handler) SportsDB(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, h.sportsdb, requestutil.Query(r, "endpoint"), requestutil.Query(r, "id"))
}

func (h *Handler) forward(w http.ResponseWriter, r *http.Request, fwd Forwarder, key, id string) {
	logger := loggerFromContext(r, h.logger)
	if fwd == nil {
		writeError(w, r, http.StatusServiceUnavailable, "proxy not configured", logger)
		return
	}

	res, err := fwd.Forward(r.Context(), key, id)
	if err != nil {
		h.writeProxyError(w, r, err, logger)
		return
	}

	cacheState := "MISS"
	if res.Cached {
		cacheState = "HIT"
	}
	w.Header().Set("X-Cache", cacheState)
	writeRaw(w, contentTypeJSON, publicMaxAge(res.Target.MaxAge), res.Body)
}

func (h *Handler) writeProxyError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if vErr, ok := proxy.AsValidationError(err); ok {
		body := map[string]any{"error": vErr.Message}
		for k, v := range vErr.Fields {
			body[k] = v
		}
		logging.Info(logger, "proxy request rejected", "error", vErr.Message)
		writeErrorBody(w, r, http.StatusBadRequest, body, logger)
		return
	}

	if statusErr, ok := upstream.AsStatusError(err); ok {
		logging.Warn(logger, "proxy upstream error",
			slog.String(logging.FieldUpstream, statusErr.Upstream),
			slog.Int(logging.FieldStatusCode, statusErr.StatusCode),
		)
		writeErrorBody(w, r, http.StatusBadGateway, map[string]any{
			"error":  "Upstream error",
			"status": statusErr.StatusCode,
			"body":   upstream.Truncate(statusErr.Body, upstream.MaxErrorBody),
		}, logger)
		return
	}

	logging.Error(logger, "proxy request failed", err)
	writeError(w, r, http.StatusInternalServerError, err.Error(), logger)
}

// News relays the headlines RSS feed verbatim.
func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.news == nil {
		writeError(w, r, http.StatusServiceUnavailable, "news feed not configured", logger)
		return
	}
	body, err := h.news.Fetch(r.Context())
	if err != nil {
		logging.Error(logger, "news fetch failed", err)
		writeError(w, r, http.StatusInternalServerError, err.Error(), logger)
		return
	}
	writeRaw(w, contentTypeXML, publicMaxAge(proxy.NewsMaxAge), body)
}
