package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/profootballhighlights/pfh-scoreboard/internal/http/handlers"
	"github.com/profootballhighlights/pfh-scoreboard/internal/metrics"
	"github.com/profootballhighlights/pfh-scoreboard/internal/proxy"
	"github.com/profootballhighlights/pfh-scoreboard/internal/standings"
	"github.com/profootballhighlights/pfh-scoreboard/internal/testutil"
)

type fixedStandings struct{}

func (fixedStandings) Fetch(context.Context) (standings.Result, error) {
	return standings.Result{Source: standings.Source, HTML: "<table/>"}, nil
}

type fixedNews struct{}

func (fixedNews) Fetch(context.Context) ([]byte, error) {
	return []byte("<rss/>"), nil
}

func newTestRouter(recorder *metrics.Recorder) http.Handler {
	getter := testutil.GetterFunc(func(context.Context, string) ([]byte, error) {
		return []byte(`{"events":[]}`), nil
	})
	h := handlers.NewHandler(handlers.Deps{
		ESPN:      proxy.New(proxy.ESPNAllowList("https://espn.test"), getter, nil, nil, nil),
		SportsDB:  proxy.New(proxy.SportsDBAllowList("https://sportsdb.test"), getter, nil, nil, nil),
		News:      fixedNews{},
		Standings: fixedStandings{},
	})
	return NewRouter(h, nil, recorder)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter(nil)

	cases := []struct {
		path string
		want int
	}{
		{path: "/health", want: http.StatusOK},
		{path: "/ready", want: http.StatusOK},
		{path: "/api/espn?path=football/nfl/scoreboard", want: http.StatusOK},
		{path: "/api/espn?path=football/nfl/news", want: http.StatusBadRequest},
		{path: "/api/sportsdb?endpoint=lookupleague&id=4391", want: http.StatusOK},
		{path: "/api/standings", want: http.StatusOK},
		{path: "/api/news", want: http.StatusOK},
		{path: "/.netlify/functions/espnProxy?path=football/nfl/scoreboard", want: http.StatusOK},
		{path: "/.netlify/functions/sportsdbProxy?endpoint=eventsround&id=1", want: http.StatusOK},
		{path: "/.netlify/functions/wikiStandings", want: http.StatusOK},
		{path: "/.netlify/functions/newsProxy", want: http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Fatalf("route %s expected status %d, got %d", tc.path, tc.want, rr.Code)
		}
		if rr.Header().Get("X-Request-ID") == "" {
			t.Fatalf("route %s missing request id header", tc.path)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	rec := metrics.NewRecorder()
	router := newTestRouter(rec)

	rr := testutil.Serve(router, http.MethodGet, "/does-not-exist", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	var resp map[string]any
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "not found" || resp["requestId"] == nil {
		t.Fatalf("unexpected body %v", resp)
	}
	if got := rec.HTTPRequests(http.MethodGet, "unmatched", http.StatusNotFound); got != 1 {
		t.Fatalf("expected unmatched request recorded, got %d", got)
	}
}

func TestRouterWrongMethodReturns405(t *testing.T) {
	router := newTestRouter(nil)

	rr := testutil.Serve(router, http.MethodPost, "/api/standings", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}

func TestRouterOmitsDashboardWithoutSession(t *testing.T) {
	router := newTestRouter(nil)

	rr := testutil.Serve(router, http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestRouterRecordsRouteTemplate(t *testing.T) {
	rec := metrics.NewRecorder()
	router := newTestRouter(rec)

	testutil.Serve(router, http.MethodGet, "/api/espn?path=football/nfl/scoreboard", nil)
	if got := rec.HTTPRequests(http.MethodGet, "/api/espn", http.StatusOK); got != 1 {
		t.Fatalf("expected request recorded under route template, got %d", got)
	}
}
