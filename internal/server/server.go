package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/profootballhighlights/pfh-scoreboard/internal/config"
	"github.com/profootballhighlights/pfh-scoreboard/internal/dashboard"
	httpserver "github.com/profootballhighlights/pfh-scoreboard/internal/http"
	"github.com/profootballhighlights/pfh-scoreboard/internal/http/handlers"
	"github.com/profootballhighlights/pfh-scoreboard/internal/logging"
	"github.com/profootballhighlights/pfh-scoreboard/internal/metrics"
	"github.com/profootballhighlights/pfh-scoreboard/internal/preferences"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	redis         *redis.Client
	httpServer    httpServer
	metricsServer httpServer
	session       Session
	metricsStop   func(context.Context) error
}

// New constructs a server with proxies, the standings fetcher and, when
// enabled, the dashboard session wired from cfg.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	storage := buildStorage(cfg, logger)
	factory := newUpstreamFactory(logger, recorder)
	feeds := factory.build(cfg.Upstreams, storage.cache)

	deps := handlers.Deps{
		ESPN:      feeds.espn,
		SportsDB:  feeds.sportsdb,
		News:      feeds.news,
		Standings: feeds.standings,
		Logger:    logger,
	}
	var session Session
	if sess := buildSession(cfg, storage.preferences, factory, logger, recorder); sess != nil {
		deps.Dashboard = sess
		session = sess
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		redis:         storage.redis,
		httpServer:    buildHTTPServer(cfg, handlers.NewHandler(deps), logger, recorder),
		metricsServer: metricsSrv,
		session:       session,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, session Session) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		session:    session,
	}
}

// buildSession returns nil when the dashboard is disabled. The session reads
// the proxy endpoints over HTTP, the same way a browser would.
func buildSession(cfg config.Config, store preferences.Store, factory upstreamFactory, logger *slog.Logger, recorder *metrics.Recorder) *dashboard.Session {
	if !cfg.Dashboard.Enabled {
		return nil
	}
	client := factory.client("dashboard", dashboardUserAgent, acceptJSON, dashboard.StandingsTimeout)
	return dashboard.NewSession(dashboard.Options{
		Feeds:    dashboard.NewFeedClient(cfg.Dashboard.FeedBaseURL, client),
		Store:    store,
		Logger:   logger,
		Metrics:  recorder,
		Interval: cfg.Dashboard.RefreshInterval,
		Location: cfg.Dashboard.Location(),
	})
}

func buildHTTPServer(cfg config.Config, handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewRouter(handler, logger, recorder),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

// Run binds the HTTP listener, starts the session, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()

	// The session calls back into this server, so the socket must exist first.
	if err := s.bind(); err != nil {
		logging.Error(s.logger, "http listen failed", err, slog.String("addr", s.httpServer.Addr()))
		s.gracefulShutdown()
		return
	}
	s.startServer(stop)
	if s.session != nil {
		s.session.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) bind() error {
	srv, ok := s.httpServer.(netHTTPServer)
	if !ok || srv.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", srv.srv.Addr)
	if err != nil {
		return err
	}
	srv.listener = ln
	s.httpServer = srv
	return nil
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.session != nil {
		if err := s.session.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop dashboard session", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.Close(); err != nil {
		logging.Warn(s.logger, "redis close failed", "error", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests and the Lambda adapter).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Close releases resources held outside of Run, such as the Redis client.
func (s *Server) Close() error {
	if s.redis == nil {
		return nil
	}
	client := s.redis
	s.redis = nil
	return client.Close()
}
