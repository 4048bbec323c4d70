package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/profootballhighlights/pfh-scoreboard/internal/logging"
	"github.com/profootballhighlights/pfh-scoreboard/internal/metrics"
	"github.com/profootballhighlights/pfh-scoreboard/internal/preferences"
	"github.com/profootballhighlights/pfh-scoreboard/internal/scoreboard"
	"github.com/profootballhighlights/pfh-scoreboard/internal/standings"
)

const defaultInterval = 5 * time.Minute

// ClockLayout formats the "Updated ..." times in status lines.
const ClockLayout = "3:04:05 PM"

// User-facing messages.
const (
	MsgScoreboardUnavailable = "Scoreboard unavailable right now."
	MsgNoGames               = "No games found right now."
	MsgNoDivisions           = "Wikipedia did not include division tables."
	MsgLoading               = "Loading…"
)

// ErrRefreshInProgress is returned when a refresh is requested while one is running.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// Options configures a Session.
type Options struct {
	Feeds    Feeds
	Store    preferences.Store
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	Interval time.Duration  // auto-refresh period
	Location *time.Location // for kickoff and clock text; defaults to time.Local
}

// Status describes the outcome of recent refresh cycles.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastCompleted       time.Time
	LastSuccess         time.Time
}

// IsReady reports whether at least one refresh cycle has settled.
func (s Status) IsReady() bool {
	return !s.LastCompleted.IsZero()
}

// Session owns the dashboard's preferences, the auto-refresh timer and the
// last rendered state of both feeds.
type Session struct {
	feeds    Feeds
	store    preferences.Store
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	loc      *time.Location
	now      func() time.Time

	runCtx    context.Context
	cancelRun context.CancelFunc

	startMu  sync.Mutex
	started  bool
	stopOnce sync.Once
	unlinkFn func() bool
	wg       sync.WaitGroup

	autoMu   sync.Mutex
	autoStop chan struct{}

	prefsMu sync.Mutex

	mu         sync.RWMutex
	prefs      preferences.Preferences
	refreshing bool
	dataStatus StatusLine
	board      ScoreboardView
	table      StandingsView
	status     Status
}

// NewSession constructs a Session with defaults applied. Nothing runs until Start.
func NewSession(opts Options) *Session {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	store := opts.Store
	if store == nil {
		store = preferences.NewMemoryStore()
	}
	runCtx, cancel := context.WithCancel(context.Background())
	return &Session{
		feeds:     opts.Feeds,
		store:     store,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		interval:  interval,
		loc:       loc,
		now:       time.Now,
		runCtx:    runCtx,
		cancelRun: cancel,
		prefs:     preferences.Defaults(),
		board:     ScoreboardView{Message: MsgLoading},
		table:     StandingsView{Status: StatusLine{Text: MsgLoading}},
	}
}

// Start loads preferences, kicks off the initial load in the background and
// starts the auto-refresh timer when enabled. Cancelling ctx stops the session.
func (s *Session) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.unlinkFn = context.AfterFunc(ctx, s.cancelRun)
	s.startMu.Unlock()

	prefs, err := s.store.Load(ctx)
	if err != nil {
		logging.Warn(s.logger, "loading preferences failed, using defaults", "error", err)
		prefs = preferences.Defaults()
	}
	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()

	logging.Info(s.logger, "dashboard session started",
		slog.String("theme", string(prefs.Theme)),
		slog.Bool("auto_refresh", prefs.AutoRefresh),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refreshInBackground()
	}()

	if prefs.AutoRefresh {
		s.startAuto()
	}
}

// Stop halts the auto-refresh timer and waits for background work to settle.
func (s *Session) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.cancelRun()
		s.stopAuto()
		s.startMu.Lock()
		if s.unlinkFn != nil {
			s.unlinkFn()
		}
		s.startMu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logging.Info(s.logger, "dashboard session stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh loads both feeds concurrently and returns once both have settled.
// Feed failures are captured in the view; only ErrRefreshInProgress is returned.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return ErrRefreshInProgress
	}
	s.refreshing = true
	s.status.LastAttempt = s.now()
	s.mu.Unlock()

	var (
		wg           sync.WaitGroup
		boardErr     error
		standingsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		boardErr = s.loadScoreboard(ctx)
	}()
	go func() {
		defer wg.Done()
		standingsErr = s.loadStandings(ctx)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false
	s.recordCycleLocked(errors.Join(boardErr, standingsErr))
	return nil
}

func (s *Session) refreshInBackground() {
	if err := s.Refresh(s.runCtx); errors.Is(err, ErrRefreshInProgress) {
		logging.Info(s.logger, "skipping refresh, one is already running")
	}
}

func (s *Session) recordCycleLocked(err error) {
	at := s.now()
	s.status.LastCompleted = at
	if err != nil {
		s.status.ConsecutiveFailures++
		s.status.LastError = err.Error()
		return
	}
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = at
}

func (s *Session) loadScoreboard(ctx context.Context) error {
	start := time.Now()
	events, err := s.feeds.Scoreboard(ctx)
	s.metrics.RecordFeedRefresh(FeedScoreboard, time.Since(start), err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.board = ScoreboardView{Message: MsgScoreboardUnavailable}
		s.dataStatus = StatusLine{Text: "Scoreboard error: " + err.Error(), Bad: true}
		logging.Warn(s.logger, "scoreboard refresh failed",
			slog.String(logging.FieldFeed, FeedScoreboard),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.board = ScoreboardView{Cards: s.cards(events)}
	if len(events) == 0 {
		s.board.Message = MsgNoGames
	}
	s.dataStatus = StatusLine{Text: "Updated " + s.clock()}
	return nil
}

func (s *Session) loadStandings(ctx context.Context) error {
	start := time.Now()
	conf, report, err := s.fetchStandings(ctx)
	s.metrics.RecordFeedRefresh(FeedStandings, time.Since(start), err)
	for reason, n := range report.Dropped {
		if reason != standings.DropUnknownLabel {
			s.metrics.RecordDroppedRows(reason, n)
		}
	}
	if dropped := report.DroppedRows(); dropped > 0 {
		logging.Warn(s.logger, "standings rows dropped",
			slog.Int(logging.FieldCount, dropped),
			slog.Any("dropped", report.Dropped),
			slog.Int("tables_seen", report.TablesSeen),
			slog.Int("tables_accepted", report.TablesAccepted),
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		msg := err.Error()
		if errors.Is(err, standings.ErrNoDivisions) {
			msg = MsgNoDivisions
		}
		s.table = StandingsView{
			Status: StatusLine{Text: "Standings unavailable: " + msg, Bad: true},
			Report: report,
		}
		logging.Warn(s.logger, "standings refresh failed",
			slog.String(logging.FieldFeed, FeedStandings),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.table = StandingsView{
		AFC:    conf.AFC,
		NFC:    conf.NFC,
		Status: StatusLine{Text: "Standings feed: " + standings.Source + " • Updated " + s.clock()},
		Report: report,
	}
	return nil
}

func (s *Session) fetchStandings(ctx context.Context) (standings.Conferences, standings.Report, error) {
	html, err := s.feeds.StandingsHTML(ctx)
	if err != nil {
		return standings.Conferences{}, standings.Report{}, err
	}
	return standings.Parse(html)
}

func (s *Session) cards(events []scoreboard.Event) []Card {
	out := make([]Card, 0, len(events))
	for _, ev := range events {
		out = append(out, Card{Event: ev, Heading: ev.Header(s.loc)})
	}
	return out
}

// ToggleTheme switches between light and dark and persists the choice.
func (s *Session) ToggleTheme(ctx context.Context) (preferences.Theme, error) {
	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()

	s.mu.Lock()
	s.prefs.Theme = s.prefs.Theme.Toggle()
	prefs := s.prefs
	s.mu.Unlock()

	return prefs.Theme, s.save(ctx, prefs)
}

// SetAutoRefresh persists the flag and starts or stops the timer.
func (s *Session) SetAutoRefresh(ctx context.Context, on bool) error {
	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()

	state := "OFF"
	if on {
		state = "ON"
	}
	s.mu.Lock()
	s.prefs.AutoRefresh = on
	prefs := s.prefs
	s.dataStatus = StatusLine{Text: "Auto-refresh " + state + " • Updated " + s.clock()}
	s.mu.Unlock()

	if on {
		s.startAuto()
	} else {
		s.stopAuto()
	}
	return s.save(ctx, prefs)
}

func (s *Session) save(ctx context.Context, prefs preferences.Preferences) error {
	if err := s.store.Save(ctx, prefs); err != nil {
		logging.Error(s.logger, "saving preferences failed", err)
		return err
	}
	return nil
}

// Preferences returns the current settings.
func (s *Session) Preferences() preferences.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Status returns a snapshot of recent refresh outcomes.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// AutoRefreshRunning reports whether the timer is active.
func (s *Session) AutoRefreshRunning() bool {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	return s.autoStop != nil
}

// startAuto (re)starts the timer so the next tick is a full interval away.
func (s *Session) startAuto() {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	if s.runCtx.Err() != nil {
		return
	}
	s.stopAutoLocked()

	stop := make(chan struct{})
	s.autoStop = stop
	ticker := time.NewTicker(s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-s.runCtx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				s.refreshInBackground()
			}
		}
	}()
	logging.Info(s.logger, "auto-refresh started", slog.Int64(logging.FieldDurationMS, s.interval.Milliseconds()))
}

func (s *Session) stopAuto() {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	if s.stopAutoLocked() {
		logging.Info(s.logger, "auto-refresh stopped")
	}
}

func (s *Session) stopAutoLocked() bool {
	if s.autoStop == nil {
		return false
	}
	close(s.autoStop)
	s.autoStop = nil
	return true
}

func (s *Session) clock() string {
	return s.now().In(s.loc).Format(ClockLayout)
}
