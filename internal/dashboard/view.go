package dashboard

import (
	"strings"

	"github.com/profootballhighlights/pfh-scoreboard/internal/preferences"
	"github.com/profootballhighlights/pfh-scoreboard/internal/scoreboard"
	"github.com/profootballhighlights/pfh-scoreboard/internal/standings"
)

// Refresh button labels; the second is shown while a refresh runs.
const (
	RefreshLabel    = "Refresh"
	RefreshingLabel = "Refreshing…"
)

// StatusLine is an inline status message; Bad marks it as an error.
type StatusLine struct {
	Text string `json:"text"`
	Bad  bool   `json:"bad"`
}

// Card is one scoreboard event with its header text resolved.
type Card struct {
	scoreboard.Event
	Heading string `json:"heading"`
}

// ScoreboardView is what the scoreboard region shows: cards, or a message.
type ScoreboardView struct {
	Cards   []Card `json:"cards"`
	Message string `json:"message,omitempty"`
}

// StandingsView is what the standings region shows.
type StandingsView struct {
	AFC    []standings.Division `json:"afc"`
	NFC    []standings.Division `json:"nfc"`
	Status StatusLine           `json:"status"`
	Report standings.Report     `json:"report"`
}

// Conference returns the divisions for key ("AFC" or "NFC").
func (v StandingsView) Conference(key string) []standings.Division {
	return standings.Conferences{AFC: v.AFC, NFC: v.NFC}.Conference(key)
}

// View is a consistent snapshot of everything the page renders.
type View struct {
	Theme        preferences.Theme `json:"theme"`
	ThemeButton  string            `json:"themeButton"`
	AutoRefresh  bool              `json:"autoRefresh"`
	Refreshing   bool              `json:"refreshing"`
	RefreshLabel string            `json:"refreshLabel"`
	Status       StatusLine        `json:"status"`
	Scoreboard   ScoreboardView    `json:"scoreboard"`
	Standings    StandingsView     `json:"standings"`
}

// View returns the current state for rendering.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	label := RefreshLabel
	if s.refreshing {
		label = RefreshingLabel
	}
	board := s.board
	board.Cards = append([]Card(nil), s.board.Cards...)
	return View{
		Theme:        s.prefs.Theme,
		ThemeButton:  s.prefs.Theme.ButtonLabel(),
		AutoRefresh:  s.prefs.AutoRefresh,
		Refreshing:   s.refreshing,
		RefreshLabel: label,
		Status:       s.dataStatus,
		Scoreboard:   board,
		Standings:    s.table,
	}
}

// normalizeConference maps a query value to AFC or NFC, defaulting to AFC.
func normalizeConference(v string) string {
	if strings.EqualFold(v, standings.NFC) {
		return standings.NFC
	}
	return standings.AFC
}
