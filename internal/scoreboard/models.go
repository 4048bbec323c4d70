package scoreboard

import "time"

// MaxEvents caps the cards rendered from one feed.
const MaxEvents = 24

// Fallback names used when the feed omits a team.
const (
	DefaultAway = "Away"
	DefaultHome = "Home"
)

// KickoffLayout is how kickoff times are shown on cards.
const KickoffLayout = "Mon, Jan 2, 3:04 PM"

// Event is one scheduled, live or finished game as shown on a card.
type Event struct {
	ID        string    `json:"id,omitempty"`
	AwayTeam  string    `json:"awayTeam"`
	HomeTeam  string    `json:"homeTeam"`
	AwayScore string    `json:"awayScore"`
	HomeScore string    `json:"homeScore"`
	Status    string    `json:"status"`
	Kickoff   time.Time `json:"kickoff,omitzero"`
	Link      string    `json:"link,omitempty"`
}

// HasScore reports whether either side has a score to show.
func (e Event) HasScore() bool {
	return e.AwayScore != "" || e.HomeScore != ""
}

// KickoffText formats the kickoff in loc, or "" when unknown.
func (e Event) KickoffText(loc *time.Location) string {
	if e.Kickoff.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return e.Kickoff.In(loc).Format(KickoffLayout)
}

// Header is the small line above the score grid: kickoff then status.
func (e Event) Header(loc *time.Location) string {
	kickoff := e.KickoffText(loc)
	if kickoff == "" {
		return e.Status
	}
	return kickoff + " • " + e.Status
}
