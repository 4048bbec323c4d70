package scoreboard

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// kickoff layouts seen in the feed; it omits seconds.
var kickoffLayouts = []string{time.RFC3339, "2006-01-02T15:04Z07:00"}

// Decode maps a scoreboard payload into at most MaxEvents events.
func Decode(body []byte) ([]Event, error) {
	var resp scoreboardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding scoreboard: %w", err)
	}

	raw := resp.Events
	if raw == nil && resp.Content != nil {
		raw = resp.Content.Events
	}
	if len(raw) > MaxEvents {
		raw = raw[:MaxEvents]
	}

	events := make([]Event, 0, len(raw))
	for _, ev := range raw {
		events = append(events, mapEvent(ev))
	}
	return events, nil
}

func mapEvent(ev eventResponse) Event {
	out := Event{ID: ev.ID, AwayTeam: DefaultAway, HomeTeam: DefaultHome}
	if len(ev.Competitions) == 0 {
		return out
	}
	comp := ev.Competitions[0]

	out.Status = comp.Status.Type.ShortDetail
	if out.Status == "" {
		out.Status = comp.Status.Type.Detail
	}
	out.Kickoff = parseKickoff(comp.Date)
	out.Link = summaryLink(comp.Links)

	away, home := sides(comp.Competitors)
	if away != nil {
		out.AwayTeam = teamName(*away, DefaultAway)
		out.AwayScore = string(away.Score)
	}
	if home != nil {
		out.HomeTeam = teamName(*home, DefaultHome)
		out.HomeScore = string(home.Score)
	}
	return out
}

// sides picks competitors by their home/away marker, falling back to order.
func sides(cs []competitorResponse) (away, home *competitorResponse) {
	for i := range cs {
		switch cs[i].HomeAway {
		case "away":
			if away == nil {
				away = &cs[i]
			}
		case "home":
			if home == nil {
				home = &cs[i]
			}
		}
	}
	if away == nil && len(cs) > 0 {
		away = &cs[0]
	}
	if home == nil && len(cs) > 1 {
		home = &cs[1]
	}
	return away, home
}

func teamName(c competitorResponse, fallback string) string {
	switch {
	case c.Team.DisplayName != "":
		return c.Team.DisplayName
	case c.Team.ShortDisplayName != "":
		return c.Team.ShortDisplayName
	default:
		return fallback
	}
}

func summaryLink(links []linkResponse) string {
	for _, l := range links {
		if slices.Contains(l.Rel, "summary") {
			return l.Href
		}
	}
	return ""
}

func parseKickoff(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range kickoffLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
