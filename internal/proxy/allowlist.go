package proxy

import (
	"net/url"
	"strings"
	"time"
)

// Policy describes one allow-listed upstream operation: where it goes and how
// long intermediaries may cache the relayed payload.
type Policy struct {
	Template string // placeholders: {base}, {key}, {id}
	MaxAge   time.Duration
	NeedsID  bool
}

// AllowList maps logical operation keys to their upstream policy. Anything not
// listed is rejected before an outbound request is built.
type AllowList struct {
	Upstream string // metrics/log label
	BaseURL  string
	Param    string // query parameter carrying the key, used in rejection payloads
	Message  string // rejection message
	Policies map[string]Policy
}

// Target is a validated outbound request.
type Target struct {
	Upstream string
	Key      string
	URL      string
	MaxAge   time.Duration
}

const (
	liveMaxAge   = 20 * time.Second
	lookupMaxAge = 300 * time.Second
)

// ESPNAllowList covers the score-feed paths the dashboards read.
func ESPNAllowList(baseURL string) AllowList {
	scoreboard := Policy{Template: "{base}/{key}", MaxAge: liveMaxAge}
	return AllowList{
		Upstream: "espn",
		BaseURL:  baseURL,
		Param:    "path",
		Message:  "Path not allowed",
		Policies: map[string]Policy{
			"football/nfl/scoreboard":                         scoreboard,
			"football/nfl/standings":                          scoreboard,
			"basketball/nba/scoreboard":                       scoreboard,
			"basketball/wnba/scoreboard":                      scoreboard,
			"basketball/mens-college-basketball/scoreboard":   scoreboard,
			"basketball/womens-college-basketball/scoreboard": scoreboard,
		},
	}
}

// SportsDBAllowList covers the league lookups; every endpoint requires a numeric id.
func SportsDBAllowList(baseURL string) AllowList {
	lookup := Policy{Template: "{base}/{key}.php?id={id}", MaxAge: lookupMaxAge, NeedsID: true}
	return AllowList{
		Upstream: "sportsdb",
		BaseURL:  baseURL,
		Param:    "endpoint",
		Message:  "Bad request",
		Policies: map[string]Policy{
			"eventsnextleague": lookup,
			"eventsround":      lookup,
			"eventspastleague": lookup,
			"lookupleague":     lookup,
		},
	}
}

// Resolve validates key (and id when the policy needs one) and expands the URL template.
func (a AllowList) Resolve(key, id string) (Target, error) {
	policy, ok := a.Policies[key]
	if !ok || (policy.NeedsID && !isNumeric(id)) {
		return Target{}, a.reject(key, id)
	}

	rendered := strings.NewReplacer(
		"{base}", strings.TrimSuffix(a.BaseURL, "/"),
		"{key}", key,
		"{id}", url.QueryEscape(id),
	).Replace(policy.Template)

	return Target{
		Upstream: a.Upstream,
		Key:      key,
		URL:      rendered,
		MaxAge:   policy.MaxAge,
	}, nil
}

func (a AllowList) reject(key, id string) *ValidationError {
	fields := map[string]string{a.Param: key}
	if a.hasIDPolicies() {
		fields["id"] = id
	}
	return &ValidationError{Message: a.Message, Fields: fields}
}

func (a AllowList) hasIDPolicies() bool {
	for _, p := range a.Policies {
		if p.NeedsID {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
