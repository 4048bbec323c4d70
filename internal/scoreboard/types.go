package scoreboard

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Wire shapes for the scoreboard feed. Only the fields the dashboard reads are declared.

type scoreboardResponse struct {
	Events  []eventResponse `json:"events"`
	Content *struct {
		Events []eventResponse `json:"events"`
	} `json:"content"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Competitions []competitionResponse `json:"competitions"`
}

type competitionResponse struct {
	Date        string               `json:"date"`
	Status      statusResponse       `json:"status"`
	Competitors []competitorResponse `json:"competitors"`
	Links       []linkResponse       `json:"links"`
}

type statusResponse struct {
	Type struct {
		ShortDetail string `json:"shortDetail"`
		Detail      string `json:"detail"`
	} `json:"type"`
}

type competitorResponse struct {
	HomeAway string    `json:"homeAway"`
	Score    textValue `json:"score"`
	Team     struct {
		DisplayName      string `json:"displayName"`
		ShortDisplayName string `json:"shortDisplayName"`
	} `json:"team"`
}

type linkResponse struct {
	Rel  []string `json:"rel"`
	Href string   `json:"href"`
}

// textValue accepts a JSON string or number and keeps its text form.
type textValue string

func (v *textValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = textValue(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		// Objects and other shapes are treated as a missing score.
		*v = ""
		return nil
	}
	*v = textValue(n.String())
	return nil
}
