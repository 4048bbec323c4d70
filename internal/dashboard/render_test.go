package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/profootballhighlights/pfh-scoreboard/internal/preferences"
	"github.com/profootballhighlights/pfh-scoreboard/internal/scoreboard"
	"github.com/profootballhighlights/pfh-scoreboard/internal/standings"
)

func sampleView() View {
	return View{
		Theme:        preferences.ThemeLight,
		ThemeButton:  preferences.ThemeLight.ButtonLabel(),
		RefreshLabel: RefreshLabel,
		Status:       StatusLine{Text: "Updated 1:02:03 PM"},
		Scoreboard: ScoreboardView{Cards: []Card{{
			Event:   scoreboard.Event{AwayTeam: "<Chiefs>", HomeTeam: "Bills", AwayScore: "32", HomeScore: "29", Link: "https://example.test/game/1"},
			Heading: "Final",
		}}},
		Standings: StandingsView{
			AFC: []standings.Division{{Name: "AFC East", Rows: []standings.Row{{Team: "Buffalo Bills", W: "11", L: "6", T: "0", Pct: ".647"}}}},
			Status: StatusLine{Text: "Standings feed: Wikipedia • Updated 1:02:03 PM"},
		},
	}
}

func render(t *testing.T, v View, active string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, v, active); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestRenderPage(t *testing.T) {
	out := render(t, sampleView(), "")

	for _, want := range []string{
		`data-theme="light"`,
		`>Dark Mode</button>`,
		`&lt;Chiefs&gt;`,
		`href="https://example.test/game/1"`,
		`<div class="score">32</div>`,
		`AFC East`,
		`<td class="tname">Buffalo Bills</td>`,
		`No NFC divisions found.`,
		`class="tabbtn active" href="/?conf=AFC"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<Chiefs>") {
		t.Fatalf("team names must be escaped")
	}
	if strings.Contains(out, `http-equiv="refresh"`) {
		t.Fatalf("page should not self-reload with auto-refresh off")
	}
}

func TestRenderActiveTabAndRefreshing(t *testing.T) {
	v := sampleView()
	v.Refreshing = true
	v.RefreshLabel = RefreshingLabel
	v.AutoRefresh = true
	out := render(t, v, "nfc")

	if !strings.Contains(out, `class="tabbtn active" href="/?conf=NFC"`) {
		t.Fatalf("expected NFC tab active")
	}
	if !strings.Contains(out, `type="submit" disabled>Refreshing…</button>`) {
		t.Fatalf("expected disabled refresh button:\n%s", out)
	}
	if !strings.Contains(out, ` checked>`) || !strings.Contains(out, `http-equiv="refresh"`) {
		t.Fatalf("expected auto-refresh reflected")
	}
}

func TestRenderStandingsFailureHidesTabs(t *testing.T) {
	v := sampleView()
	v.Standings = StandingsView{Status: StatusLine{Text: "Standings unavailable: HTTP 500", Bad: true}}
	v.Scoreboard = ScoreboardView{Message: MsgScoreboardUnavailable}
	out := render(t, v, "")

	if strings.Contains(out, `data-conf=`) {
		t.Fatalf("tabs should not render without standings")
	}
	if !strings.Contains(out, `class="small bad">Standings unavailable: HTTP 500`) {
		t.Fatalf("expected bad standings status:\n%s", out)
	}
	if !strings.Contains(out, MsgScoreboardUnavailable) {
		t.Fatalf("expected scoreboard message")
	}
}
