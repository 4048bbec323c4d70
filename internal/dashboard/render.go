package dashboard

import (
	"embed"
	"html/template"
	"io"

	"github.com/profootballhighlights/pfh-scoreboard/internal/standings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Tab is one conference panel on the page.
type Tab struct {
	Key       string
	Label     string
	Active    bool
	Divisions []standings.Division
}

type page struct {
	View
	Tabs []Tab
}

// Render writes the dashboard page for v with the conference tab active
// ("AFC" unless "NFC" is requested).
func Render(w io.Writer, v View, active string) error {
	active = normalizeConference(active)
	tabs := make([]Tab, 0, 2)
	for _, key := range []string{standings.AFC, standings.NFC} {
		tabs = append(tabs, Tab{
			Key:       key,
			Label:     key,
			Active:    key == active,
			Divisions: v.Standings.Conference(key),
		})
	}
	return pageTemplate.Execute(w, page{View: v, Tabs: tabs})
}
