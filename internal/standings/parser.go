package standings

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Acceptance thresholds for scraped rows.
const (
	// MinCells is the fewest cells a data row may have: team, W, L, T.
	MinCells = 4
	// TableSelector matches the table styles the encyclopedia has used for standings.
	TableSelector = "table.wikitable, table.sortable, table"
)

// ErrNoDivisions means no recognized division produced a valid row.
var ErrNoDivisions = errors.New("standings: no division tables found")

var headingTag = regexp.MustCompile(`^h\d$`)

// Parse scrapes html into conference groupings. It fails with ErrNoDivisions
// when neither conference has a populated division.
func Parse(html string) (Conferences, Report, error) {
	divisions, report, err := ParseDivisions(html)
	if err != nil {
		return Conferences{}, report, err
	}
	grouped := Group(divisions)
	if grouped.Len() == 0 {
		return grouped, report, ErrNoDivisions
	}
	return grouped, report, nil
}

// ParseDivisions returns every recognized division's rows in document order.
// Divisions with no valid rows are present with an empty slice.
func ParseDivisions(html string) (map[string][]Row, Report, error) {
	var report Report
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, report, fmt.Errorf("parsing standings html: %w", err)
	}

	divisions := make(map[string][]Row, len(DivisionNames))
	for _, name := range DivisionNames {
		divisions[name] = []Row{}
	}

	doc.Find(TableSelector).Each(func(_ int, tbl *goquery.Selection) {
		report.TablesSeen++
		label := tableLabel(tbl)
		if !IsDivision(label) {
			report.drop(DropUnknownLabel)
			return
		}
		report.TablesAccepted++

		tbl.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
			row, reason := parseRow(tr)
			if reason != "" {
				report.drop(reason)
				return
			}
			divisions[label] = append(divisions[label], row)
			report.RowsAccepted++
		})
	})

	return divisions, report, nil
}

// Group partitions divisions by conference prefix, in DivisionNames order,
// omitting divisions without rows.
func Group(divisions map[string][]Row) Conferences {
	var out Conferences
	for _, name := range DivisionNames {
		rows := divisions[name]
		if len(rows) == 0 {
			continue
		}
		div := Division{Name: name, Rows: rows}
		switch {
		case strings.HasPrefix(name, AFC):
			out.AFC = append(out.AFC, div)
		case strings.HasPrefix(name, NFC):
			out.NFC = append(out.NFC, div)
		}
	}
	return out
}

// tableLabel prefers the caption, then the heading immediately before the table.
func tableLabel(tbl *goquery.Selection) string {
	if caption := tbl.Find("caption").First(); caption.Length() > 0 {
		if label := normalize(caption.Text()); label != "" {
			return label
		}
	}

	prev := tbl.Prev()
	if prev.Length() == 0 {
		return ""
	}
	if headingTag.MatchString(goquery.NodeName(prev)) {
		return normalize(prev.Text())
	}
	// Newer skins wrap headings: <div class="mw-heading"><h3>..</h3></div>.
	if prev.HasClass("mw-heading") {
		if h := prev.ChildrenFiltered("h1, h2, h3, h4, h5, h6").First(); h.Length() > 0 {
			return normalize(h.Text())
		}
	}
	return ""
}

func parseRow(tr *goquery.Selection) (Row, string) {
	cells := tr.Find("th, td")
	if cells.Length() < MinCells {
		return Row{}, DropShortRow
	}

	cell := func(i int) string {
		if i >= cells.Length() {
			return ""
		}
		return normalize(cells.Eq(i).Text())
	}

	team := cleanTeam(cell(0))
	if team == "" {
		return Row{}, DropEmptyTeam
	}

	w, l := cell(1), cell(2)
	if !startsWithDigit(w) || !startsWithDigit(l) {
		return Row{}, DropNonNumeric
	}

	return Row{Team: team, W: w, L: l, T: cell(3), Pct: cell(4)}, ""
}

// normalize collapses whitespace runs (including non-breaking spaces) and trims.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanTeam strips trailing clinch markers such as "*".
func cleanTeam(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "*"))
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
