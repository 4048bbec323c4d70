package standings

// Reasons a table or row was discarded.
const (
	DropUnknownLabel = "unknown_label"
	DropShortRow     = "short_row"
	DropEmptyTeam    = "empty_team"
	DropNonNumeric   = "non_numeric"
)

// Report counts what the parser saw and what it discarded, so an empty result
// can be told apart from markup the heuristics no longer recognize.
type Report struct {
	TablesSeen     int            `json:"tablesSeen"`
	TablesAccepted int            `json:"tablesAccepted"`
	RowsAccepted   int            `json:"rowsAccepted"`
	Dropped        map[string]int `json:"dropped,omitempty"`
}

func (r *Report) drop(reason string) {
	if r.Dropped == nil {
		r.Dropped = make(map[string]int)
	}
	r.Dropped[reason]++
}

// DroppedRows returns the number of rows discarded for any reason.
func (r Report) DroppedRows() int {
	total := 0
	for reason, n := range r.Dropped {
		if reason != DropUnknownLabel {
			total += n
		}
	}
	return total
}
