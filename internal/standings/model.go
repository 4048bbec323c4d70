package standings

import "strings"

// Conference keys.
const (
	AFC = "AFC"
	NFC = "NFC"
)

// DivisionNames lists the recognized divisions in display order.
var DivisionNames = []string{
	"AFC East", "AFC North", "AFC South", "AFC West",
	"NFC East", "NFC North", "NFC South", "NFC West",
}

// Row is one team's record as printed upstream; numeric fields stay text.
type Row struct {
	Team string `json:"team"`
	W    string `json:"w"`
	L    string `json:"l"`
	T    string `json:"t"`
	Pct  string `json:"pct"`
}

// Division is a named, ordered standings table. Row order is the upstream ranking.
type Division struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// Conferences groups populated divisions under AFC and NFC.
type Conferences struct {
	AFC []Division `json:"afc"`
	NFC []Division `json:"nfc"`
}

// Len returns the number of populated divisions across both conferences.
func (c Conferences) Len() int {
	return len(c.AFC) + len(c.NFC)
}

// Conference returns the divisions for key ("AFC" or "NFC").
func (c Conferences) Conference(key string) []Division {
	switch strings.ToUpper(key) {
	case AFC:
		return c.AFC
	case NFC:
		return c.NFC
	default:
		return nil
	}
}

// IsDivision reports whether name is one of the recognized divisions.
func IsDivision(name string) bool {
	for _, d := range DivisionNames {
		if d == name {
			return true
		}
	}
	return false
}
