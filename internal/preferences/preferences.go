package preferences

import "fmt"

// Persisted keys and values. They match what earlier browser clients stored.
const (
	ThemeKey       = "pfh_theme"
	AutoRefreshKey = "pfh_auto_refresh_5m"

	autoRefreshOn  = "on"
	autoRefreshOff = "off"
)

// Theme is the page color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme applies when nothing valid is stored.
const DefaultTheme = ThemeDark

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ButtonLabel is the label of the control that switches away from t.
func (t Theme) ButtonLabel() string {
	if t == ThemeLight {
		return "Dark Mode"
	}
	return "Light Mode"
}

// Preferences are the user's dashboard settings.
type Preferences struct {
	Theme       Theme `json:"theme"`
	AutoRefresh bool  `json:"autoRefresh"`
}

// Defaults returns dark theme with auto-refresh off.
func Defaults() Preferences {
	return Preferences{Theme: DefaultTheme}
}

// FromValues reads preferences from stored key/value pairs. Unknown or
// malformed values fall back to defaults.
func FromValues(values map[string]string) Preferences {
	p := Defaults()
	if t := Theme(values[ThemeKey]); t.Valid() {
		p.Theme = t
	}
	p.AutoRefresh = values[AutoRefreshKey] == autoRefreshOn
	return p
}

// Values returns the stored representation of p.
func (p Preferences) Values() map[string]string {
	theme := p.Theme
	if !theme.Valid() {
		theme = DefaultTheme
	}
	auto := autoRefreshOff
	if p.AutoRefresh {
		auto = autoRefreshOn
	}
	return map[string]string{
		ThemeKey:       string(theme),
		AutoRefreshKey: auto,
	}
}

// ParseAutoRefresh accepts "on"/"off" (and common boolean spellings).
func ParseAutoRefresh(v string) (bool, error) {
	switch v {
	case autoRefreshOn, "true", "1":
		return true, nil
	case autoRefreshOff, "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid auto-refresh value %q", v)
	}
}
