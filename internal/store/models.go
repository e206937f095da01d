package store

type Setting struct {
	Key   string
	Value string
}

// Settings keys holding the timer config and display preferences.
const (
	KeyFocusMinutes   = "focus_minutes"
	KeyBreakMinutes   = "break_minutes"
	KeyLocale         = "locale"
	KeyTheme          = "theme"
	KeyFontSize       = "font_size"
	KeyAccessibleFont = "accessible_font"
	KeyMuted          = "muted"
)
