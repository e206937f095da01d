package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusplus/internal/focus"
)

// palette is one color theme.
type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	err       lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
	highlight lipgloss.Color
}

var palettes = map[string]palette{
	focus.ThemeSoft: {
		primary:   lipgloss.Color("#4A90E2"),
		secondary: lipgloss.Color("#6EC6A5"),
		accent:    lipgloss.Color("#4A90E2"),
		muted:     lipgloss.Color("#7A8599"),
		success:   lipgloss.Color("#6EC6A5"),
		warning:   lipgloss.Color("#E2B04A"),
		err:       lipgloss.Color("#E26A6A"),
		fg:        lipgloss.Color("#D8DEE9"),
		subtle:    lipgloss.Color("#3B4252"),
		highlight: lipgloss.Color("#88C0D0"),
	},
	focus.ThemePlayful: {
		primary:   lipgloss.Color("#FF6B00"),
		secondary: lipgloss.Color("#00B3FF"),
		accent:    lipgloss.Color("#FF3B30"),
		muted:     lipgloss.Color("#8E8E93"),
		success:   lipgloss.Color("#32D74B"),
		warning:   lipgloss.Color("#FFD60A"),
		err:       lipgloss.Color("#FF3B30"),
		fg:        lipgloss.Color("#F2F2F7"),
		subtle:    lipgloss.Color("#48484A"),
		highlight: lipgloss.Color("#00B3FF"),
	},
}

// accessiblePalette trades the theme colors for maximum contrast.
var accessiblePalette = palette{
	primary:   lipgloss.Color("#FFFFFF"),
	secondary: lipgloss.Color("#FFFF00"),
	accent:    lipgloss.Color("#FFFF00"),
	muted:     lipgloss.Color("#C0C0C0"),
	success:   lipgloss.Color("#00FF00"),
	warning:   lipgloss.Color("#FFFF00"),
	err:       lipgloss.Color("#FF5555"),
	fg:        lipgloss.Color("#FFFFFF"),
	subtle:    lipgloss.Color("#FFFFFF"),
	highlight: lipgloss.Color("#00FFFF"),
}

// Color palette
var (
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorMuted     lipgloss.Color
	colorSuccess   lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color
	colorFg        lipgloss.Color
	colorSubtle    lipgloss.Color
	colorHighlight lipgloss.Color
)

// Styles
var (
	// Tabs
	activeTabStyle   lipgloss.Style
	inactiveTabStyle lipgloss.Style

	// Panels
	panelStyle lipgloss.Style

	// Timer
	timerStyle        lipgloss.Style
	timerRunningStyle lipgloss.Style
	timerPausedStyle  lipgloss.Style

	// Text
	titleStyle     lipgloss.Style
	subtitleStyle  lipgloss.Style
	accentStyle    lipgloss.Style
	successStyle   lipgloss.Style
	warningStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	mutedStyle     lipgloss.Style
	highlightStyle lipgloss.Style

	// Header/footer
	headerStyle lipgloss.Style
	footerStyle lipgloss.Style

	// List items
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
)

func init() {
	applyTheme(focus.DefaultPreferences())
}

// applyTheme rebuilds every style from the display preferences. The
// accessible mode drops bold text and uses the high-contrast palette.
func applyTheme(p focus.Preferences) {
	pal, ok := palettes[p.Theme]
	if !ok {
		pal = palettes[focus.ThemeSoft]
	}
	bold := true
	if p.AccessibleFont {
		pal = accessiblePalette
		bold = false
	}

	colorPrimary = pal.primary
	colorSecondary = pal.secondary
	colorAccent = pal.accent
	colorMuted = pal.muted
	colorSuccess = pal.success
	colorWarning = pal.warning
	colorError = pal.err
	colorFg = pal.fg
	colorSubtle = pal.subtle
	colorHighlight = pal.highlight

	activeTabStyle = lipgloss.NewStyle().
		Bold(bold).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)

	timerStyle = lipgloss.NewStyle().
		Bold(bold).
		Foreground(colorPrimary).
		Align(lipgloss.Center)

	timerRunningStyle = lipgloss.NewStyle().
		Bold(bold).
		Foreground(colorSuccess).
		Align(lipgloss.Center)

	timerPausedStyle = lipgloss.NewStyle().
		Bold(bold).
		Foreground(colorWarning).
		Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
		Bold(bold).
		Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	accentStyle = lipgloss.NewStyle().Foreground(colorAccent)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(bold)
	normalItemStyle = lipgloss.NewStyle().Foreground(colorFg)
}

// phaseStyle colors the countdown by phase.
func phaseStyle(p focus.Phase) lipgloss.Style {
	if p == focus.PhaseBreak {
		return lipgloss.NewStyle().Foreground(colorSecondary)
	}
	return lipgloss.NewStyle().Foreground(colorPrimary)
}
