package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusplus/internal/export"
	"github.com/sadopc/focusplus/internal/focus"
	"github.com/sadopc/focusplus/internal/i18n"
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmPhaseReset
	confirmDataReset
)

// App is the root Bubble Tea model. It drives one focus.Session from the
// Update loop; the caller shuts the session down after the program exits.
type App struct {
	session *focus.Session
	tr      *i18n.Translator
	events  *eventQueue
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	// gen invalidates scheduled ticks; ticking is true while exactly one
	// tick of the current generation is in flight.
	gen     int
	ticking bool

	confirm     *huh.Form
	confirmKind confirmKind
	confirmed   *bool

	timer    timerModel
	stats    statsModel
	log      logModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *focus.Session) App {
	h := help.New()
	h.ShowAll = false

	q := &eventQueue{}
	s.Subscribe(q.push)

	prefs := s.Preferences()
	applyTheme(prefs)

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	confirmed := false
	return App{
		session:    s,
		tr:         i18n.For(prefs.Locale),
		events:     q,
		activeView: viewTimer,
		exportDir:  home,
		confirmed:  &confirmed,
		timer:      newTimerModel(s),
		stats:      newStatsModel(s),
		log:        newLogModel(s),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.SetWindowTitle(a.tr.T(i18n.Title))
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.log.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tickMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.ticking = false
		// Save failures surface through EventSaveFailed.
		_ = a.session.Tick()
		return a, a.sync()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = a.tr.T(i18n.SessionLogSaved) + " " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	// The confirmation form gets everything else, including its own
	// internal messages.
	if a.confirm != nil {
		return a.updateConfirm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewCount
			return a, nil
		case key.Matches(msg, keys.ShiftTab):
			a.activeView = (a.activeView + viewCount - 1) % viewCount
			return a, nil
		case key.Matches(msg, keys.Toggle):
			a.session.Toggle()
			return a, a.sync()
		case key.Matches(msg, keys.Reset):
			_, _ = a.session.ResetPhase(true)
			return a, a.sync()
		case key.Matches(msg, keys.ConfirmReset):
			return a.askConfirm(confirmPhaseReset, a.tr.T(i18n.ConfirmReset))
		case key.Matches(msg, keys.ResetData):
			return a.askConfirm(confirmDataReset, a.tr.T(i18n.ResetDataConfirm))
		case key.Matches(msg, keys.Preset1):
			_ = a.session.ApplyPreset(focus.Presets[0])
			return a, a.sync()
		case key.Matches(msg, keys.Preset2):
			_ = a.session.ApplyPreset(focus.Presets[1])
			return a, a.sync()
		case key.Matches(msg, keys.Mute):
			_ = a.session.SetMuted(!a.session.Preferences().Muted)
			return a, a.sync()
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		}
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewLog:
		a.log, cmd = a.log.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg, a.tr)
	}
	return a, tea.Batch(cmd, a.sync())
}

func (a App) isFormActive() bool {
	return a.activeView == viewSettings && a.settings.formActive
}

// sync turns queued session events into status lines and keeps the tick
// schedule in step with the timer.
func (a *App) sync() tea.Cmd {
	priority := 0
	set := func(p int, text string, isErr bool) {
		if p >= priority {
			priority = p
			a.status = text
			a.statusErr = isErr
		}
	}

	for _, e := range a.events.drain() {
		switch e.Kind {
		case focus.EventStarted:
			set(1, fmt.Sprintf("%s %s", a.tr.Phase(e.State.Phase), a.tr.T(i18n.Running)), false)
		case focus.EventPaused:
			set(1, fmt.Sprintf("%s %s", a.tr.Phase(e.State.Phase), a.tr.T(i18n.Paused)), false)
		case focus.EventPhaseCompleted:
			set(2, a.tr.T(i18n.PhaseDone, a.tr.Phase(e.Entry.Phase), a.tr.Phase(e.Next)), false)
		case focus.EventPhaseAbandoned:
			set(2, a.tr.T(i18n.PhaseAbandoned, a.tr.Phase(e.Entry.Phase), e.Entry.Minutes), false)
		case focus.EventBadgeEarned:
			set(3, a.tr.T(i18n.BadgeMessage, string(e.Badge.ID)), false)
		case focus.EventPreferencesChanged:
			a.refreshLook()
		case focus.EventDataReset:
			a.refreshLook()
			set(2, a.tr.T(i18n.DataCleared), false)
		case focus.EventSaveFailed:
			set(4, a.tr.T(i18n.StateSaveFailed, e.Err), true)
		}
	}
	return a.schedule()
}

func (a *App) refreshLook() {
	prefs := a.session.Preferences()
	a.tr = i18n.For(prefs.Locale)
	applyTheme(prefs)
}

// schedule starts a tick chain when the timer starts running and bumps the
// generation when it stops, so the tick still in flight is dropped.
func (a *App) schedule() tea.Cmd {
	running := a.session.Running()
	switch {
	case running && !a.ticking:
		a.gen++
		a.ticking = true
		return tickCmd(a.gen)
	case !running && a.ticking:
		a.gen++
		a.ticking = false
	}
	return nil
}

func (a App) askConfirm(kind confirmKind, question string) (tea.Model, tea.Cmd) {
	*a.confirmed = false
	a.confirmKind = kind
	a.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative(a.tr.T(i18n.Yes)).
				Negative(a.tr.T(i18n.No)).
				Value(a.confirmed),
		),
	).WithShowHelp(false)
	return a, a.confirm.Init()
}

func (a App) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		a.confirm = nil
		a.confirmKind = confirmNone
		return a, nil
	}

	form, cmd := a.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.confirm = f
	}
	if a.confirm.State != huh.StateCompleted {
		return a, cmd
	}

	kind := a.confirmKind
	a.confirm = nil
	a.confirmKind = confirmNone
	switch kind {
	case confirmPhaseReset:
		_, _ = a.session.ResetPhase(*a.confirmed)
	case confirmDataReset:
		if *a.confirmed {
			_ = a.session.ResetAll()
		}
	}
	return a, a.sync()
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view(a.tr)
	case viewStats:
		content = a.stats.view(a.tr)
	case viewLog:
		content = a.log.view(a.tr)
	case viewSettings:
		content = a.settings.view(a.tr)
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	switch {
	case a.confirm != nil:
		content = panelStyle.Width(a.width - 4).Render(a.confirm.View())
	case a.exportPicking:
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, k := range viewKeys {
		name := a.tr.T(k)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := titleStyle.Foreground(colorPrimary).Render(a.tr.T(i18n.Title))
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Timer indicator in footer
	st := a.session.State()
	timerInfo := warningStyle.Render(" ⏸ " + formatClock(st.Remaining))
	if st.Running {
		timerInfo = successStyle.Render(" ● " + formatClock(st.Remaining))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render(a.tr.T(i18n.Export))
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return panelStyle.BorderForeground(colorPrimary).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport copies the log now and writes it off the update loop.
func (a App) doExport(format int) tea.Cmd {
	entries := a.session.Entries()
	dir := a.exportDir
	failed := a.tr.T(i18n.SaveError)
	dateStr := time.Now().Format("2006-01-02")

	return func() tea.Msg {
		var path string
		var err error
		if format == 0 {
			path = filepath.Join(dir, fmt.Sprintf("focusplus-log-%s.csv", dateStr))
			err = export.ToCSV(entries, path)
		} else {
			path = filepath.Join(dir, fmt.Sprintf("focusplus-log-%s.json", dateStr))
			err = export.ToJSON(entries, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("%s: %v", failed, err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
