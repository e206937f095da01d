package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusplus/internal/focus"
	"github.com/sadopc/focusplus/internal/i18n"
)

type settingsModel struct {
	session *focus.Session
	width   int
	height  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	focusMinutes   *string
	breakMinutes   *string
	locale         *string
	theme          *string
	fontSize       *string
	accessibleFont *bool
	muted          *bool
}

func newSettingsModel(s *focus.Session) settingsModel {
	fm, bm, lc, th, fs := "", "", "", "", ""
	af, mu := false, false
	return settingsModel{
		session:        s,
		focusMinutes:   &fm,
		breakMinutes:   &bm,
		locale:         &lc,
		theme:          &th,
		fontSize:       &fs,
		accessibleFont: &af,
		muted:          &mu,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg, tr *i18n.Translator) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Enter) {
		return s.showForm(tr)
	}
	return s, nil
}

func (s settingsModel) showForm(tr *i18n.Translator) (settingsModel, tea.Cmd) {
	cfg := s.session.Config()
	prefs := s.session.Preferences()
	*s.focusMinutes = strconv.Itoa(cfg.FocusMinutes)
	*s.breakMinutes = strconv.Itoa(cfg.BreakMinutes)
	*s.locale = prefs.Locale
	*s.theme = prefs.Theme
	*s.fontSize = strconv.Itoa(prefs.FontSize)
	*s.accessibleFont = prefs.AccessibleFont
	*s.muted = prefs.Muted

	var localeOpts []huh.Option[string]
	for _, l := range focus.Locales {
		localeOpts = append(localeOpts, huh.NewOption(i18n.LanguageName(l), l))
	}
	var themeOpts []huh.Option[string]
	for _, t := range focus.Themes {
		themeOpts = append(themeOpts, huh.NewOption(tr.ThemeName(t), t))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(tr.T(i18n.FocusMin)).Value(s.focusMinutes).
				Validate(intRange(1, focus.MaxMinutes)),
			huh.NewInput().Title(tr.T(i18n.BreakMin)).Value(s.breakMinutes).
				Validate(intRange(0, focus.MaxMinutes)),
		).Title(tr.T(i18n.Timer)),
		huh.NewGroup(
			huh.NewSelect[string]().Title(tr.T(i18n.Language)).
				Options(localeOpts...).Value(s.locale),
			huh.NewSelect[string]().Title(tr.T(i18n.Theme)).
				Options(themeOpts...).Value(s.theme),
			huh.NewInput().Title(tr.T(i18n.FontSize)).Value(s.fontSize).
				Validate(intRange(focus.MinFontSize, focus.MaxFontSize)),
			huh.NewConfirm().Title(tr.T(i18n.DyslexiaFont)).
				Affirmative(tr.T(i18n.Yes)).Negative(tr.T(i18n.No)).
				Value(s.accessibleFont),
			huh.NewConfirm().Title(tr.T(i18n.Mute)).
				Affirmative(tr.T(i18n.Yes)).Negative(tr.T(i18n.No)).
				Value(s.muted),
		).Title(tr.T(i18n.Settings)),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if err := s.apply(); err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return s, nil
	}

	return s, cmd
}

// apply pushes the form values into the session. Durations are only
// changed when they differ, since a change restarts the focus phase.
func (s settingsModel) apply() error {
	focusMin, err := strconv.Atoi(*s.focusMinutes)
	if err != nil {
		return fmt.Errorf("focus minutes: %w", err)
	}
	breakMin, err := strconv.Atoi(*s.breakMinutes)
	if err != nil {
		return fmt.Errorf("break minutes: %w", err)
	}
	fontSize, err := strconv.Atoi(*s.fontSize)
	if err != nil {
		return fmt.Errorf("font size: %w", err)
	}

	cfg := s.session.Config()
	if cfg.FocusMinutes != focusMin || cfg.BreakMinutes != breakMin {
		if err := s.session.ChangeDuration(focusMin, breakMin); err != nil {
			return err
		}
	}

	return s.session.UpdatePreferences(focus.Preferences{
		Locale:         *s.locale,
		Theme:          *s.theme,
		FontSize:       fontSize,
		AccessibleFont: *s.accessibleFont,
		Muted:          *s.muted,
	})
}

func (s settingsModel) view(tr *i18n.Translator) string {
	w := s.width - 4
	title := titleStyle.Render(tr.T(i18n.Settings))

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cfg := s.session.Config()
	prefs := s.session.Preferences()
	yesNo := func(b bool) string {
		if b {
			return tr.T(i18n.Yes)
		}
		return tr.T(i18n.No)
	}

	items := []struct{ label, value string }{
		{tr.T(i18n.FocusMin), strconv.Itoa(cfg.FocusMinutes)},
		{tr.T(i18n.BreakMin), strconv.Itoa(cfg.BreakMinutes)},
		{tr.T(i18n.Language), i18n.LanguageName(prefs.Locale)},
		{tr.T(i18n.Theme), tr.ThemeName(prefs.Theme)},
		{tr.T(i18n.FontSize), strconv.Itoa(prefs.FontSize)},
		{tr.T(i18n.DyslexiaFont), yesNo(prefs.AccessibleFont)},
		{tr.T(i18n.Mute), yesNo(prefs.Muted)},
	}

	rows := []string{title, ""}
	for _, it := range items {
		label := lipgloss.NewStyle().Width(24).Render(it.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(it.value)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter: "+tr.T(i18n.Settings)+"   D: "+tr.T(i18n.ResetData)))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// intRange validates a whole number in [lo, hi].
func intRange(lo, hi int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}
