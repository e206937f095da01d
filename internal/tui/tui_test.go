package tui

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/focusplus/internal/focus"
	"github.com/sadopc/focusplus/internal/i18n"
	"github.com/sadopc/focusplus/internal/store"
	"github.com/sadopc/focusplus/internal/testutil"
)

func newTestSession(t *testing.T) *focus.Session {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return focus.NewSession(s.Load(), s, focus.WithClock(testutil.FixedClock()))
}

func newTestApp(t *testing.T) (App, *focus.Session) {
	t.Helper()
	t.Cleanup(func() { applyTheme(focus.DefaultPreferences()) })
	sess := newTestSession(t)
	app := NewApp(sess)
	app.width = 120
	app.height = 40
	app.exportDir = t.TempDir()
	return app, sess
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return app, cmd
}

// tickN delivers n ticks of the current generation.
func tickN(t *testing.T, a App, n int) App {
	t.Helper()
	for i := 0; i < n; i++ {
		a, _ = press(t, a, tickMsg{gen: a.gen})
	}
	return a
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)

	if app.activeView != viewTimer {
		t.Fatal("default view should be the timer")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.ticking {
		t.Fatal("no tick should be scheduled for a paused timer")
	}
	if app.tr.Locale() != focus.LocaleEnglish {
		t.Fatalf("locale: got %q", app.tr.Locale())
	}
}

func TestAppToggleSchedulesTick(t *testing.T) {
	app, sess := newTestApp(t)

	app, cmd := press(t, app, tea.KeyMsg{Type: tea.KeySpace})
	if !sess.Running() {
		t.Fatal("space should start the timer")
	}
	if cmd == nil || !app.ticking {
		t.Fatal("starting should schedule a tick")
	}
	if app.gen != 1 {
		t.Fatalf("gen: got %d, want 1", app.gen)
	}
	if !strings.Contains(app.status, "running") {
		t.Fatalf("status: got %q", app.status)
	}
}

func TestAppPauseDropsStaleTick(t *testing.T) {
	app, sess := newTestApp(t)

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeySpace})
	stale := app.gen
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeySpace})
	if sess.Running() {
		t.Fatal("second space should pause")
	}
	if app.ticking || app.gen == stale {
		t.Fatal("pausing should invalidate the tick in flight")
	}

	before := sess.State().Remaining
	app, cmd := press(t, app, tickMsg{gen: stale})
	if cmd != nil {
		t.Fatal("stale tick should not reschedule")
	}
	if sess.State().Remaining != before {
		t.Fatal("stale tick should not count down")
	}
}

func TestAppTickCountsDown(t *testing.T) {
	app, sess := newTestApp(t)

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeySpace})
	app, cmd := press(t, app, tickMsg{gen: app.gen})

	if got := sess.State().Remaining; got != 25*60-1 {
		t.Fatalf("remaining: got %d", got)
	}
	if cmd == nil || !app.ticking {
		t.Fatal("a running timer should keep ticking")
	}
}

func TestAppPhaseCompletionStatus(t *testing.T) {
	app, sess := newTestApp(t)
	if err := sess.ChangeDuration(1, 1); err != nil {
		t.Fatal(err)
	}

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeySpace})
	app = tickN(t, app, 61)

	if sess.State().Phase != focus.PhaseBreak {
		t.Fatalf("phase: got %v", sess.State().Phase)
	}
	if !strings.Contains(app.status, "Focus finished, Break started") {
		t.Fatalf("status: got %q", app.status)
	}
	if sess.Progression().Experience != 1 {
		t.Fatalf("xp: got %d", sess.Progression().Experience)
	}
	if !app.ticking {
		t.Fatal("the break should keep ticking")
	}
}

func TestAppBadgeStatus(t *testing.T) {
	app, sess := newTestApp(t)
	if err := sess.ChangeDuration(1, 0); err != nil {
		t.Fatal(err)
	}

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeySpace})
	app = tickN(t, app, 3*61)

	if !sess.Progression().HasBadge(focus.BadgeBronze) {
		t.Fatal("three focus phases should earn Bronze")
	}
	if app.status != "You got Bronze badge now. Congratulations!" {
		t.Fatalf("status: got %q", app.status)
	}
}

func TestAppResetKey(t *testing.T) {
	app, sess := newTestApp(t)
	if err := sess.ChangeDuration(1, 1); err != nil {
		t.Fatal(err)
	}

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeySpace})
	app = tickN(t, app, 10)
	app, _ = press(t, app, runes("r"))

	if sess.Running() || app.ticking {
		t.Fatal("reset should leave the timer paused")
	}
	entries := sess.Entries()
	if len(entries) != 1 || entries[0].Success {
		t.Fatalf("entries: %+v", entries)
	}
	if !strings.Contains(app.status, "abandoned") {
		t.Fatalf("status: got %q", app.status)
	}
}

func TestAppConfirmResetCancel(t *testing.T) {
	app, sess := newTestApp(t)

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeySpace})
	app, _ = press(t, app, runes("x"))
	if app.confirm == nil || app.confirmKind != confirmPhaseReset {
		t.Fatal("x should ask for confirmation")
	}

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.confirm != nil {
		t.Fatal("esc should close the confirmation")
	}
	if !sess.Running() || len(sess.Entries()) != 0 {
		t.Fatal("declining should change nothing")
	}
}

func TestAppDataResetAsksFirst(t *testing.T) {
	app, _ := newTestApp(t)

	app, _ = press(t, app, runes("D"))
	if app.confirm == nil || app.confirmKind != confirmDataReset {
		t.Fatal("D should ask for confirmation")
	}
	if *app.confirmed {
		t.Fatal("confirmation should default to no")
	}
}

func TestAppPresetKeys(t *testing.T) {
	app, sess := newTestApp(t)

	app, _ = press(t, app, runes("2"))
	if got := sess.Config(); got != (focus.TimerConfig{FocusMinutes: 50, BreakMinutes: 10}) {
		t.Fatalf("config: %+v", got)
	}
	_, _ = press(t, app, runes("1"))
	if got := sess.Config(); got != (focus.TimerConfig{FocusMinutes: 25, BreakMinutes: 5}) {
		t.Fatalf("config: %+v", got)
	}
}

func TestAppMuteKey(t *testing.T) {
	app, sess := newTestApp(t)

	app, _ = press(t, app, runes("m"))
	if !sess.Preferences().Muted {
		t.Fatal("m should mute")
	}
	_, _ = press(t, app, runes("m"))
	if sess.Preferences().Muted {
		t.Fatal("m again should unmute")
	}
}

func TestAppTabCycles(t *testing.T) {
	app, _ := newTestApp(t)

	for _, want := range []viewState{viewStats, viewLog, viewSettings, viewTimer} {
		app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyTab})
		if app.activeView != want {
			t.Fatalf("got view %d, want %d", app.activeView, want)
		}
	}
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyShiftTab})
	if app.activeView != viewSettings {
		t.Fatalf("shift+tab from timer: got %d", app.activeView)
	}
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := press(t, app, runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

func TestAppLocaleFollowsPreferences(t *testing.T) {
	app, sess := newTestApp(t)

	p := sess.Preferences()
	p.Locale = focus.LocaleKorean
	if err := sess.UpdatePreferences(p); err != nil {
		t.Fatal(err)
	}
	app.sync()

	if app.tr.Locale() != focus.LocaleKorean {
		t.Fatalf("locale: got %q", app.tr.Locale())
	}
	if !strings.Contains(app.renderHeader(), "타이머") {
		t.Fatal("header should be translated")
	}
}

func TestAppSaveFailureStatus(t *testing.T) {
	t.Cleanup(func() { applyTheme(focus.DefaultPreferences()) })
	p := &testutil.MemoryPersister{Err: errors.New("disk full")}
	sess := focus.NewSession(focus.DefaultSnapshot(), p)
	app := NewApp(sess)
	app.width, app.height = 120, 40

	app, _ = press(t, app, runes("2"))
	if !app.statusErr {
		t.Fatal("save failure should be an error status")
	}
	if !strings.Contains(app.status, "disk full") {
		t.Fatalf("status: got %q", app.status)
	}
	if sess.Config().FocusMinutes != 50 {
		t.Fatal("in-memory state should survive a failed save")
	}
}

func TestAppViewStates(t *testing.T) {
	app, _ := newTestApp(t)

	// Test all views render without panic
	for v := viewTimer; v < viewCount; v++ {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t)

	header := app.renderHeader()
	for _, k := range viewKeys {
		if name := app.tr.T(k); !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppRenderFooter(t *testing.T) {
	app, _ := newTestApp(t)
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
	if !strings.Contains(footer, "25:00") {
		t.Fatal("footer should show the countdown")
	}
}

func TestAppLoadingState(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 0

	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

// ============================================================
// Export
// ============================================================

func TestAppExportPicker(t *testing.T) {
	app, _ := newTestApp(t)

	app, _ = press(t, app, runes("e"))
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyDown})
	if app.exportCursor != 1 {
		t.Fatalf("cursor: got %d", app.exportCursor)
	}
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyDown})
	if app.exportCursor != 1 {
		t.Fatal("cursor should stop at the last format")
	}
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppDoExport(t *testing.T) {
	app, sess := newTestApp(t)
	if _, err := sess.ResetPhase(true); err != nil {
		t.Fatal(err)
	}

	for format, ext := range []string{".csv", ".json"} {
		msg := app.doExport(format)()
		done, ok := msg.(exportDoneMsg)
		if !ok {
			t.Fatalf("format %d: got %T %+v", format, msg, msg)
		}
		if !strings.HasSuffix(done.path, ext) {
			t.Fatalf("path: got %q", done.path)
		}
		if _, err := os.Stat(done.path); err != nil {
			t.Fatalf("export file: %v", err)
		}
	}
}

func TestAppDoExportBadDir(t *testing.T) {
	app, _ := newTestApp(t)
	app.exportDir = "/nonexistent/dir"

	msg := app.doExport(0)()
	st, ok := msg.(statusMsg)
	if !ok || !st.isError {
		t.Fatalf("expected error status, got %+v", msg)
	}
}

// ============================================================
// Views
// ============================================================

func TestTimerViewShowsProgress(t *testing.T) {
	sess := newTestSession(t)
	tm := newTimerModel(sess)
	tm.setSize(100, 30)

	out := tm.view(i18n.For(focus.LocaleEnglish))
	for _, want := range []string{"25:00", "FOCUS", "paused", "0/3 Bronze"} {
		if !strings.Contains(out, want) {
			t.Fatalf("timer view missing %q", want)
		}
	}
}

func TestLogViewEmpty(t *testing.T) {
	sess := newTestSession(t)
	lm := newLogModel(sess)
	lm.setSize(100, 30)

	if out := lm.view(i18n.For(focus.LocaleEnglish)); !strings.Contains(out, "No sessions yet.") {
		t.Fatal("empty log should say so")
	}
}

func TestLogViewListsEntries(t *testing.T) {
	sess := newTestSession(t)
	sess.Start()
	if _, err := sess.ResetPhase(true); err != nil {
		t.Fatal(err)
	}
	lm := newLogModel(sess)
	lm.setSize(100, 30)

	out := lm.view(i18n.For(focus.LocaleEnglish))
	if !strings.Contains(out, "✗") || !strings.Contains(out, "Focus") {
		t.Fatalf("log view should list the abandoned phase:\n%s", out)
	}
}

func TestStatsView(t *testing.T) {
	sess := newTestSession(t)
	sm := newStatsModel(sess)
	sm.now = func() time.Time { return time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC) }
	sm.setSize(100, 30)

	if got := len(sm.summaries()); got != statsDays {
		t.Fatalf("summaries: got %d", got)
	}
	out := sm.view(i18n.For(focus.LocaleEnglish))
	for _, want := range []string{"Stats", "Bronze", "Focus minutes, last 7 days", "No sessions yet."} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats view missing %q", want)
		}
	}
}

func TestStatsViewChartsFocusMinutes(t *testing.T) {
	clock := testutil.FixedClock()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	sess := focus.NewSession(s.Load(), s, focus.WithClock(clock))
	if err := sess.ChangeDuration(1, 0); err != nil {
		t.Fatal(err)
	}
	sess.Start()
	for i := 0; i < 61; i++ {
		if err := sess.Tick(); err != nil {
			t.Fatal(err)
		}
	}

	sm := newStatsModel(sess)
	sm.now = clock.Now
	sm.setSize(100, 30)

	days := sm.summaries()
	if !hasFocusMinutes(days) {
		t.Fatal("today should have focus minutes")
	}
	out := sm.view(i18n.For(focus.LocaleEnglish))
	if strings.Contains(out, "No sessions yet.") {
		t.Fatal("chart should replace the empty placeholder")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsApply(t *testing.T) {
	sess := newTestSession(t)
	sm := newSettingsModel(sess)
	*sm.focusMinutes = "40"
	*sm.breakMinutes = "0"
	*sm.locale = "zh"
	*sm.theme = focus.ThemePlayful
	*sm.fontSize = "18"
	*sm.accessibleFont = true
	*sm.muted = true

	if err := sm.apply(); err != nil {
		t.Fatal(err)
	}
	if got := sess.Config(); got != (focus.TimerConfig{FocusMinutes: 40, BreakMinutes: 0}) {
		t.Fatalf("config: %+v", got)
	}
	want := focus.Preferences{Locale: "zh", Theme: focus.ThemePlayful, FontSize: 18, AccessibleFont: true, Muted: true}
	if got := sess.Preferences(); got != want {
		t.Fatalf("prefs: %+v", got)
	}
}

func TestSettingsApplyKeepsRunningTimer(t *testing.T) {
	sess := newTestSession(t)
	sess.Start()
	sm := newSettingsModel(sess)
	*sm.focusMinutes = "25"
	*sm.breakMinutes = "5"
	*sm.locale = "en"
	*sm.theme = focus.ThemePlayful
	*sm.fontSize = "14"

	if err := sm.apply(); err != nil {
		t.Fatal(err)
	}
	if !sess.Running() {
		t.Fatal("unchanged durations should not restart the phase")
	}
}

func TestSettingsApplyRejectsBadInput(t *testing.T) {
	sess := newTestSession(t)
	sm := newSettingsModel(sess)
	*sm.focusMinutes = "abc"
	*sm.breakMinutes = "5"
	*sm.fontSize = "14"

	if err := sm.apply(); err == nil {
		t.Fatal("expected error for non-numeric focus minutes")
	}
	if sess.Config() != focus.DefaultTimerConfig() {
		t.Fatal("config should be unchanged")
	}
}

func TestIntRange(t *testing.T) {
	v := intRange(1, 10)
	tests := []struct {
		in string
		ok bool
	}{
		{"1", true},
		{"10", true},
		{"0", false},
		{"11", false},
		{"", false},
		{"2.5", false},
	}
	for _, tt := range tests {
		if err := v(tt.in); (err == nil) != tt.ok {
			t.Errorf("intRange(%q): err=%v", tt.in, err)
		}
	}
}

// ============================================================
// Format helpers
// ============================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{59, "00:59"},
		{25 * 60, "25:00"},
		{3600, "1:00:00"},
		{24*3600 - 1, "23:59:59"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.secs); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h00m"},
		{135, "2h15m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.mins); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}

func TestRenderProgressBarClamps(t *testing.T) {
	if out := renderProgressBar(2, 10); !strings.Contains(out, "100%") {
		t.Fatalf("over-full bar: %q", out)
	}
	if out := renderProgressBar(-1, 10); !strings.Contains(out, "0%") {
		t.Fatalf("negative bar: %q", out)
	}
}

func TestRenderBadgeProgress(t *testing.T) {
	p := focus.Progression{Level: 1, Streak: 4, Badges: []focus.BadgeID{focus.BadgeBronze}}
	if out := renderBadgeProgress(p); !strings.Contains(out, "4/5 Silver") {
		t.Fatalf("got %q", out)
	}
	p.Badges = []focus.BadgeID{focus.BadgeBronze, focus.BadgeSilver, focus.BadgeGold}
	if out := renderBadgeProgress(p); !strings.Contains(out, "Gold") {
		t.Fatalf("got %q", out)
	}
}

func TestEventQueueDrain(t *testing.T) {
	q := &eventQueue{}
	q.push(focus.Event{Kind: focus.EventStarted})
	q.push(focus.Event{Kind: focus.EventPaused})

	if got := q.drain(); len(got) != 2 {
		t.Fatalf("drain: got %d", len(got))
	}
	if got := q.drain(); len(got) != 0 {
		t.Fatal("second drain should be empty")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles
// ============================================================

func TestApplyTheme(t *testing.T) {
	t.Cleanup(func() { applyTheme(focus.DefaultPreferences()) })

	p := focus.DefaultPreferences()
	p.Theme = focus.ThemePlayful
	applyTheme(p)
	if colorPrimary != "#FF6B00" {
		t.Fatalf("playful primary: got %q", colorPrimary)
	}

	p.AccessibleFont = true
	applyTheme(p)
	if colorPrimary != accessiblePalette.primary {
		t.Fatalf("accessible primary: got %q", colorPrimary)
	}
	if titleStyle.GetBold() {
		t.Fatal("accessible mode should not use bold")
	}

	p.Theme = "neon"
	p.AccessibleFont = false
	applyTheme(p)
	if colorPrimary != "#4A90E2" {
		t.Fatalf("unknown theme should fall back to soft: got %q", colorPrimary)
	}
}

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"timer", func() string { return timerStyle.Render("test") }},
		{"timerRunning", func() string { return timerRunningStyle.Render("test") }},
		{"timerPaused", func() string { return timerPausedStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
		{"phase", func() string { return phaseStyle(focus.PhaseBreak).Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
