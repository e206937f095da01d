package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusplus/internal/focus"
	"github.com/sadopc/focusplus/internal/i18n"
)

const statsDays = 7

type statsModel struct {
	session *focus.Session
	width   int
	height  int
	now     func() time.Time
}

func newStatsModel(s *focus.Session) statsModel {
	return statsModel{session: s, now: time.Now}
}

func (r *statsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r statsModel) summaries() []focus.DaySummary {
	return focus.Summarize(r.session.Entries(), r.now(), statsDays, time.Local)
}

func (r statsModel) buildChart(days []focus.DaySummary) barchart.Model {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 30 {
		chartHeight = 14
	}

	chart := barchart.New(chartWidth, chartHeight)

	bars := make([]barchart.BarData, 0, len(days))
	for _, d := range days {
		bars = append(bars, barchart.BarData{
			Label: d.Date.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  "focus",
				Value: float64(d.FocusMinutes),
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func (r statsModel) view(tr *i18n.Translator) string {
	w := r.width - 4
	prog := r.session.Progression()
	totals := focus.SumTotals(r.session.Entries())
	days := r.summaries()

	header := titleStyle.Render(tr.T(i18n.Stats))

	progLine := fmt.Sprintf("%s %s   %s %s   %s %s",
		mutedStyle.Render(tr.T(i18n.XP)), highlightStyle.Render(fmt.Sprint(prog.Experience)),
		mutedStyle.Render(tr.T(i18n.Level)), highlightStyle.Render(fmt.Sprint(prog.Level)),
		mutedStyle.Render(tr.T(i18n.Streak)), highlightStyle.Render(fmt.Sprint(prog.Streak)),
	)

	badges := mutedStyle.Render(tr.T(i18n.Badges)+": ") + renderBadges(prog)

	totalLine := mutedStyle.Render(fmt.Sprintf("%s %d  ·  %s  ·  %s %d",
		tr.T(i18n.PhaseFocus), totals.FocusSessions,
		formatMinutes(totals.FocusMinutes),
		tr.T(i18n.Reset), totals.Abandoned,
	))

	chartTitle := subtitleStyle.Render(tr.T(i18n.Last7Days))
	chartView := mutedStyle.Render(tr.T(i18n.NoEntries))
	if hasFocusMinutes(days) {
		chartView = r.buildChart(days).View()
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", progLine, badges, totalLine, "", chartTitle, chartView, "", r.renderDayTable(days, tr),
		),
	)
}

func (r statsModel) renderDayTable(days []focus.DaySummary, tr *i18n.Translator) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-10s %8s %8s %6s", "", tr.T(i18n.PhaseFocus), tr.T(i18n.PhaseBreak), tr.T(i18n.XP))))
	for _, d := range days {
		rows = append(rows, fmt.Sprintf("  %-10s %8s %8s %6d",
			d.Date.Format("Mon 01/02"),
			formatMinutes(d.FocusMinutes),
			formatMinutes(d.BreakMinutes),
			d.ExperienceGain,
		))
	}
	return strings.Join(rows, "\n")
}

func hasFocusMinutes(days []focus.DaySummary) bool {
	for _, d := range days {
		if d.FocusMinutes > 0 {
			return true
		}
	}
	return false
}

// renderBadges lists the catalog, earned badges highlighted.
func renderBadges(p focus.Progression) string {
	var items []string
	for _, b := range focus.BadgeCatalog {
		if p.HasBadge(b.ID) {
			items = append(items, successStyle.Render("★ "+string(b.ID)))
		} else {
			items = append(items, mutedStyle.Render(fmt.Sprintf("☆ %s (%d)", b.ID, b.Threshold)))
		}
	}
	return strings.Join(items, "  ")
}
