package focus

import "time"

// DaySummary aggregates one calendar day of the log.
type DaySummary struct {
	Date           time.Time // midnight in the requested location
	FocusMinutes   int       // natural focus completions only
	BreakMinutes   int
	Completed      int
	Abandoned      int
	ExperienceGain int
}

// Summarize buckets entries into days consecutive days ending with the day
// containing now, in loc. Entries outside the window are ignored.
func Summarize(entries []LogEntry, now time.Time, days int, loc *time.Location) []DaySummary {
	if days <= 0 {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	last := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	first := last.AddDate(0, 0, -(days - 1))

	out := make([]DaySummary, days)
	for i := range out {
		out[i].Date = first.AddDate(0, 0, i)
	}

	for _, e := range entries {
		t := e.Time.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		if day.Before(first) || day.After(last) {
			continue
		}
		idx := daysBetween(first, day)
		if idx < 0 || idx >= days {
			continue
		}
		s := &out[idx]
		if !e.Success {
			s.Abandoned++
			continue
		}
		s.Completed++
		s.ExperienceGain += e.Experience
		if e.Phase == PhaseFocus {
			s.FocusMinutes += e.Minutes
		} else {
			s.BreakMinutes += e.Minutes
		}
	}
	return out
}

// daysBetween counts calendar days, tolerating DST shifts.
func daysBetween(a, b time.Time) int {
	n := 0
	for d := a; d.Before(b); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// Totals sums the whole log.
type Totals struct {
	FocusSessions   int
	FocusMinutes    int
	Abandoned       int
	ExperienceTotal int
}

func SumTotals(entries []LogEntry) Totals {
	var t Totals
	for _, e := range entries {
		if !e.Success {
			t.Abandoned++
			continue
		}
		t.ExperienceTotal += e.Experience
		if e.Phase == PhaseFocus {
			t.FocusSessions++
			t.FocusMinutes += e.Minutes
		}
	}
	return t
}
