package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/focusplus/internal/focus"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Totals     jsonTotals  `json:"totals"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonTotals struct {
	FocusSessions int `json:"focus_sessions"`
	FocusMinutes  int `json:"focus_minutes"`
	Abandoned     int `json:"abandoned"`
	XP            int `json:"xp"`
}

type jsonEntry struct {
	Time    string `json:"time"`
	Type    string `json:"type"`
	Minutes int    `json:"minutes"`
	XP      int    `json:"xp"`
	Success bool   `json:"success"`
}

// WriteJSON writes the log and its totals as one indented document.
func WriteJSON(w io.Writer, entries []focus.LogEntry) error {
	totals := focus.SumTotals(entries)
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
		Totals: jsonTotals{
			FocusSessions: totals.FocusSessions,
			FocusMinutes:  totals.FocusMinutes,
			Abandoned:     totals.Abandoned,
			XP:            totals.ExperienceTotal,
		},
		Entries: make([]jsonEntry, 0, len(entries)),
	}

	for _, e := range entries {
		export.Entries = append(export.Entries, jsonEntry{
			Time:    e.Time.UTC().Format(time.RFC3339),
			Type:    e.Phase.String(),
			Minutes: e.Minutes,
			XP:      e.Experience,
			Success: e.Success,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func ToJSON(entries []focus.LogEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	if err := WriteJSON(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("write json file: %w", err)
	}
	return f.Close()
}
