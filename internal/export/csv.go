package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sadopc/focusplus/internal/focus"
)

// TimeLayout is the local wall-clock format used for exported timestamps.
const TimeLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"time", "type", "minutes", "xp", "success"}

// WriteCSV writes one header row and then one row per entry, in log order.
func WriteCSV(w io.Writer, entries []focus.LogEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.Time.Local().Format(TimeLayout),
			e.Phase.String(),
			strconv.Itoa(e.Minutes),
			strconv.Itoa(e.Experience),
			strconv.FormatBool(e.Success),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ToCSV(entries []focus.LogEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	if err := WriteCSV(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}
