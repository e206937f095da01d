package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sadopc/focusplus/internal/config"
	"github.com/sadopc/focusplus/internal/export"
	"github.com/sadopc/focusplus/internal/focus"
	"github.com/sadopc/focusplus/internal/i18n"
	"github.com/sadopc/focusplus/internal/store"
)

// run command
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer without the full-screen UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			phases, _ := cmd.Flags().GetInt("phases")
			if phases < 0 {
				return fmt.Errorf("--phases must be 0 or more")
			}

			a, err := openApp(os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			live := false
			if f, ok := cmd.OutOrStdout().(*os.File); ok {
				live = term.IsTerminal(int(f.Fd()))
			}
			return runHeadless(ctx, a.session, focus.NewTicker(time.Second), cmd.OutOrStdout(), phases, live)
		},
	}
	cmd.Flags().IntP("phases", "p", 0, "Stop after this many completed phases (0 runs until interrupted)")
	return cmd
}

// runHeadless drives the session from a Ticker until ctx is done or the
// requested number of phases has completed. The session is always shut down
// before returning.
func runHeadless(ctx context.Context, sess *focus.Session, ticker *focus.Ticker, out io.Writer, phases int, live bool) error {
	tr := i18n.For(sess.Preferences().Locale)
	completed := 0
	unsubscribe := sess.Subscribe(func(e focus.Event) {
		switch e.Kind {
		case focus.EventPhaseCompleted:
			completed++
			if live {
				fmt.Fprint(out, "\r\033[K")
			}
			fmt.Fprintf(out, "%s  %s\n", e.Entry.Time.Local().Format("15:04:05"),
				tr.T(i18n.PhaseDone, tr.Phase(e.Entry.Phase), tr.Phase(e.Next)))
		case focus.EventBadgeEarned:
			if live {
				fmt.Fprint(out, "\r\033[K")
			}
			fmt.Fprintln(out, tr.T(i18n.BadgeMessage, string(e.Badge.ID)))
		case focus.EventSaveFailed:
			fmt.Fprintln(out, tr.T(i18n.StateSaveFailed, e.Err))
		}
	})
	defer unsubscribe()

	sess.Start()
	ticker.Resume()
	defer ticker.Suspend()

	for phases == 0 || completed < phases {
		select {
		case <-ctx.Done():
			if live {
				fmt.Fprintln(out)
			}
			return shutdown(sess)
		case <-ticker.C():
			// Save failures are printed by the subscriber and retried on the
			// next save.
			_ = sess.Tick()
			if live {
				st := sess.State()
				fmt.Fprintf(out, "\r\033[K%s %s", tr.Phase(st.Phase), formatRemaining(st.Remaining))
			}
		}
	}
	// The next phase has already started at full length. Stopping it here
	// keeps it out of the log.
	sess.Pause()
	return shutdown(sess)
}

func shutdown(sess *focus.Session) error {
	if err := sess.Shutdown(); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

func formatRemaining(secs int) string {
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// stats command
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show experience, streak, badges and the last 7 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(nil)
			if err != nil {
				return err
			}
			defer a.Close()
			return printStats(cmd.OutOrStdout(), a.session, time.Now())
		},
	}
}

func printStats(w io.Writer, sess *focus.Session, now time.Time) error {
	tr := i18n.For(sess.Preferences().Locale)
	prog := sess.Progression()
	totals := focus.SumTotals(sess.Entries())

	badges := make([]string, len(prog.Badges))
	for i, b := range prog.Badges {
		badges[i] = string(b)
	}
	if len(badges) == 0 {
		badges = []string{"-"}
	}

	fmt.Fprintf(w, "%-12s %d\n", tr.T(i18n.XP)+":", prog.Experience)
	fmt.Fprintf(w, "%-12s %d\n", tr.T(i18n.Level)+":", prog.Level)
	fmt.Fprintf(w, "%-12s %d\n", tr.T(i18n.Streak)+":", prog.Streak)
	fmt.Fprintf(w, "%-12s %s\n", tr.T(i18n.Badges)+":", strings.Join(badges, ", "))
	fmt.Fprintf(w, "%-12s %d (%d min), %d abandoned\n", tr.T(i18n.PhaseFocus)+":",
		totals.FocusSessions, totals.FocusMinutes, totals.Abandoned)

	fmt.Fprintf(w, "\n%s\n", tr.T(i18n.Last7Days))
	for _, d := range focus.Summarize(sess.Entries(), now, 7, time.Local) {
		fmt.Fprintf(w, "  %s  %4d min  %s\n", d.Date.Format("Mon 01/02"), d.FocusMinutes,
			strings.Repeat("█", min(d.FocusMinutes/5, 60)))
	}
	return nil
}

// log command
func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "List recent sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			a, err := openApp(nil)
			if err != nil {
				return err
			}
			defer a.Close()

			tr := i18n.For(a.session.Preferences().Locale)
			entries := a.session.RecentEntries(limit)
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), tr.T(i18n.NoEntries))
				return nil
			}
			for _, e := range entries {
				mark := "✓"
				if !e.Success {
					mark = "✗"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-6s %4d min  %3d xp\n",
					mark, e.Time.Local().Format(export.TimeLayout), e.Phase, e.Minutes, e.Experience)
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of entries to show")
	return cmd
}

// export command
func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the session log as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			format = strings.ToLower(format)
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}

			a, err := openApp(nil)
			if err != nil {
				return err
			}
			defer a.Close()
			entries := a.session.Entries()

			if out == "-" {
				if format == "csv" {
					return export.WriteCSV(cmd.OutOrStdout(), entries)
				}
				return export.WriteJSON(cmd.OutOrStdout(), entries)
			}
			if out == "" {
				out = fmt.Sprintf("focusplus-log-%s.%s", time.Now().Format("2006-01-02"), format)
			}

			if format == "csv" {
				err = export.ToCSV(entries, out)
			} else {
				err = export.ToJSON(entries, out)
			}
			if err != nil {
				return fmt.Errorf("exporting log: %w", err)
			}

			tr := i18n.For(a.session.Preferences().Locale)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tr.T(i18n.SessionLogSaved), out)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "csv", "Output format: csv or json")
	cmd.Flags().StringP("out", "o", "", "Output path (- for stdout)")
	return cmd
}

// set command
func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change durations and display preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(nil)
			if err != nil {
				return err
			}
			defer a.Close()
			return applySettings(cmd, a.session)
		},
	}
	cmd.Flags().Int("focus", 0, "Focus length in minutes")
	cmd.Flags().Int("break", 0, "Break length in minutes (0 disables breaks)")
	cmd.Flags().String("preset", "", "Duration preset: 25/5 or 50/10")
	cmd.Flags().String("locale", "", "Language: en, ko or zh")
	cmd.Flags().String("theme", "", "Theme: soft or playful")
	cmd.Flags().Int("font-size", 0, "Font size")
	cmd.Flags().Bool("accessible-font", false, "High-contrast display without bold text")
	cmd.Flags().Bool("mute", false, "Silence the terminal bell")
	return cmd
}

// applySettings validates every flag before the session changes. Unset
// flags keep their current values.
func applySettings(cmd *cobra.Command, sess *focus.Session) error {
	flags := cmd.Flags()
	cfg := sess.Config()
	prefs := sess.Preferences()

	if flags.Changed("preset") {
		name, _ := flags.GetString("preset")
		p, ok := focus.LookupPreset(name)
		if !ok {
			return fmt.Errorf("unknown preset %q", name)
		}
		cfg = p.Config
	}
	if flags.Changed("focus") {
		cfg.FocusMinutes, _ = flags.GetInt("focus")
	}
	if flags.Changed("break") {
		cfg.BreakMinutes, _ = flags.GetInt("break")
	}
	if flags.Changed("locale") {
		prefs.Locale, _ = flags.GetString("locale")
	}
	if flags.Changed("theme") {
		prefs.Theme, _ = flags.GetString("theme")
	}
	if flags.Changed("font-size") {
		prefs.FontSize, _ = flags.GetInt("font-size")
	}
	if flags.Changed("accessible-font") {
		prefs.AccessibleFont, _ = flags.GetBool("accessible-font")
	}
	if flags.Changed("mute") {
		prefs.Muted, _ = flags.GetBool("mute")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	prefs.Locale = focus.NormalizeLocale(prefs.Locale)
	if err := prefs.Validate(); err != nil {
		return err
	}

	if cfg != sess.Config() {
		if err := sess.ChangeDuration(cfg.FocusMinutes, cfg.BreakMinutes); err != nil {
			return err
		}
	}
	if prefs != sess.Preferences() {
		if err := sess.UpdatePreferences(prefs); err != nil {
			return err
		}
	}

	cfg, prefs = sess.Config(), sess.Preferences()
	tr := i18n.For(prefs.Locale)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %d\n", tr.T(i18n.FocusMin), cfg.FocusMinutes)
	fmt.Fprintf(w, "%s: %d\n", tr.T(i18n.BreakMin), cfg.BreakMinutes)
	fmt.Fprintf(w, "%s: %s\n", tr.T(i18n.Language), i18n.LanguageName(prefs.Locale))
	fmt.Fprintf(w, "%s: %s\n", tr.T(i18n.Theme), tr.ThemeName(prefs.Theme))
	fmt.Fprintf(w, "%s: %d\n", tr.T(i18n.FontSize), prefs.FontSize)
	fmt.Fprintf(w, "%s: %t\n", tr.T(i18n.DyslexiaFont), prefs.AccessibleFont)
	fmt.Fprintf(w, "%s: %t\n", tr.T(i18n.Mute), prefs.Muted)
	return nil
}

// reset-data command
func newResetDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-data",
		Short: "Delete all progress, history and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")

			a, err := openApp(nil)
			if err != nil {
				return err
			}
			defer a.Close()
			tr := i18n.For(a.session.Preferences().Locale)

			if !yes {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return errors.New("refusing to reset data without --yes on a non-interactive terminal")
				}
				err := huh.NewConfirm().
					Title(tr.T(i18n.ResetDataConfirm)).
					Affirmative(tr.T(i18n.Yes)).
					Negative(tr.T(i18n.No)).
					Value(&yes).
					Run()
				if err != nil {
					return fmt.Errorf("confirm reset: %w", err)
				}
				if !yes {
					return nil
				}
			}

			if err := a.session.ResetAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tr.T(i18n.DataCleared))
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// import command
func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <state.json>",
		Short: "Replace all data with a productivity_timer_state.json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := store.ImportLegacy(args[0], time.Local)
			if err != nil {
				return err
			}

			a, err := openApp(nil)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Save(snap); err != nil {
				return fmt.Errorf("saving imported state: %w", err)
			}
			a.logger.Info("legacy state imported", "path", args[0], "entries", len(snap.Log))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d log entries, %d XP, level %d, streak %d\n",
				len(snap.Log), snap.Progression.Experience, snap.Progression.Level, snap.Progression.Streak)
			return nil
		},
	}
}

// config command
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			cfg, err := config.Default()
			if err != nil {
				return err
			}
			if err := config.Init(path, cfg); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Configuration from %s:\n\n", path)
			fmt.Fprintf(w, "Data Dir:  %s\n", cfg.DataDir)
			fmt.Fprintf(w, "Database:  %s\n", cfg.DatabasePath())
			fmt.Fprintf(w, "Log File:  %s\n", filepath.Clean(cfg.LogFilePath()))
			fmt.Fprintf(w, "Log Level: %s\n", cfg.LogLevel)
			fmt.Fprintf(w, "Bell:      %t\n", cfg.Bell)
			return nil
		},
	})
	return configCmd
}
