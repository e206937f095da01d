package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/focusplus/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "focusplus",
		Short:         "Focus/break interval timer with XP, levels and badges",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	root.AddCommand(
		newRunCmd(),
		newStatsCmd(),
		newLogCmd(),
		newExportCmd(),
		newSetCmd(),
		newResetDataCmd(),
		newImportCmd(),
		newConfigCmd(),
	)
	return root
}

// runTUI hosts the session in the full-screen UI. The session is shut down
// after the program exits, however it exits.
func runTUI() error {
	a, err := openApp(os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(tui.NewApp(a.session), tea.WithAltScreen())
	_, runErr := p.Run()
	if runErr != nil {
		a.logger.Error("tui exited", "error", runErr)
	}

	if err := a.session.Shutdown(); err != nil {
		return errors.Join(runErr, fmt.Errorf("saving state: %w", err))
	}
	return runErr
}
