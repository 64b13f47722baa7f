package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"examgen/internal/ui"
)

// runInteractive launches the Bubble Tea form. Non-TTY callers are pointed at
// the generate subcommand instead of getting a garbled alt screen.
func runInteractive(cfgPath string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("stdout is not a terminal; use `examgen generate` for scripted use")
	}

	d, err := buildDeps(cfgPath, "", false)
	if err != nil {
		return err
	}
	defer d.close()

	program := tea.NewProgram(ui.NewModel(d.service), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
