package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-asciitree/internal/tui/editor"
	"github.com/mattsolo1/grove-asciitree/pkg/service"
)

// NewEditCmd creates the `atree edit` command.
func NewEditCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit a stored document interactively",
		Long: `Open a stored document in an interactive editor. Every change is saved
immediately. Press ? inside the editor for the key bindings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("edit mode requires an interactive terminal")
			}

			model, err := editor.New(*svc, args[0])
			if err != nil {
				return err
			}

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running editor: %w", err)
			}
			return nil
		},
	}
	return cmd
}
