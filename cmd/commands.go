package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-asciitree/pkg/service"
)

// AddCommands attaches every subcommand to root. svc is filled in by the
// root's PersistentPreRunE before any of them run.
func AddCommands(root *cobra.Command, svc **service.Service) {
	root.AddCommand(NewFormatCmd(svc))
	root.AddCommand(NewShowCmd(svc))
	root.AddCommand(NewNewCmd(svc))
	root.AddCommand(NewLoadCmd(svc))
	root.AddCommand(NewPrintCmd(svc))
	root.AddCommand(NewListCmd(svc))
	root.AddCommand(NewRemoveCmd(svc))
	root.AddCommand(NewMoveDocCmd(svc))
	root.AddCommand(NewAddCmd(svc))
	root.AddCommand(NewDeleteCmd(svc))
	root.AddCommand(NewRenameCmd(svc))
	root.AddCommand(NewMoveCmd(svc))
	root.AddCommand(NewToggleCmd(svc))
	root.AddCommand(NewSetRootCmd(svc))
	root.AddCommand(NewSearchCmd(svc))
	root.AddCommand(NewExportCmd(svc))
	root.AddCommand(NewEditCmd(svc))
	root.AddCommand(NewVersionCmd())
}
