package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-asciitree/pkg/service"
)

func NewRemoveCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <name>...",
		Aliases: []string{"remove"},
		Short:   "Remove stored documents",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			for _, name := range args {
				if err := s.Remove(name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
			}
			return nil
		},
	}
	return cmd
}

func NewMoveDocCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mvdoc <old-name> <new-name>",
		Short: "Rename a stored document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).RenameDocument(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], args[1])
			return nil
		},
	}
	return cmd
}
