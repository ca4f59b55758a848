package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-asciitree/pkg/diagram"
	"github.com/mattsolo1/grove-asciitree/pkg/service"
	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

func NewNewCmd(svc **service.Service) *cobra.Command {
	var rootLabel string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty document",
		Long: `Create an empty stored document. The root label defaults to the
default_root setting.

Examples:
  atree new site
  atree new site --root my-site`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := s.New(args[0], rootLabel)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n%s\n", args[0], diagram.Generate(doc))
			return nil
		},
	}

	cmd.Flags().StringVar(&rootLabel, "root", "", "Root label")

	return cmd
}

func NewLoadCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <name> [file|-]",
		Short: "Store a diagram under a name",
		Long: `Parse a diagram and store it, replacing any document with the same name.
The input may start with YAML frontmatter; its root field overrides the
diagram's root line.

Examples:
  tree -F src | atree load src
  atree load layout notes/layout.md`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			text, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}

			doc, err := s.Import(args[0], text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s (%d nodes)\n", args[0], tree.Count(doc))
			return nil
		},
	}
	return cmd
}
