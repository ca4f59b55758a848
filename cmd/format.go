package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-asciitree/pkg/diagram"
	"github.com/mattsolo1/grove-asciitree/pkg/service"
	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

func NewFormatCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [file|-]",
		Short: "Print a diagram in canonical form",
		Long: `Parse a tree diagram and print it back with canonical connectors and
indentation. Reads stdin when no file is given. Nothing is stored.

Examples:
  tree | atree format
  atree format layout.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, _, err := (*svc).Parse(text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), diagram.Generate(doc))
			return nil
		},
	}
	return cmd
}

func NewShowCmd(svc **service.Service) *cobra.Command {
	var (
		showYAML bool
		showIDs  bool
	)

	cmd := &cobra.Command{
		Use:   "show [file|-]",
		Short: "Print the parsed structure of a diagram",
		Long: `Parse a tree diagram and print the structure the parser recovered: one
line per node with its kind, or the full document as YAML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, _, err := (*svc).Parse(text)
			if err != nil {
				return err
			}

			if showYAML {
				data, err := tree.Encode(doc)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), describe(doc, showIDs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showYAML, "yaml", false, "Output the document as YAML")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Include node ids")

	return cmd
}

// describe lists every node indented by depth, e.g. "  main.go (file)".
func describe(doc tree.Document, ids bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", doc.Root())
	tree.Walk(doc, func(n *tree.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth+1))
		sb.WriteString(n.Name())
		if ids {
			fmt.Fprintf(&sb, " [%s]", n.ID())
		}
		fmt.Fprintf(&sb, " (%s", n.Kind())
		if n.IsDir() && !n.Expanded() {
			sb.WriteString(", collapsed")
		}
		sb.WriteString(")\n")
		return true
	})
	return sb.String()
}
