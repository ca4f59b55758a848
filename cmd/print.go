package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-asciitree/pkg/service"
	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

func NewPrintCmd(svc **service.Service) *cobra.Command {
	var nodeID string

	cmd := &cobra.Command{
		Use:   "print <name>",
		Short: "Print a stored document as a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			var (
				text string
				err  error
			)
			if nodeID != "" {
				text, err = s.RenderNode(args[0], tree.ID(nodeID))
			} else {
				text, err = s.Render(args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&nodeID, "node", "", "Print only the subtree under this node id")

	return cmd
}

func NewExportCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <name> [file]",
		Short: "Write a document as a diagram file with frontmatter",
		Long: `Export a stored document as a markdown-friendly diagram file with YAML
frontmatter. The file can be loaded back with atree load. Writes to stdout
when no file is given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := (*svc).Export(args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 || args[1] == "-" {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}
			if err := os.WriteFile(args[1], []byte(content), 0644); err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], args[1])
			return nil
		},
	}
	return cmd
}
