package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-asciitree/pkg/diagram"
	"github.com/mattsolo1/grove-asciitree/pkg/service"
	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

func printDocument(cmd *cobra.Command, doc tree.Document) {
	fmt.Fprintln(cmd.OutOrStdout(), diagram.Generate(doc))
}

// NewAddCmd inserts a node. Node ids come from `atree show --ids` or
// `atree search`.
func NewAddCmd(svc **service.Service) *cobra.Command {
	var asChild bool

	cmd := &cobra.Command{
		Use:   "add <name> <target-id> <node-name>",
		Short: "Insert a node after a sibling or inside a directory",
		Long: `Insert a node into a stored document. Without --child the node is placed
right after target-id; with --child it becomes the last child of target-id,
which turns into a directory. Pass "" as target-id to append at the top
level. Names containing a dot become files, others directories.

Examples:
  atree add site node-2 index.html
  atree add site node-0 assets --child`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, id, err := (*svc).Insert(args[0], tree.ID(args[1]), asChild, args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", id)
			printDocument(cmd, doc)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asChild, "child", false, "Insert as the last child of the target")

	return cmd
}

func NewDeleteCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "del <name> <id>",
		Short: "Delete a node and everything below it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := (*svc).Apply(args[0], service.DeleteNode(tree.ID(args[1])))
			if err != nil {
				return err
			}
			printDocument(cmd, doc)
			return nil
		},
	}
	return cmd
}

func NewRenameCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <name> <id> <new-name>",
		Short: "Rename a node",
		Long: `Rename a node. A name containing a dot turns the node into a file and
drops its children.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := (*svc).Apply(args[0], service.RenameNode(tree.ID(args[1]), args[2]))
			if err != nil {
				return err
			}
			printDocument(cmd, doc)
			return nil
		},
	}
	return cmd
}

func NewMoveCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv <name> <id> up|down",
		Short: "Swap a node with its previous or next sibling",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, ok := tree.ParseDirection(args[2])
			if !ok {
				return fmt.Errorf("invalid direction %q: want up or down", args[2])
			}
			doc, err := (*svc).Apply(args[0], service.MoveNode(tree.ID(args[1]), dir))
			if err != nil {
				return err
			}
			printDocument(cmd, doc)
			return nil
		},
	}
	return cmd
}

func NewToggleCmd(svc **service.Service) *cobra.Command {
	var toggleAll bool

	cmd := &cobra.Command{
		Use:   "toggle <name> [id]",
		Short: "Expand or collapse a node",
		Long: `Flip the expanded state of one node, or with --all collapse everything
when the whole document is expanded and expand everything otherwise.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edit service.Edit
			switch {
			case toggleAll:
				edit = service.ToggleAll()
			case len(args) == 2:
				edit = service.ToggleNode(tree.ID(args[1]))
			default:
				return fmt.Errorf("need a node id or --all")
			}

			doc, err := (*svc).Apply(args[0], edit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), describe(doc, true))
			return nil
		},
	}

	cmd.Flags().BoolVar(&toggleAll, "all", false, "Expand or collapse every node")

	return cmd
}

func NewSetRootCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "root <name> <label>",
		Short: "Set the root label of a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := (*svc).Apply(args[0], service.SetRootLabel(args[1]))
			if err != nil {
				return err
			}
			printDocument(cmd, doc)
			return nil
		},
	}
	return cmd
}
