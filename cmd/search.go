package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-asciitree/pkg/service"
)

func NewSearchCmd(svc **service.Service) *cobra.Command {
	var (
		searchDoc   string
		searchLimit int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search node names",
		Long: `Search node names across stored documents, ignoring case.

Examples:
  atree search readme
  atree search main.go --doc backend`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			var opts []service.SearchOption
			if searchDoc != "" {
				opts = append(opts, service.InDocument(searchDoc))
			}
			opts = append(opts, service.WithLimit(searchLimit))

			results, err := (*svc).Search(query, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No results found")
				return nil
			}

			fmt.Fprintf(out, "Found %d results:\n\n", len(results))
			for i, m := range results {
				fmt.Fprintf(out, "%d. %s\n", i+1, m.Name)
				fmt.Fprintf(out, "   %s: %s [%s, %s]\n", m.Document, m.Path, m.NodeID, m.Kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&searchDoc, "doc", "", "Search only this document")
	cmd.Flags().IntVarP(&searchLimit, "limit", "n", 50, "Maximum number of results")

	return cmd
}
