package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-asciitree/pkg/service"
	"github.com/mattsolo1/grove-asciitree/pkg/store"
)

func NewListCmd(svc **service.Service) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := (*svc).List()
			if err != nil {
				return err
			}

			if listJSON {
				if entries == nil {
					entries = []*store.Entry{}
				}
				return outputJSON(cmd, entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No documents found")
				return nil
			}
			printEntriesTable(cmd, entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	return cmd
}

func printEntriesTable(cmd *cobra.Command, entries []*store.Entry) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "NAME\tROOT\tNODES\tMODIFIED")
	fmt.Fprintln(w, "--------------------\t---------------\t-----\t----------------")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			truncateString(e.Name, 20),
			truncateString(e.Root, 15),
			e.Nodes,
			e.ModifiedAt.Local().Format("2006-01-02 15:04"))
	}

	w.Flush()
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
