package cmd

import (
	"encoding/json"
	"fmt"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-core/version"
	"github.com/spf13/cobra"
)

var versionUlog = grovelogging.NewUnifiedLogger("atree.cmd.version")

func NewVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display the version, commit, branch, and build information for atree",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()

			pretty := info.String()
			if jsonOutput {
				jsonData, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal version info to JSON: %w", err)
				}
				pretty = string(jsonData)
			}

			versionUlog.Info("Version info").
				Field("version", info.Version).
				Field("commit", info.Commit).
				Field("branch", info.Branch).
				Pretty(pretty).
				PrettyOnly().
				Log(cmd.Context())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")

	return cmd
}
