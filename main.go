package main

import (
	"fmt"
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-asciitree/cmd"
	"github.com/mattsolo1/grove-asciitree/cmd/config"
	"github.com/mattsolo1/grove-asciitree/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := cli.NewStandardCommand(
		"atree",
		"Parse, edit and regenerate ASCII directory trees",
	)
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.ResolveVerbose(cmd)
		config.InitConfig()

		var err error
		svc, err = config.InitService()
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		return nil
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if svc != nil {
			return svc.Close()
		}
		return nil
	}

	cmd.AddCommands(rootCmd, &svc)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
