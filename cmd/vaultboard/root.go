package main

import (
	"github.com/spf13/cobra"
	"github.com/vaultboard/vaultboard/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "vaultboard",
	Short:         "vaultboard serves a dashboard of yield vaults and their strategies.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		structured := commandUsesStructuredLogging(cmd)
		setCommandExecutionContext(commandExecutionContext{
			CommandPath:       cmd.CommandPath(),
			UsesStructuredLog: structured,
		})
		if !structured {
			return nil
		}
		_, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: cmd.CommandPath()})
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, strategiesCmd, vaultsCmd, chainsCmd)
}
