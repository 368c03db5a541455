package cmd

import (
	"github.com/spf13/cobra"

	"github.com/future-self-ai/backend/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a futureself config file interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
