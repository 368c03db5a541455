package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "futureself",
	Short: "Career-advice backend that answers as the user's future self",
	Long: `Futureself answers career questions in the voice of the user ten years
from now. It retrieves career facts with a hybrid semantic/lexical index,
asks a configured AI backend to respond in character, and falls back to
deterministic responses when no backend is available.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".futureself.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
