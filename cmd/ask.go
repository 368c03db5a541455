package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/future-self-ai/backend/internal/config"
	"github.com/future-self-ai/backend/internal/persona"
)

var (
	askCareer string
	askName   string
	askAge    int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask your future self one question from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		careers, err := loadCareers(cfg)
		if err != nil {
			return fmt.Errorf("loading careers: %w", err)
		}

		ctx := cmd.Context()
		store, retriever, err := buildRetrieval(ctx, cfg, careers, true)
		if err != nil {
			return err
		}
		eng := buildEngine(cfg, careers, retriever)

		p := persona.Default()
		if askCareer != "" || askName != "" {
			p = persona.FromProfile(persona.Profile{Name: askName, Age: askAge}, askCareer)
		}

		question := strings.Join(args, " ")
		if verbose {
			fmt.Fprintf(os.Stderr, "Answering as %s (%s), %d chunks in the knowledge base\n",
				p.Name, p.CurrentRole, store.Len())
		}
		fmt.Println(eng.Answer(ctx, p, question, askCareer, "", nil))
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askCareer, "career", "", "career id (e.g. software_engineer)")
	askCmd.Flags().StringVar(&askName, "name", "", "your name, for the persona")
	askCmd.Flags().IntVar(&askAge, "age", 0, "your age, for the persona")
	rootCmd.AddCommand(askCmd)
}
