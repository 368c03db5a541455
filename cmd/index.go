package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/future-self-ai/backend/internal/career"
	"github.com/future-self-ai/backend/internal/config"
	"github.com/future-self-ai/backend/internal/embeddings"
	"github.com/future-self-ai/backend/internal/progress"
	"github.com/future-self-ai/backend/internal/retrieval"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed the career knowledge base and persist the index",
	Long: `Decomposes the career catalog into chunks, embeds them with the
configured embedding provider, and writes the dense index to the data
directory so serve and ask can start without re-embedding.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.EmbeddingProvider == "" {
			return fmt.Errorf("no embedding provider configured; nothing to index")
		}

		careers, err := loadCareers(cfg)
		if err != nil {
			return fmt.Errorf("loading careers: %w", err)
		}

		var chunks []retrieval.Chunk
		for _, id := range career.IDs(careers) {
			chunks = append(chunks, career.Chunks(id, careers[id])...)
		}
		if len(chunks) == 0 {
			return fmt.Errorf("career catalog produced no chunks")
		}

		embedder, err := embeddings.New(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}
		idx, err := retrieval.NewChromemIndex(embedder)
		if err != nil {
			return fmt.Errorf("creating dense index: %w", err)
		}

		reporter := progress.NewReporter()
		reporter.Start(len(chunks))
		err = idx.IndexWithProgress(cmd.Context(), chunks, func(done int) {
			reporter.Update(done, chunks[done-1].Metadata.CareerID)
		})
		reporter.Finish()
		if err != nil {
			return fmt.Errorf("embedding chunks: %w", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		if err := idx.Persist(cfg.DataDir); err != nil {
			return fmt.Errorf("persisting index: %w", err)
		}

		fmt.Printf("Indexed %d chunks across %d careers into %s\n", len(chunks), len(careers), cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
