package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/future-self-ai/backend/internal/config"
	"github.com/future-self-ai/backend/internal/db"
	"github.com/future-self-ai/backend/internal/server"
	"github.com/future-self-ai/backend/internal/session"
)

var allowAllOrigins bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the futureself HTTP server",
	Long:  `Starts the HTTP API: career catalog, chat, resume analysis, and a websocket chat channel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if allowAllOrigins {
			cfg.AllowAll = true
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

		database, err := db.Open(filepath.Join(cfg.DataDir, "futureself.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		sessions := session.NewStore(database)
		srv := server.New(*cfg, careers, eng, sessions, store, retriever)

		// Sweep sessions idle for more than a day.
		sweepCtx, stopSweep := context.WithCancel(context.Background())
		defer stopSweep()
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-sweepCtx.Done():
					return
				case <-ticker.C:
					if n, err := sessions.DeleteIdle(sweepCtx, 24*time.Hour); err != nil {
						fmt.Fprintf(os.Stderr, "session cleanup: %v\n", err)
					} else if n > 0 {
						fmt.Fprintf(os.Stderr, "session cleanup: removed %d idle sessions\n", n)
					}
				}
			}
		}()

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-done
			stopSweep()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
			}
		}()

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&allowAllOrigins, "allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
