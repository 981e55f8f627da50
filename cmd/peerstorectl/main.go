package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/peermall/peerstore/internal/config"
	"github.com/peermall/peerstore/internal/events"
	"github.com/peermall/peerstore/internal/factory"
	"github.com/peermall/peerstore/internal/logger"
	"github.com/peermall/peerstore/internal/medium"
	"github.com/peermall/peerstore/internal/store"
	"github.com/peermall/peerstore/internal/store/local"
)

var (
	cfg     *config.Config
	lg      zerolog.Logger
	med     medium.Medium
	bus     *events.Bus
	st      store.Store
	cleanup func() error

	rootCmd = &cobra.Command{
		Use:   "peerstorectl",
		Short: "Inspect and mutate the Peermall local record store",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real deployments set the variables directly.
			_ = godotenv.Load()

			var err error
			cfg, err = config.New()
			if err != nil {
				return err
			}
			lg = logger.New("peerstorectl", cfg.LogLevel)

			med, cleanup, err = factory.NewMedium(cmd.Context(), cfg, lg)
			if err != nil {
				return fmt.Errorf("open medium: %w", err)
			}
			bus = events.NewBus(cfg.EventBuffer)
			st = local.NewWithBus(med, bus)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
	}
)

// printJSON renders v to stdout with indentation.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, string(data))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
