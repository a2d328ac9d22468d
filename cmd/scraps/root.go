// ABOUTME: Root command wiring config, identity, store, and board together.
// ABOUTME: Opens the configured backend before subcommands run, closes it after.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/scraps/internal/board"
	"github.com/harper/scraps/internal/config"
	"github.com/harper/scraps/internal/identity"
	"github.com/harper/scraps/internal/store"
	"github.com/harper/scraps/internal/store/local"
	"github.com/harper/scraps/internal/store/postgres"
	"github.com/harper/scraps/internal/ui"
)

var (
	cfg    *config.Config
	userID string
	st     store.Store
	brd    *board.Board
)

var rootCmd = &cobra.Command{
	Use:     "scraps",
	Short:   "A personal board for notes, images, links, and code",
	Long:    `scraps saves heterogeneous content to a personal board and keeps a local view in sync with the backing store.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		userID, err = identity.LoadOrCreate()
		if err != nil {
			return fmt.Errorf("failed to load identity: %w", err)
		}

		switch cfg.Backend {
		case config.BackendPostgres:
			st, err = postgres.Open(cmd.Context(), cfg.PostgresDSN)
		case config.BackendLocal:
			st, err = local.Open(cfg.ResolvedDataDir())
		default:
			return fmt.Errorf("unknown backend: %s", cfg.Backend)
		}
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}

		brd = board.New(st)
		if err := brd.Initialize(cmd.Context(), userID); err != nil {
			// The board stays usable with an empty list; surface the
			// fetch failure without aborting the command.
			fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("initial fetch failed: %v", err)))
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if brd != nil {
			brd.Teardown()
		}
		if st != nil {
			_ = st.Close()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}
