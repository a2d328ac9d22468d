// ABOUTME: Watch command for a live view of the board.
// ABOUTME: Re-renders the card list whenever the board signals a change.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/scraps/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the board live",
	Long:  `Display the board and re-render whenever scraps are added or removed, including changes made elsewhere. Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		renderBoard := func() {
			// ANSI clear screen and home.
			fmt.Print("\033[2J\033[H")
			scraps := brd.Scraps()
			if len(scraps) == 0 {
				fmt.Print(ui.FormatEmptyBoard())
				return
			}
			for _, scrap := range scraps {
				fmt.Print(ui.FormatCard(scrap, resolveScrap(cmd, scrap, nil)))
			}
		}

		renderBoard()
		for {
			select {
			case <-brd.Changes():
				renderBoard()
			case <-sig:
				return nil
			case <-cmd.Context().Done():
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
