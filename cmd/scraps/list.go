// ABOUTME: List command for displaying the board as a card list.
// ABOUTME: Resolves a render variant per scrap; --probe checks image URLs.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/render"
	"github.com/harper/scraps/internal/ui"
)

const defaultListLimit = 20

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scraps",
	Long:  `List scraps on the board, newest first, optionally filtered by type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		typeFlag, _ := cmd.Flags().GetString("type")
		limitFlag, _ := cmd.Flags().GetInt("limit")
		probeFlag, _ := cmd.Flags().GetBool("probe")

		if err := brd.Err(); err != nil {
			return fmt.Errorf("board unavailable: %w", err)
		}

		scraps := brd.Scraps()
		if typeFlag != "" {
			filtered := scraps[:0]
			for _, s := range scraps {
				if string(s.Type) == typeFlag {
					filtered = append(filtered, s)
				}
			}
			scraps = filtered
		}
		if limitFlag > 0 && len(scraps) > limitFlag {
			scraps = scraps[:limitFlag]
		}

		if len(scraps) == 0 {
			fmt.Print(ui.FormatEmptyBoard())
			return nil
		}

		var prober render.Prober
		if probeFlag {
			prober = render.NewHTTPProber()
		}

		for _, scrap := range scraps {
			res := resolveScrap(cmd, scrap, prober)
			fmt.Print(ui.FormatCard(scrap, res))
		}
		return nil
	},
}

// resolveScrap computes the render variant, probing image URLs when a
// prober is available so load failures advance the fallback chain.
func resolveScrap(cmd *cobra.Command, scrap models.Scrap, prober render.Prober) render.Resolution {
	flags := render.Flags{}
	if prober != nil {
		switch scrap.Type {
		case models.TypeImage:
			if scrap.Image != nil {
				flags = render.SettleImage(cmd.Context(), prober, scrap.Image)
			}
		case models.TypeLink:
			if scrap.Link != nil {
				flags.LinkState = render.SettleLink(cmd.Context(), prober, scrap.Link)
			}
		}
	}
	return render.Resolve(scrap, flags)
}

func init() {
	listCmd.Flags().String("type", "", "filter by scrap type (note, image, link, code)")
	listCmd.Flags().Int("limit", defaultListLimit, "max scraps to show")
	listCmd.Flags().Bool("probe", false, "check image URLs and apply rendering fallbacks")
	rootCmd.AddCommand(listCmd)
}
