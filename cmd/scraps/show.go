// ABOUTME: Show command for the enlarged detail view of one scrap.
// ABOUTME: Looks up by ID prefix and renders the full, unclamped content.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/scraps/internal/render"
	"github.com/harper/scraps/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a scrap",
	Long:  `Display one scrap in full, looked up by ID or a 6+ character prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		probeFlag, _ := cmd.Flags().GetBool("probe")

		scrap, err := st.GetByPrefix(cmd.Context(), userID, args[0])
		if err != nil {
			return fmt.Errorf("failed to get scrap: %w", err)
		}

		var prober render.Prober
		if probeFlag {
			prober = render.NewHTTPProber()
		}
		res := resolveScrap(cmd, scrap, prober)

		out, err := ui.FormatDetail(scrap, res, cfg.WordWrap)
		if err != nil {
			return fmt.Errorf("failed to render scrap: %w", err)
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("probe", false, "check image URLs and apply rendering fallbacks")
	rootCmd.AddCommand(showCmd)
}
