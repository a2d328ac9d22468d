// ABOUTME: Remove command for deleting scraps.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/scraps/internal/ui"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a scrap",
	Long:  `Delete a scrap from the board. Removal happens only after the store confirms.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		scrap, err := st.GetByPrefix(cmd.Context(), userID, args[0])
		if err != nil {
			return fmt.Errorf("failed to get scrap: %w", err)
		}

		if !force {
			fmt.Printf("Delete %s scrap %q (%s)? [y/N] ", scrap.Type, scrap.Title(), scrap.ID.String()[:6])
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := brd.Delete(cmd.Context(), scrap.ID); err != nil {
			return fmt.Errorf("failed to delete scrap: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted scrap %s", scrap.ID.String()[:6])))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
