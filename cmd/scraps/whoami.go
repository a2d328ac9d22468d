// ABOUTME: Whoami command for the anonymous board identifier.
// ABOUTME: Shows the persisted identity; --reset generates a fresh one.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/scraps/internal/identity"
	"github.com/harper/scraps/internal/ui"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the board identifier",
	Long:  `Print the anonymous identifier that scopes your board. Resetting it starts an empty board; existing scraps stay under the old identifier.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reset, _ := cmd.Flags().GetBool("reset")

		if reset {
			if err := identity.Reset(); err != nil {
				return fmt.Errorf("failed to reset identity: %w", err)
			}
			fresh, err := identity.LoadOrCreate()
			if err != nil {
				return fmt.Errorf("failed to create identity: %w", err)
			}
			fmt.Println(ui.Success(fmt.Sprintf("New identity %s", fresh)))
			return nil
		}

		fmt.Println(userID)
		return nil
	},
}

func init() {
	whoamiCmd.Flags().Bool("reset", false, "generate a fresh identifier")
	rootCmd.AddCommand(whoamiCmd)
}
