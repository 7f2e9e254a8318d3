package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cointracker/internal/app"
)

var (
	showLimit   int
	showRefresh bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the cached coins list",
	RunE: func(cmd *cobra.Command, args []string) error {
		if showLimit <= 0 {
			return fmt.Errorf("--limit must be greater than zero")
		}

		opts := app.ShowOptions{
			Limit:   showLimit,
			Refresh: showRefresh,
		}

		return getApp().Show(cmd.Context(), opts)
	},
}

func init() {
	showCmd.Flags().IntVar(&showLimit, "limit", 20, "Number of coins to display")
	showCmd.Flags().BoolVar(&showRefresh, "refresh", false, "Refresh from the network before displaying")
}
