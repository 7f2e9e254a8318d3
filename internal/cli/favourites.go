package cli

import (
	"github.com/spf13/cobra"
)

var favouritesCmd = &cobra.Command{
	Use:   "favourites",
	Short: "Manage favourite coins",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().FavouriteList(cmd.Context())
	},
}

var favouritesToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle favourite membership for a coin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().FavouriteToggle(cmd.Context(), args[0])
	},
}

var favouritesAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a coin to favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().FavouriteSet(cmd.Context(), args[0], true)
	},
}

var favouritesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a coin from favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().FavouriteSet(cmd.Context(), args[0], false)
	},
}

var favouritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favourite coins",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().FavouriteList(cmd.Context())
	},
}

func init() {
	favouritesCmd.AddCommand(favouritesToggleCmd)
	favouritesCmd.AddCommand(favouritesAddCmd)
	favouritesCmd.AddCommand(favouritesRemoveCmd)
	favouritesCmd.AddCommand(favouritesListCmd)
}
