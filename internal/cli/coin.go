package cli

import (
	"github.com/spf13/cobra"
)

var coinCmd = &cobra.Command{
	Use:   "coin <id>",
	Short: "Display detail data for one coin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Details(cmd.Context(), args[0])
	},
}
