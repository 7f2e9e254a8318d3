package cli

import (
	"github.com/spf13/cobra"

	"cointracker/internal/app"
	"cointracker/internal/domain"
)

var (
	chartPeriod    string
	chartPNGPath   string
	chartCSVPath   string
	chartMaxPoints int
)

var chartCmd = &cobra.Command{
	Use:   "chart <id>",
	Short: "Fetch a coin's price history and optionally export it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		period := chartPeriod
		if period == "" {
			period = getApp().Config.Export.DefaultPeriod
		}

		opts := app.ChartOptions{
			CoinID:    args[0],
			Period:    domain.ChartPeriod(period),
			PNGPath:   chartPNGPath,
			CSVPath:   chartCSVPath,
			MaxPoints: chartMaxPoints,
		}

		return getApp().Chart(cmd.Context(), opts)
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartPeriod, "period", "", "History period (1h, 24h, 7d, 30d, 3m, 1y, 5y; defaults to config)")
	chartCmd.Flags().StringVar(&chartPNGPath, "png", "", "Path to write PNG chart")
	chartCmd.Flags().StringVar(&chartCSVPath, "csv", "", "Path to write CSV data")
	chartCmd.Flags().IntVar(&chartMaxPoints, "max-points", 0, "Maximum data points to export (defaults to config)")
}
