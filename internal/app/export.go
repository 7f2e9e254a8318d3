package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"cointracker/internal/domain"
	"cointracker/internal/usecase"
)

// Chart fetches a coin's price history and prints its range; with --png or
// --csv it also exports the series.
func (a *App) Chart(ctx context.Context, opts ChartOptions) error {
	if opts.CoinID == "" {
		return errors.New("coin id is required")
	}
	opts.MaxPoints = a.Config.ResolveMaxPoints(opts.MaxPoints)

	coinCache, favCache, closeStore, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := a.newRepos(coinCache, favCache)

	res := (usecase.GetCoinChart{Repo: deps.chart}).Execute(ctx, opts.CoinID, opts.Period)
	if res.IsError() {
		msg, _ := res.Message()
		return errors.New(msg)
	}

	coinChart := res.MustValue()
	printChartSummary(opts, coinChart)

	if len(coinChart.Prices) == 0 {
		return nil
	}

	prices := downsamplePrices(coinChart.Prices, opts.MaxPoints)

	if opts.CSVPath != "" {
		if err := writeChartCSV(opts.CSVPath, prices); err != nil {
			return err
		}
	}
	if opts.PNGPath != "" {
		if err := writeChartPNG(opts.PNGPath, opts.CoinID, prices); err != nil {
			return err
		}
	}
	return nil
}

func printChartSummary(opts ChartOptions, coinChart domain.CoinChart) {
	fmt.Fprintf(os.Stdout, "%s %s: %d points, change %s\n",
		opts.CoinID, opts.Period, len(coinChart.Prices), coinChart.Change.Display)
	// Min/Max are nil for an empty series; suppress the range line entirely.
	if coinChart.Min != nil && coinChart.Max != nil {
		fmt.Fprintf(os.Stdout, "range: %s .. %s\n", coinChart.Min.String(), coinChart.Max.String())
	}
}

func downsamplePrices(prices []domain.Price, max int) []domain.Price {
	if max <= 0 || len(prices) <= max {
		return prices
	}

	result := make([]domain.Price, 0, max)
	step := float64(len(prices)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(prices) {
			idx = len(prices) - 1
		}
		result = append(result, prices[idx])
	}
	return result
}

func writeChartCSV(path string, prices []domain.Price) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"index", "price"}); err != nil {
		return err
	}
	for i, price := range prices {
		if err := writer.Write([]string{strconv.Itoa(i), price.Amount.String()}); err != nil {
			return err
		}
	}
	return writer.Error()
}

func writeChartPNG(path, coinID string, prices []domain.Price) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]float64, len(prices))
	y := make([]float64, len(prices))
	for i, price := range prices {
		x[i] = float64(i)
		y[i] = price.Amount.InexactFloat64()
	}

	priceFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.2f")
	}
	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		YAxis: chart.YAxis{
			Name:           "Price",
			ValueFormatter: priceFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    coinID,
				XValues: x,
				YValues: y,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
