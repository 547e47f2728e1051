package commands

import (
	"fmt"
	"strings"
	"time"

	"securities_master/internal/app/di"
	"securities_master/internal/feature/prices/domain/entity"
	"securities_master/internal/feature/prices/usecase"

	"github.com/spf13/cobra"
)

var (
	priceDays    int
	priceTickers []string
	priceOnError string
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Download daily bars for the stored symbols",
	Long: `Fetches daily OHLCV bars for every stored symbol (or only --ticker) and
replaces any stored bar on the same date. Requests are spaced by a random
delay. With --on-error=continue a failed ticker is logged and skipped, and
the job still exits non-zero at the end.

Examples:
  secmaster prices                     # full history from prices.start_date
  secmaster prices --days 10           # last ten calendar days
  secmaster prices -t MMM -t AAPL      # two tickers only`,
	Args: cobra.NoArgs,
	RunE: runPrices,
}

func init() {
	rootCmd.AddCommand(pricesCmd)

	pricesCmd.Flags().IntVar(&priceDays, "days", 0, "fetch only the last N calendar days (0 = from prices.start_date)")
	pricesCmd.Flags().StringSliceVarP(&priceTickers, "ticker", "t", nil, "restrict to these tickers")
	pricesCmd.Flags().StringVar(&priceOnError, "on-error", "", "continue or abort (default from prices.on_error)")
}

// priceRange resolves the inclusive fetch window.
func priceRange(days int, startDate string, now time.Time) (time.Time, time.Time, error) {
	to := entity.TruncateDay(now)
	if days < 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("--days must not be negative, got %d", days)
	}
	if days > 0 {
		return to.AddDate(0, 0, -days), to, nil
	}
	from, err := time.Parse(time.DateOnly, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %s is in the future", startDate)
	}
	return from, to, nil
}

func runPrices(cmd *cobra.Command, args []string) error {
	onError := priceOnError
	if onError == "" {
		onError = cfg.Prices.OnError
	}
	policy, err := usecase.ParseErrorPolicy(onError)
	if err != nil {
		return err
	}
	from, to, err := priceRange(priceDays, cfg.Prices.StartDate, time.Now())
	if err != nil {
		return err
	}
	tickers := make([]string, 0, len(priceTickers))
	for _, t := range priceTickers {
		tickers = append(tickers, strings.ToUpper(strings.TrimSpace(t)))
	}

	gdb, err := di.OpenDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(gdb)

	log.Info("price ingestion started",
		"from", from.Format(time.DateOnly), "to", to.Format(time.DateOnly), "policy", policy, "tickers", len(tickers))
	report, err := di.NewPriceIngest(gdb, cfg).IngestAll(cmd.Context(), usecase.IngestOptions{
		From:    from,
		To:      to,
		Tickers: tickers,
		Policy:  policy,
	})
	log.Info("price ingestion finished",
		"tickers", report.Tickers, "succeeded", report.Succeeded, "bars", report.Bars, "failed", len(report.Failed))
	return err
}
