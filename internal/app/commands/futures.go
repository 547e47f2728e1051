package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"securities_master/internal/app/di"
	"securities_master/internal/feature/futures/domain"
	"securities_master/internal/feature/futures/domain/entity"
	"securities_master/internal/feature/futures/usecase"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	futuresRoot      string
	futuresMonths    string
	futuresStartYear int
	futuresEndYear   int
	futuresExpiries  []string
	futuresRollover  int
	futuresStart     string
	futuresOffline   bool
	futuresRows      int
)

var futuresCmd = &cobra.Command{
	Use:   "futures",
	Short: "Build a continuous futures series",
	Long: `Downloads every contract of --root between --start-year and --end-year,
stores each one as a Parquet file under futures.data_dir and blends them
into one continuous close series. Exposure moves linearly from each contract
to the next over the --rollover-days+1 business days before expiry.

Expiries default to the 15th of the contract month; pass exact dates with
--expiry.

Examples:
  secmaster futures --root ES --start-year 2023 --end-year 2024
  secmaster futures --expiry ESH2024=2024-03-15 --expiry ESM2024=2024-06-21
  secmaster futures --offline --rows 20`,
	Args: cobra.NoArgs,
	RunE: runFutures,
}

func init() {
	rootCmd.AddCommand(futuresCmd)

	year := time.Now().Year()
	futuresCmd.Flags().StringVar(&futuresRoot, "root", "", "root symbol (default from futures.root)")
	futuresCmd.Flags().StringVar(&futuresMonths, "months", "", "contract month letters (default from futures.months)")
	futuresCmd.Flags().IntVar(&futuresStartYear, "start-year", year-1, "first contract year")
	futuresCmd.Flags().IntVar(&futuresEndYear, "end-year", year, "last contract year")
	futuresCmd.Flags().StringArrayVar(&futuresExpiries, "expiry", nil, "exact expiry as CODE=YYYY-MM-DD (repeatable)")
	futuresCmd.Flags().IntVar(&futuresRollover, "rollover-days", -1, "roll length in business days (default from futures.rollover_days)")
	futuresCmd.Flags().StringVar(&futuresStart, "start", "", "first date of the series, YYYY-MM-DD (default earliest bar)")
	futuresCmd.Flags().BoolVar(&futuresOffline, "offline", false, "use stored contract files only")
	futuresCmd.Flags().IntVarP(&futuresRows, "rows", "n", 10, "number of most recent values to print")
}

// parseExpiries reads CODE=YYYY-MM-DD pairs.
func parseExpiries(pairs []string) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(pairs))
	for _, p := range pairs {
		code, date, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("expiry %q: want CODE=YYYY-MM-DD", p)
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		if _, err := domain.ParseContract(code); err != nil {
			return nil, err
		}
		d, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
		if err != nil {
			return nil, fmt.Errorf("expiry %q: %w", p, err)
		}
		out[code] = d
	}
	return out, nil
}

func runFutures(cmd *cobra.Command, args []string) error {
	root := futuresRoot
	if root == "" {
		root = cfg.Futures.Root
	}
	months := futuresMonths
	if months == "" {
		months = cfg.Futures.Months
	}
	rollover := futuresRollover
	if rollover < 0 {
		rollover = cfg.Futures.RolloverDays
	}
	if futuresRows < 1 {
		return fmt.Errorf("--rows must be at least 1, got %d", futuresRows)
	}

	contracts, err := domain.ContractCodes(root, futuresStartYear, futuresEndYear, months)
	if err != nil {
		return err
	}
	expiries, err := parseExpiries(futuresExpiries)
	if err != nil {
		return err
	}
	var start time.Time
	if futuresStart != "" {
		if start, err = time.Parse(time.DateOnly, futuresStart); err != nil {
			return fmt.Errorf("--start: %w", err)
		}
	}

	log.Info("building continuous series",
		"root", root, "contracts", len(contracts), "rollover_days", rollover, "offline", futuresOffline)
	res, err := di.NewContinuous(cfg).Build(cmd.Context(), usecase.BuildRequest{
		Contracts:    contracts,
		Expiries:     expiries,
		Start:        start,
		RolloverDays: rollover,
		Offline:      futuresOffline,
	})
	if err != nil {
		return err
	}
	log.Info("continuous series built", "days", len(res.Weights.Dates), "points", len(res.Series))
	return writeSeries(cmd.OutOrStdout(), root, res.Series, futuresRows)
}

func writeSeries(w io.Writer, root string, series []entity.Point, rows int) error {
	if len(series) == 0 {
		_, err := fmt.Fprintf(w, "%s: continuous series is empty\n", root)
		return err
	}
	if len(series) > rows {
		series = series[len(series)-rows:]
	}
	if _, err := fmt.Fprintf(w, "%-10s %14s\n", "date", root); err != nil {
		return err
	}
	for _, p := range series {
		if _, err := fmt.Fprintf(w, "%-10s %14s\n",
			p.Date.Format(time.DateOnly), decimal.NewFromFloat(p.Value).StringFixed(4)); err != nil {
			return err
		}
	}
	return nil
}
