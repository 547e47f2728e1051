package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"securities_master/internal/app/di"
	"securities_master/internal/feature/prices/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var showRows int

var showCmd = &cobra.Command{
	Use:   "show TICKER",
	Short: "Print the latest stored bars of a ticker",
	Long: `Prints the last --rows stored daily bars of TICKER in date order.
TICKER must contain letters only.`,
	Args: showArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := di.OpenDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDatabase(gdb)

		bars, err := di.NewHistory(gdb).Tail(cmd.Context(), args[0], showRows)
		if err != nil {
			return err
		}
		return writeBars(cmd.OutOrStdout(), strings.ToUpper(args[0]), bars)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVarP(&showRows, "rows", "n", 5, "number of most recent bars")
}

// showArgs rejects a malformed ticker before anything is opened.
func showArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if _, err := entity.NormalizeTicker(args[0]); err != nil {
		return fmt.Errorf("%q: %w", args[0], err)
	}
	if showRows < 1 {
		return fmt.Errorf("--rows must be at least 1, got %d", showRows)
	}
	return nil
}

func writeBars(w io.Writer, ticker string, bars []entity.DailyBar) error {
	if len(bars) == 0 {
		_, err := fmt.Fprintf(w, "%s: no stored prices\n", ticker)
		return err
	}
	if _, err := fmt.Fprintf(w, "%-10s %12s %12s %12s %12s %12s %14s\n",
		"date", "open", "high", "low", "close", "adj_close", "volume"); err != nil {
		return err
	}
	for _, b := range bars {
		if _, err := fmt.Fprintf(w, "%-10s %12s %12s %12s %12s %12s %14d\n",
			b.Date.Format(time.DateOnly),
			fixed(b.Open), fixed(b.High), fixed(b.Low), fixed(b.Close), fixed(b.AdjClose),
			b.Volume); err != nil {
			return err
		}
	}
	return nil
}

// fixed renders a price with two decimals.
func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
