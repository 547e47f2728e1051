package commands

import (
	"securities_master/internal/app/di"

	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Scrape the constituents table and reconcile the symbol table",
	Long: `Downloads the S&P 500 constituents table, maps each row onto a symbol and
reconciles it against the stored rows in one transaction: new symbols are
inserted, changed ones overwritten, identical ones left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := di.OpenDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDatabase(gdb)

		res, err := di.NewSymbolIngest(gdb, cfg).Ingest(cmd.Context())
		if err != nil {
			return err
		}
		log.Info("symbols reconciled", "inserted", res.Inserted, "updated", res.Updated, "unchanged", res.Unchanged)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}
