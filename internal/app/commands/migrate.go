package commands

import (
	"securities_master/internal/app/di"
	"securities_master/internal/platform/db"

	"github.com/spf13/cobra"
)

// migrateCmd creates the schema and seeds the reference rows
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Creates the exchange, data_vendor, symbol, daily_price and schema_version
tables and seeds the reference rows. Running it again is a no-op.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := di.OpenDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDatabase(gdb)

		log.Info("schema ready", "version", db.CurrentSchemaVersion, "driver", cfg.Database.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
