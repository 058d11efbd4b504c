package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbc-health/malaria-dashboard/internal/caseimport"
	"github.com/rbc-health/malaria-dashboard/internal/config"
	"github.com/rbc-health/malaria-dashboard/internal/logging"
)

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	var cfg caseimport.Config

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a case report CSV into the Postgres case table",
		Long: `Replace the contents of the Postgres case table with a case report CSV.

The table is truncated first, so --wipe must be given explicitly. The whole
import runs in one transaction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.CSVPath == "" || cfg.DatabaseURL == "" {
				return errors.New("--csv and --db are required")
			}

			log, err := logging.New("info", "console")
			if err != nil {
				return err
			}
			defer log.Sync()

			n, err := caseimport.Run(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d case reports into %s\n", n, cfg.Table)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.CSVPath, "csv", "", "path to the case report CSV")
	cmd.Flags().StringVar(&cfg.DatabaseURL, "db", "", "DATABASE_URL of the case database")
	cmd.Flags().StringVar(&cfg.Table, "table", config.DefaultCasesTable, "destination table")
	cmd.Flags().IntVar(&cfg.BatchSize, "batch", 500, "rows per insert")
	cmd.Flags().BoolVar(&cfg.Wipe, "wipe", false, "DANGER: truncates the case table before importing")
	cmd.Flags().BoolVar(&cfg.Quiet, "quiet", false, "hide the progress bar")
	return cmd
}
