package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbc-health/malaria-dashboard/internal/dashboard"
)

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	var (
		sel selection
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the facility table and monthly series to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := computeView(cmd.Context(), sel)
			if err != nil {
				return err
			}
			if out == "" {
				out = dashboard.ExportFilename(res.View)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := dashboard.WriteWorkbook(f, res.View); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d facilities to %s\n", len(res.View.Rows), out)
			return nil
		},
	}
	addSelectionFlags(cmd, &sel)
	cmd.Flags().StringVar(&out, "out", "", "output file (default: malaria_<district>_<from>-<to>.xlsx)")
	return cmd
}
