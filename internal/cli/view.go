package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rbc-health/malaria-dashboard/internal/analytics"
	"github.com/rbc-health/malaria-dashboard/internal/dashboard"
)

// ViewCmd returns the view command
func ViewCmd() *cobra.Command {
	var sel selection

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print the facility table and summary for a district",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := computeView(cmd.Context(), sel)
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), res)
			return nil
		},
	}
	addSelectionFlags(cmd, &sel)
	return cmd
}

func printView(w io.Writer, res analytics.Result) {
	v := res.View
	fmt.Fprintf(w, "%s %d-%d", v.District, v.Years.From, v.Years.To)
	if res.Status == analytics.StatusDegraded {
		fmt.Fprintf(w, " %s", color.New(color.FgYellow).Sprint("(degraded)"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	if len(v.Rows) == 0 {
		fmt.Fprintln(w, "No reports for this selection")
	} else {
		fmt.Fprintf(w, "%-30s %12s %14s %14s %10s\n", "FACILITY", "TOTAL", "AVERAGE", "MAXIMUM", "GROWTH")
		fmt.Fprintln(w, "──────────────────────────────────────────────────────────────────────────────────")
		for i, r := range v.Rows {
			fmt.Fprintf(w, "%-30s %12d %14.2f %14d %s\n",
				r.FacilityName, r.TotalCases, r.AverageCases, r.MaximumCases, growth(v.Markers[i].Growth))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total cases:     %s\n", dashboard.FormatCount(float64(v.Summary.TotalCases)))
	fmt.Fprintf(w, "Monthly average: %s\n", dashboard.FormatCount(v.Summary.AverageMonthly))
	fmt.Fprintf(w, "Period growth:   %s\n", growth(v.Summary.PeriodGrowth))
}

func growth(v float64) string {
	label := dashboard.GrowthLabel(v)
	if v >= 0 {
		return color.New(color.FgGreen).Sprint(label)
	}
	return color.New(color.FgRed).Sprint(label)
}
