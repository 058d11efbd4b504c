package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbc-health/malaria-dashboard/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "malariactl",
		Short: "Operator tools for the malaria cases dashboard",
		Long: `malariactl loads the same boundary, wetland and case data as the dashboard
service and prints, exports or imports it from the command line.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.DistrictsCmd())
	rootCmd.AddCommand(cli.ViewCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.ImportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
