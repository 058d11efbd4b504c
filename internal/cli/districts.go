package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rbc-health/malaria-dashboard/internal/dataset"
)

// DistrictsCmd returns the districts command
func DistrictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "districts",
		Short: "Load the data and list districts and the year range",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.log.Sync()

			store, err := s.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			printDistricts(cmd.OutOrStdout(), store)
			return nil
		},
	}
}

func printDistricts(w io.Writer, store *dataset.Store) {
	minYear, maxYear := store.YearRange()
	fmt.Fprintf(w, "%d joined records, years %d-%d\n\n", store.Len(), minYear, maxYear)
	for _, d := range store.Districts() {
		marker := " "
		if d == store.DefaultDistrict() {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, d)
	}
}
