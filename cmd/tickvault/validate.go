// Copyright (c) 2024 Neomantra Corp

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nimblemarkets/tickvault/internal/missing"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Detect missing tick archives against the catalog for a date range (C3)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := setup(cmd)
			if err != nil {
				return err
			}

			venues, _ := cmd.Flags().GetStringSlice("venues")
			instrumentTypes, _ := cmd.Flags().GetStringSlice("instrument-types")
			dataTypes, _ := cmd.Flags().GetStringSlice("data-types")
			filters := missing.Filters{Venues: venues, InstrumentTypes: instrumentTypes, Products: dataTypes}

			report, err := missing.Detect(cmd.Context(), rc.store, rc.start, rc.end, filters, string(rc.cfg.DefaultFormat))
			if err != nil {
				return err
			}

			log.Info().
				Int("total_missing", report.TotalMissing).
				Int("days_with_missing", report.DaysWithMissing).
				Float64("coverage_percent", report.CoveragePercent).
				Msg("missing-data detection complete")
			return nil
		},
	}
	return cmd
}
