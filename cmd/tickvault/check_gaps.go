// Copyright (c) 2024 Neomantra Corp

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nimblemarkets/tickvault/internal/missing"
)

// newCheckGapsCmd implements spec §6.3's "check-gaps" mode: a lightweight
// catalog-only check (C3's set-difference, no downloading) for a quick
// answer to "is there anything to back-fill" without driving C2. Like
// validate, it writes each date's missing-data report, which is what
// `tickvault download` then back-fills from.
func newCheckGapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-gaps",
		Short: "Report missing tick archives against the catalog without downloading (C3, unfiltered)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := setup(cmd)
			if err != nil {
				return err
			}

			report, err := missing.Detect(cmd.Context(), rc.store, rc.start, rc.end, missing.Filters{}, string(rc.cfg.DefaultFormat))
			if err != nil {
				return err
			}
			if report.TotalMissing == 0 {
				log.Info().Msg("no gaps found for this range")
				return nil
			}
			log.Info().
				Int("total_missing", report.TotalMissing).
				Int("days_with_missing", report.DaysWithMissing).
				Float64("coverage_percent", report.CoveragePercent).
				Msg("gaps found; run `tickvault download` to back-fill")
			return nil
		},
	}
	return cmd
}
