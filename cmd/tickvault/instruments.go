// Copyright (c) 2024 Neomantra Corp

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nimblemarkets/tickvault/internal/catalog"
	"github.com/nimblemarkets/tickvault/internal/vendorapi"
)

func newInstrumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instruments",
		Short: "Generate the instrument catalog for a date range (C1)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := setup(cmd)
			if err != nil {
				return err
			}
			if aggregateOnly, _ := cmd.Flags().GetBool("aggregate-only"); aggregateOnly {
				path, err := catalog.RegenerateAggregate(cmd.Context(), rc.store, rc.start, rc.end, string(rc.cfg.DefaultFormat))
				if err != nil {
					return err
				}
				log.Info().Str("aggregate_path", path).Msg("aggregate catalog regenerated from per-day files")
				return nil
			}
			if len(rc.exchanges) == 0 {
				return fmt.Errorf("--exchanges is required")
			}

			fetcher := vendorapi.CatalogAdapter{Client: rc.client}
			report, err := catalog.Generate(cmd.Context(), fetcher, rc.store, rc.exchanges, rc.start, rc.end, string(rc.cfg.DefaultFormat))
			if err != nil {
				return err
			}

			log.Info().
				Int("days_written", len(report.ByDate)).
				Int("parse_failures", len(report.ParseFailures)).
				Int("skipped_aggregate", report.SkippedAggregate).
				Int("skipped_filters", report.SkippedFilters).
				Str("aggregate_path", report.AggregatePath).
				Msg("catalog generation complete")
			if report.AggregateError != nil {
				log.Warn().Err(report.AggregateError).Msg("aggregate catalog write failed, per-day files remain authoritative")
			}
			return nil
		},
	}
	cmd.Flags().Bool("aggregate-only", false, "rebuild the aggregate catalog file from existing per-day files without querying the vendor")
	return cmd
}
