// Copyright (c) 2024 Neomantra Corp

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nimblemarkets/tickvault/internal/catalog"
	"github.com/nimblemarkets/tickvault/internal/download"
	"github.com/nimblemarkets/tickvault/internal/missing"
	"github.com/nimblemarkets/tickvault/internal/vendorapi"
)

func newFullPipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "full-pipeline",
		Short: "Run catalog generation, download, and missing-data detection in sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := setup(cmd)
			if err != nil {
				return err
			}
			if len(rc.exchanges) == 0 {
				return fmt.Errorf("--exchanges is required")
			}
			shardIndex, totalShards := shardFlags(cmd)
			format := string(rc.cfg.DefaultFormat)

			fetcher := vendorapi.CatalogAdapter{Client: rc.client}
			catReport, err := catalog.Generate(cmd.Context(), fetcher, rc.store, rc.exchanges, rc.start, rc.end, format)
			if err != nil {
				return fmt.Errorf("catalog stage: %w", err)
			}
			log.Info().Int("days_written", len(catReport.ByDate)).Msg("catalog stage complete")

			orch := download.NewOrchestrator(rc.client, rc.store, rc.cfg.MaxConcurrent, rc.cfg.RateLimitPerVM, rc.cfg.BatchSize)
			defer orch.Close()

			var targets []download.Target
			for d := rc.start; !d.After(rc.end); d = d.AddDate(0, 0, 1) {
				defs, err := catalog.ReadCatalogFile(cmd.Context(), rc.store, d.Format(dateLayout), format)
				if err != nil {
					return fmt.Errorf("download stage: %w", err)
				}
				targets = append(targets, download.BuildTargets(defs, d)...)
			}
			targets = download.FilterByShard(targets, shardIndex, totalShards)

			dlReport, err := orch.Download(cmd.Context(), targets)
			if err != nil {
				return fmt.Errorf("download stage: %w", err)
			}
			logDownloadReport(dlReport)

			missReport, err := missing.Detect(cmd.Context(), rc.store, rc.start, rc.end, missing.Filters{}, format)
			if err != nil {
				return fmt.Errorf("validation stage: %w", err)
			}
			log.Info().
				Int("total_missing", missReport.TotalMissing).
				Float64("coverage_percent", missReport.CoveragePercent).
				Msg("full pipeline complete")
			return nil
		},
	}
	return cmd
}
