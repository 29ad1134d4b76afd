// Copyright (c) 2024 Neomantra Corp

// Package gap implements C4: it turns C3's missing-data reports back into
// download targets and drives C2 to back-fill exactly what is missing.
package gap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nimblemarkets/tickvault/internal/catalog"
	"github.com/nimblemarkets/tickvault/internal/download"
	"github.com/nimblemarkets/tickvault/internal/missing"
	"github.com/nimblemarkets/tickvault/internal/objectstore"
)

// Run reads each date's missing-data report in [startDate, endDate],
// rehydrates its rows into download.Target by rejoining the catalog,
// applies sharding if configured, and invokes orch.Download once over the
// accumulated targets.
func Run(ctx context.Context, store objectstore.Store, orch *download.Orchestrator, startDate, endDate time.Time, format string, shardIndex, totalShards int) (*download.DownloadReport, error) {
	var allTargets []download.Target

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")

		entries, err := missing.ReadReport(ctx, store, dateStr, format)
		if err != nil {
			return nil, fmt.Errorf("gap: read missing report for %s: %w", dateStr, err)
		}
		if len(entries) == 0 {
			continue
		}

		defs, err := catalog.ReadCatalogFile(ctx, store, dateStr, format)
		if err != nil {
			return nil, fmt.Errorf("gap: read catalog for %s: %w", dateStr, err)
		}
		byKey := make(map[string]catalog.InstrumentDefinition, len(defs))
		for _, def := range defs {
			byKey[def.InstrumentKey] = def
		}

		for _, e := range entries {
			def, ok := byKey[e.InstrumentKey]
			if !ok {
				log.Warn().Str("instrument_key", e.InstrumentKey).Str("date", dateStr).Msg("missing entry has no catalog match, skipping")
				continue
			}
			allTargets = append(allTargets, download.Target{
				InstrumentKey:  def.InstrumentKey,
				VendorExchange: def.VendorExchange,
				VendorSymbol:   def.VendorSymbol,
				Product:        e.Product,
				Date:           d,
			})
		}
	}

	allTargets = download.FilterByShard(allTargets, shardIndex, totalShards)

	return orch.Download(ctx, allTargets)
}
