// Copyright (c) 2024 Neomantra Corp

package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/relvacode/iso8601"
	"github.com/rs/zerolog/log"

	"github.com/nimblemarkets/tickvault/internal/objectstore"
	"github.com/nimblemarkets/tickvault/pkg/parquetio"
)

// maxLoggedParseFailures caps verbose per-symbol failure logging; the full
// count still lands in CatalogWriteReport regardless.
const maxLoggedParseFailures = 3

// CatalogFetcher is the vendorapi.Client surface Generate needs, narrowed
// so tests can supply a fixture catalog without a real HTTP client.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, exchange string) ([]ExchangeSymbolSource, error)
}

// ExchangeSymbolSource is the vendor wire shape Generate consumes; defined
// here (rather than imported from vendorapi) so this package has no
// dependency on the HTTP client, only on the shape of its response.
type ExchangeSymbolSource struct {
	ID             string
	Type           string
	AvailableSince string
	AvailableTo    string
}

// Generate implements C1's public operation: it fetches each exchange's
// vendor catalog once for the whole range, then for each date in
// [startDate, endDate] parses and filters every fetched symbol and writes
// the per-day catalog file, and finally writes the range's aggregate file.
// An exchange whose fetch fails is left out of every date in the range.
func Generate(ctx context.Context, fetcher CatalogFetcher, store objectstore.Store, exchanges []string, startDate, endDate time.Time, format string) (*CatalogWriteReport, error) {
	report := &CatalogWriteReport{ByDate: make(map[string]int)}

	var allDefs []InstrumentDefinition
	symbolsByExchange := make(map[string][]vendorSymbol)

	for _, exchange := range exchanges {
		raw, err := fetcher.FetchCatalog(ctx, exchange)
		if err != nil {
			// An exchange-level HTTP failure must not block other
			// exchanges for the same date.
			log.Error().Err(err).Str("exchange", exchange).Msg("catalog fetch failed")
			report.Warnings = append(report.Warnings, "exchange "+exchange+": "+err.Error())
			continue
		}
		parsed := make([]vendorSymbol, 0, len(raw))
		for _, s := range raw {
			sym, ok := toVendorSymbol(s)
			if !ok {
				report.ParseFailures = append(report.ParseFailures, ParseFailure{Venue: exchange, Symbol: s.ID, Type: s.Type, Reason: "malformed availableSince"})
				continue
			}
			parsed = append(parsed, sym)
		}
		symbolsByExchange[exchange] = parsed
	}

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		var dayDefs []InstrumentDefinition

		for _, exchange := range exchanges {
			for _, sym := range symbolsByExchange[exchange] {
				if skipAsAggregate(exchange, sym.ID) {
					report.SkippedAggregate++
					continue
				}
				if exchange == "deribit" && sym.Type == "combo" {
					report.SkippedFilters++
					continue
				}

				def, err := parseSymbol(exchange, sym)
				if err != nil {
					report.ParseFailures = append(report.ParseFailures, ParseFailure{Venue: exchange, Symbol: sym.ID, Type: sym.Type, Reason: err.Error()})
					if len(report.ParseFailures) <= maxLoggedParseFailures {
						log.Warn().Str("exchange", exchange).Str("symbol", sym.ID).Err(err).Msg("parse failure")
					}
					continue
				}
				if def == nil {
					// silent skip: combo symbol with no resolvable expiry
					continue
				}

				if isLeveragedToken(def.ExchangeRawSymbol) {
					report.SkippedFilters++
					continue
				}
				if !quoteAllowed(exchange, def.QuoteAsset) {
					report.SkippedFilters++
					continue
				}
				if !intersectsRange(def.AvailableFrom.Format("2006-01-02"), def.AvailableTo.Format("2006-01-02"), startDate.Format("2006-01-02"), endDate.Format("2006-01-02")) {
					report.SkippedDateRange++
					continue
				}
				if def.AvailableFrom.After(d) || def.AvailableTo.Before(d) {
					continue
				}

				dayDefs = append(dayDefs, *def)
			}
		}

		if len(dayDefs) == 0 {
			report.Warnings = append(report.Warnings, "no instruments generated for "+dateStr)
			continue
		}

		sort.Slice(dayDefs, func(i, j int) bool { return dayDefs[i].InstrumentKey < dayDefs[j].InstrumentKey })

		if err := writeCatalogFile(ctx, store, objectstore.CatalogByDatePath(dateStr, format), dayDefs); err != nil {
			log.Error().Err(err).Str("date", dateStr).Msg("catalog write failed")
			report.Warnings = append(report.Warnings, "write failed for "+dateStr+": "+err.Error())
			continue
		}
		report.ByDate[dateStr] = len(dayDefs)
		allDefs = append(allDefs, dayDefs...)
	}

	// The aggregate write is best-effort: per-day files are already the
	// system of record by this point.
	if len(allDefs) > 0 {
		aggPath := objectstore.CatalogAggregatePath(startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), format)
		if err := writeCatalogFile(ctx, store, aggPath, allDefs); err != nil {
			report.AggregateError = err
			log.Error().Err(err).Msg("aggregate catalog write failed (non-fatal)")
		} else {
			report.AggregatePath = aggPath
		}
	}

	return report, nil
}

func toVendorSymbol(s ExchangeSymbolSource) (vendorSymbol, bool) {
	since, err := iso8601.ParseString(s.AvailableSince)
	if err != nil {
		return vendorSymbol{}, false
	}
	sym := vendorSymbol{ID: s.ID, Type: s.Type, AvailableFrom: since}
	if s.AvailableTo != "" {
		if to, err := iso8601.ParseString(s.AvailableTo); err == nil {
			sym.AvailableTo = &to
		}
	}
	return sym, true
}

// WriteCatalogFile writes defs to the canonical per-date catalog path,
// exported for callers that already have a parsed catalog in hand (tests,
// RegenerateAggregate-style recovery tools) rather than a fetcher to run.
func WriteCatalogFile(ctx context.Context, store objectstore.Store, date, format string, defs []InstrumentDefinition) error {
	return writeCatalogFile(ctx, store, objectstore.CatalogByDatePath(date, format), defs)
}

func writeCatalogFile(ctx context.Context, store objectstore.Store, path string, defs []InstrumentDefinition) error {
	rows := make([]parquetio.Row, len(defs))
	for i, d := range defs {
		rows[i] = toRow(d)
	}
	data, err := parquetio.WriteRows(parquetio.CatalogSchema, rows)
	if err != nil {
		return err
	}
	return store.Put(ctx, path, data)
}

// ReadCatalogFile loads and decodes one date's catalog file, trying objectstore.CatalogFallbackPaths in order when the primary
// path is absent, per §6.1.
func ReadCatalogFile(ctx context.Context, store objectstore.Store, date, format string) ([]InstrumentDefinition, error) {
	paths := append([]string{objectstore.CatalogByDatePath(date, format)}, objectstore.CatalogFallbackPaths(date, format)...)

	var lastErr error
	for _, path := range paths {
		exists, err := store.Exists(ctx, path)
		if err != nil {
			lastErr = err
			continue
		}
		if !exists {
			continue
		}
		data, err := store.Get(ctx, path)
		if err != nil {
			lastErr = err
			continue
		}
		rows, err := parquetio.ReadRows(parquetio.CatalogSchema, data)
		if err != nil {
			lastErr = err
			continue
		}
		out := make([]InstrumentDefinition, 0, len(rows))
		for _, row := range rows {
			d, err := FromRow(row)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
		return out, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}

// RegenerateAggregate re-derives the aggregate catalog file from existing
// per-day files without re-querying the vendor — a cheap recovery
// operation worth keeping since the aggregate write is best-effort.
func RegenerateAggregate(ctx context.Context, store objectstore.Store, startDate, endDate time.Time, format string) (string, error) {
	var all []InstrumentDefinition
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		defs, err := ReadCatalogFile(ctx, store, d.Format("2006-01-02"), format)
		if err != nil {
			return "", err
		}
		all = append(all, defs...)
	}
	path := objectstore.CatalogAggregatePath(startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), format)
	if err := writeCatalogFile(ctx, store, path, all); err != nil {
		return "", err
	}
	return path, nil
}
