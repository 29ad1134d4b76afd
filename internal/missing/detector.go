// Copyright (c) 2024 Neomantra Corp

package missing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nimblemarkets/tickvault/internal/catalog"
	"github.com/nimblemarkets/tickvault/internal/objectstore"
	"github.com/nimblemarkets/tickvault/pkg/parquetio"
)

type expectedKey struct {
	instrumentKey, product string
}

// Detect implements C3's algorithm over [startDate, endDate]: for each
// date, load the expected set from the catalog, list the tick-data store's
// inventory, and emit one report file per date with a nonempty difference.
func Detect(ctx context.Context, store objectstore.Store, startDate, endDate time.Time, filters Filters, format string) (*Report, error) {
	report := &Report{
		PerDate:              make(map[string][]Entry),
		PerProductMissing:    make(map[string]int),
		PerInstrumentMissing: make(map[string]int),
	}

	totalExpected := 0
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")

		defs, err := catalog.ReadCatalogFile(ctx, store, dateStr, format)
		if err != nil {
			return nil, fmt.Errorf("missing: read catalog for %s: %w", dateStr, err)
		}

		expected := make(map[expectedKey]bool)
		passing := make(map[string]bool)
		for _, def := range defs {
			if !passesFilters(def, filters) {
				continue
			}
			passing[def.InstrumentKey] = true
			for _, p := range def.DataTypes {
				if !productAllowed(string(p), filters.Products) {
					continue
				}
				expected[expectedKey{def.InstrumentKey, string(p)}] = true
			}
		}

		paths, err := store.List(ctx, objectstore.TickDataDatePrefix(dateStr))
		if err != nil {
			return nil, fmt.Errorf("missing: list tick data for %s: %w", dateStr, err)
		}
		available := make(map[expectedKey]bool, len(paths))
		for _, p := range paths {
			key, ok := parseTickDataPath(p)
			if !ok {
				continue
			}
			// Same venue/type/product filters as the expected set, applied
			// through the file's catalog row.
			if !passing[key.instrumentKey] || !productAllowed(key.product, filters.Products) {
				continue
			}
			available[key] = true
		}

		// Invariant: after symmetric filtering, available must be a
		// subset of expected. A violation here means the filter or the
		// store listing diverged from the catalog and is a fatal
		// assertion per §7(vi), not a per-item skip.
		for k := range available {
			if !expected[k] {
				if !inAnyUnfilteredCatalog(defs, k) {
					continue // file belongs to an instrument outside this catalog entirely; not our invariant to enforce
				}
				panic(fmt.Sprintf("missing: invariant violated for %s: %s/%s present but not expected after filtering", dateStr, k.instrumentKey, k.product))
			}
		}

		var dayEntries []Entry
		now := nowFunc()
		for k := range expected {
			if available[k] {
				continue
			}
			dayEntries = append(dayEntries, Entry{
				Date:           dateStr,
				InstrumentKey:  k.instrumentKey,
				Product:        k.product,
				Status:         "missing",
				ReportDate:     dateStr,
				VenuesFilter:   strings.Join(filters.Venues, ","),
				TypesFilter:    strings.Join(filters.InstrumentTypes, ","),
				ProductsFilter: strings.Join(filters.Products, ","),
				GeneratedAt:    now,
			})
			report.PerProductMissing[k.product]++
			report.PerInstrumentMissing[k.instrumentKey]++
		}

		totalExpected += len(expected)
		if len(dayEntries) == 0 {
			continue
		}

		if err := writeReport(ctx, store, objectstore.MissingDataReportPath(dateStr, format), dayEntries); err != nil {
			return nil, fmt.Errorf("missing: write report for %s: %w", dateStr, err)
		}
		report.PerDate[dateStr] = dayEntries
		report.TotalMissing += len(dayEntries)
		report.DaysWithMissing++
	}

	if totalExpected > 0 {
		report.CoveragePercent = 100 * float64(totalExpected-report.TotalMissing) / float64(totalExpected)
	}

	log.Info().Int("total_missing", report.TotalMissing).Int("days_with_missing", report.DaysWithMissing).Msg("missing-data detection complete")
	return report, nil
}

// nowFunc supplies each entry's GeneratedAt timestamp.
var nowFunc = time.Now

func passesFilters(def catalog.InstrumentDefinition, f Filters) bool {
	if len(f.Venues) > 0 && !contains(f.Venues, def.Venue) {
		return false
	}
	if len(f.InstrumentTypes) > 0 && !contains(f.InstrumentTypes, def.InstrumentType.String()) {
		return false
	}
	return true
}

func productAllowed(product string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	return contains(allowed, product)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// inAnyUnfilteredCatalog reports whether instrumentKey/product belongs to
// some definition in the unfiltered catalog for the date, used to
// distinguish a genuine invariant violation from a stale file left by a
// since-removed instrument.
func inAnyUnfilteredCatalog(defs []catalog.InstrumentDefinition, k expectedKey) bool {
	for _, def := range defs {
		if def.InstrumentKey != k.instrumentKey {
			continue
		}
		for _, p := range def.DataTypes {
			if string(p) == k.product {
				return true
			}
		}
	}
	return false
}

// parseTickDataPath extracts (instrument_key, product) from a path of the
// form raw_tick_data/by_date/day-{d}/data_type-{product}/{instrument_key}.<fmt>.
func parseTickDataPath(path string) (expectedKey, bool) {
	parts := strings.Split(path, "/")
	if len(parts) < 4 {
		return expectedKey{}, false
	}
	productSeg := parts[len(parts)-2]
	fileSeg := parts[len(parts)-1]
	if !strings.HasPrefix(productSeg, "data_type-") {
		return expectedKey{}, false
	}
	product := strings.TrimPrefix(productSeg, "data_type-")
	dot := strings.LastIndex(fileSeg, ".")
	if dot < 0 {
		return expectedKey{}, false
	}
	instrumentKey := fileSeg[:dot]
	return expectedKey{instrumentKey: instrumentKey, product: product}, true
}

func writeReport(ctx context.Context, store objectstore.Store, path string, entries []Entry) error {
	rows := make([]parquetio.Row, len(entries))
	for i, e := range entries {
		rows[i] = parquetio.Row{
			e.Date, e.InstrumentKey, e.Product, e.Status, e.ReportDate,
			e.VenuesFilter, e.TypesFilter, e.ProductsFilter, e.GeneratedAt.UnixNano(),
		}
	}
	data, err := parquetio.WriteRows(parquetio.MissingDataSchema, rows)
	if err != nil {
		return err
	}
	return store.Put(ctx, path, data)
}

// ReadReport loads and decodes one date's missing-data report, or returns
// (nil, nil) if it does not exist — no report means no known gaps.
func ReadReport(ctx context.Context, store objectstore.Store, date, format string) ([]Entry, error) {
	path := objectstore.MissingDataReportPath(date, format)
	exists, err := store.Exists(ctx, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	data, err := store.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	rows, err := parquetio.ReadRows(parquetio.MissingDataSchema, data)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(rows))
	for i, row := range rows {
		out[i] = Entry{
			Date:           strOrEmpty(row[0]),
			InstrumentKey:  strOrEmpty(row[1]),
			Product:        strOrEmpty(row[2]),
			Status:         strOrEmpty(row[3]),
			ReportDate:     strOrEmpty(row[4]),
			VenuesFilter:   strOrEmpty(row[5]),
			TypesFilter:    strOrEmpty(row[6]),
			ProductsFilter: strOrEmpty(row[7]),
		}
		if row[8] != nil {
			out[i].GeneratedAt = time.Unix(0, row[8].(int64)).UTC()
		}
	}
	return out, nil
}

func strOrEmpty(v any) string {
	if v == nil {
		return ""
	}
	return v.(string)
}
