// Copyright (c) 2024 Neomantra Corp

package objectstore

import "fmt"

// CatalogByDatePath is the per-day catalog file path, §6.1.
func CatalogByDatePath(date, format string) string {
	return fmt.Sprintf("catalog/by_date/day-%s/instruments.%s", date, format)
}

// CatalogFallbackPaths are older catalog layouts tried, in order, when the
// per-day path is missing.
func CatalogFallbackPaths(date, format string) []string {
	ymd := date[0:4] + date[5:7] + date[8:10]
	return []string{
		fmt.Sprintf("catalog/instruments_%s.%s", ymd, format),
		fmt.Sprintf("catalog/%s_enhanced.%s", date, format),
	}
}

// CatalogAggregatePath is the date-range aggregate catalog file path.
func CatalogAggregatePath(startDate, endDate, format string) string {
	start := startDate[0:4] + startDate[5:7] + startDate[8:10]
	end := endDate[0:4] + endDate[5:7] + endDate[8:10]
	return fmt.Sprintf("catalog/aggregate/instruments_%s_%s.%s", start, end, format)
}

// TickDataPath is the per-day, per-product, per-instrument tick file path.
func TickDataPath(date string, product, instrumentKey, format string) string {
	return fmt.Sprintf("raw_tick_data/by_date/day-%s/data_type-%s/%s.%s", date, product, instrumentKey, format)
}

// TickDataDatePrefix is the listable prefix for all tick files on a date,
// used by the missing-data detector's inventory scan.
func TickDataDatePrefix(date string) string {
	return fmt.Sprintf("raw_tick_data/by_date/day-%s/", date)
}

// MissingDataReportPath is the per-day missing-data report file path.
func MissingDataReportPath(date, format string) string {
	return fmt.Sprintf("missing_data_reports/by_date/day-%s/missing_data.%s", date, format)
}
