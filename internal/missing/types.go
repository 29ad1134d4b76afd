// Copyright (c) 2024 Neomantra Corp

// Package missing implements C3: the set-difference comparison between the
// catalog (expected instruments/products) and the tick-data store
// (available files), emitting per-day reports of what's absent.
package missing

import "time"

// Entry is one expected-but-absent (date, instrument_key, product) tuple.
type Entry struct {
	Date           string
	InstrumentKey  string
	Product        string
	Status         string // always "missing"
	ReportDate     string
	VenuesFilter   string
	TypesFilter    string
	ProductsFilter string
	GeneratedAt    time.Time
}

// Filters narrows both the expected and available sets symmetrically
// before computing the difference.
type Filters struct {
	Venues          []string
	InstrumentTypes []string
	Products        []string
}

// Report is C3's per-date output plus the range aggregate statistics.
type Report struct {
	PerDate map[string][]Entry

	TotalMissing        int
	DaysWithMissing     int
	PerProductMissing   map[string]int
	PerInstrumentMissing map[string]int
	CoveragePercent     float64
}
