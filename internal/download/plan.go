// Copyright (c) 2024 Neomantra Corp

package download

import (
	"time"

	"github.com/nimblemarkets/tickvault/internal/catalog"
)

// BuildTargets joins catalog entries with their product lists to produce
// the full-download path's Target set for one date, per §3.3.
func BuildTargets(defs []catalog.InstrumentDefinition, date time.Time) []Target {
	var out []Target
	for _, d := range defs {
		for _, p := range d.DataTypes {
			out = append(out, Target{
				InstrumentKey:  d.InstrumentKey,
				VendorExchange: d.VendorExchange,
				VendorSymbol:   d.VendorSymbol,
				Product:        string(p),
				Date:           date,
			})
		}
	}
	return out
}
