// Copyright (c) 2024 Neomantra Corp

package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nimblemarkets/tickvault/pkg/parquetio"
)

// toRow encodes an InstrumentDefinition as a parquetio.Row matching
// parquetio.CatalogSchema, column-for-column.
func toRow(d InstrumentDefinition) parquetio.Row {
	var expiry any
	if d.Expiry != nil {
		expiry = d.Expiry.UnixNano()
	}
	return parquetio.Row{
		d.InstrumentKey,
		d.Venue,
		d.InstrumentType.String(),
		d.AvailableFrom.UnixNano(),
		d.AvailableTo.UnixNano(),
		d.DataTypesJoined(),
		d.BaseAsset,
		d.QuoteAsset,
		d.SettleAsset,
		d.ExchangeRawSymbol,
		d.VendorSymbol,
		d.VendorExchange,
		strconv.FormatBool(d.Inverse),
		expiry,
		d.Strike,
		d.OptionType.String(),
		d.Underlying,
	}
}

// FromRow decodes one parquetio.Row (as read back under CatalogSchema) into
// an InstrumentDefinition.
func FromRow(row parquetio.Row) (InstrumentDefinition, error) {
	if len(row) != len(parquetio.CatalogSchema) {
		return InstrumentDefinition{}, fmt.Errorf("catalog: row has %d columns, want %d", len(row), len(parquetio.CatalogSchema))
	}
	str := func(i int) string {
		if row[i] == nil {
			return ""
		}
		return row[i].(string)
	}
	ts := func(i int) (time.Time, bool) {
		if row[i] == nil {
			return time.Time{}, false
		}
		return time.Unix(0, row[i].(int64)).UTC(), true
	}

	availFrom, _ := ts(3)
	availTo, _ := ts(4)
	d := InstrumentDefinition{
		InstrumentKey:     str(0),
		Venue:             str(1),
		AvailableFrom:     availFrom,
		AvailableTo:       availTo,
		BaseAsset:         str(6),
		QuoteAsset:        str(7),
		SettleAsset:       str(8),
		ExchangeRawSymbol: str(9),
		VendorSymbol:      str(10),
		VendorExchange:    str(11),
		Strike:            str(14),
		Underlying:        str(16),
	}
	d.InstrumentType = instrumentTypeFromString(str(2))
	d.DataTypes = splitDataTypes(str(5))
	d.Inverse, _ = strconv.ParseBool(str(12))
	if expiry, ok := ts(13); ok {
		d.Expiry = &expiry
	}
	d.OptionType = optionTypeFromString(str(15))
	return d, nil
}

func instrumentTypeFromString(s string) InstrumentType {
	switch s {
	case "SPOT_PAIR":
		return InstrumentType_SpotPair
	case "PERP":
		return InstrumentType_Perp
	case "FUTURE":
		return InstrumentType_Future
	case "OPTION":
		return InstrumentType_Option
	default:
		return InstrumentType_Unknown
	}
}

func optionTypeFromString(s string) OptionType {
	switch s {
	case "CALL":
		return OptionType_Call
	case "PUT":
		return OptionType_Put
	default:
		return OptionType_None
	}
}

// splitDataTypes exact-matches products by splitting the comma-joined
// field, never by substring — §4.3's product-type exact-matching rule.
func splitDataTypes(joined string) []Product {
	if joined == "" {
		return nil
	}
	var out []Product
	start := 0
	for i := 0; i <= len(joined); i++ {
		if i == len(joined) || joined[i] == ',' {
			out = append(out, Product(joined[start:i]))
			start = i + 1
		}
	}
	return out
}

