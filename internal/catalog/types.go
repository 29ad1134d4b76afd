// Copyright (c) 2024 Neomantra Corp

// Package catalog implements the canonical instrument key generator: it
// turns per-venue vendor symbol listings into a normalized schema with a
// stable identifier, availability window, and derived tick-data products.
package catalog

import "time"

// InstrumentType is the canonical shape of a tradeable instrument.
type InstrumentType uint8

const (
	InstrumentType_Unknown  InstrumentType = iota
	InstrumentType_SpotPair                // Spot currency pair.
	InstrumentType_Perp                    // Perpetual swap/future.
	InstrumentType_Future                  // Dated future.
	InstrumentType_Option                  // Dated option (includes Deribit combos).
)

func (t InstrumentType) String() string {
	switch t {
	case InstrumentType_SpotPair:
		return "SPOT_PAIR"
	case InstrumentType_Perp:
		return "PERP"
	case InstrumentType_Future:
		return "FUTURE"
	case InstrumentType_Option:
		return "OPTION"
	default:
		return "UNKNOWN"
	}
}

// OptionType is the option right, CALL or PUT.
type OptionType uint8

const (
	OptionType_None OptionType = iota
	OptionType_Call
	OptionType_Put
)

func (t OptionType) String() string {
	switch t {
	case OptionType_Call:
		return "CALL"
	case OptionType_Put:
		return "PUT"
	default:
		return ""
	}
}

// Product is a category of tick data a vendor may serve for an instrument.
type Product string

const (
	Product_Trades           Product = "trades"
	Product_BookSnapshot5    Product = "book_snapshot_5"
	Product_DerivativeTicker Product = "derivative_ticker"
	Product_Liquidations     Product = "liquidations"
	Product_OptionsChain     Product = "options_chain"
)

// ProductsForType returns the deterministic product list for an instrument type.
func ProductsForType(t InstrumentType) []Product {
	switch t {
	case InstrumentType_SpotPair:
		return []Product{Product_Trades, Product_BookSnapshot5}
	case InstrumentType_Perp, InstrumentType_Future:
		return []Product{Product_Trades, Product_BookSnapshot5, Product_DerivativeTicker, Product_Liquidations}
	case InstrumentType_Option:
		return []Product{Product_Trades, Product_BookSnapshot5, Product_OptionsChain, Product_Liquidations, Product_DerivativeTicker}
	default:
		return nil
	}
}

// InstrumentDefinition is one row of the catalog: a fully parsed,
// filter-passed instrument with its availability window and product list.
type InstrumentDefinition struct {
	InstrumentKey     string
	Venue             string
	InstrumentType    InstrumentType
	AvailableFrom     time.Time
	AvailableTo       time.Time
	DataTypes         []Product
	BaseAsset         string
	QuoteAsset        string
	SettleAsset       string
	ExchangeRawSymbol string
	VendorSymbol      string
	VendorExchange    string
	Inverse           bool
	Expiry            *time.Time
	Strike            string
	OptionType        OptionType
	Underlying        string
}

// DataTypesJoined renders DataTypes as the comma-joined string the catalog
// file stores and the missing-data detector splits on exact match.
func (d InstrumentDefinition) DataTypesJoined() string {
	s := ""
	for i, p := range d.DataTypes {
		if i > 0 {
			s += ","
		}
		s += string(p)
	}
	return s
}

// ParseFailure records one vendor symbol that could not become an
// InstrumentDefinition, for CatalogWriteReport.ParseFailures.
type ParseFailure struct {
	Venue   string
	Symbol  string
	Type    string
	Reason  string
}

// CatalogWriteReport is C1's output summary, returned by Generate.
type CatalogWriteReport struct {
	ByDate          map[string]int // date (YYYY-MM-DD) -> instrument count written
	AggregatePath   string
	AggregateError  error
	ParseFailures   []ParseFailure
	Warnings        []string
	SkippedAggregate int
	SkippedFilters   int
	SkippedDateRange int
}
