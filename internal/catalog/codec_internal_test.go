// Copyright (c) 2024 Neomantra Corp

package catalog

import (
	"testing"
	"time"
)

func TestToRowFromRow_RoundTrip(t *testing.T) {
	expiry := time.Date(2025, 12, 26, 8, 0, 0, 0, time.UTC)
	want := InstrumentDefinition{
		InstrumentKey:     "DERIBIT:OPTION:BTC-USD-251226-50000-CALL",
		Venue:             "deribit",
		InstrumentType:    InstrumentType_Option,
		AvailableFrom:     time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		AvailableTo:       time.Date(2025, 12, 26, 8, 0, 0, 0, time.UTC),
		DataTypes:         []Product{Product_Trades, Product_BookSnapshot5, Product_OptionsChain},
		BaseAsset:         "BTC",
		QuoteAsset:        "USD",
		SettleAsset:       "BTC",
		ExchangeRawSymbol: "BTC-26DEC25-50000-C",
		VendorSymbol:      "BTC-26DEC25-50000-C",
		VendorExchange:    "deribit",
		Inverse:           true,
		Expiry:            &expiry,
		Strike:            "50000",
		OptionType:        OptionType_Call,
		Underlying:        "BTC",
	}

	row := toRow(want)
	got, err := FromRow(row)
	if err != nil {
		t.Fatalf("FromRow: %v", err)
	}

	if got.InstrumentKey != want.InstrumentKey || got.Venue != want.Venue ||
		got.InstrumentType != want.InstrumentType || got.BaseAsset != want.BaseAsset ||
		got.QuoteAsset != want.QuoteAsset || got.SettleAsset != want.SettleAsset ||
		got.Inverse != want.Inverse || got.Strike != want.Strike ||
		got.OptionType != want.OptionType || got.Underlying != want.Underlying {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
	if !got.AvailableFrom.Equal(want.AvailableFrom) || !got.AvailableTo.Equal(want.AvailableTo) {
		t.Fatalf("availability window mismatch: got [%v,%v], want [%v,%v]", got.AvailableFrom, got.AvailableTo, want.AvailableFrom, want.AvailableTo)
	}
	if got.Expiry == nil || !got.Expiry.Equal(*want.Expiry) {
		t.Fatalf("Expiry = %v, want %v", got.Expiry, want.Expiry)
	}
	if len(got.DataTypes) != len(want.DataTypes) {
		t.Fatalf("DataTypes = %v, want %v", got.DataTypes, want.DataTypes)
	}
	for i := range want.DataTypes {
		if got.DataTypes[i] != want.DataTypes[i] {
			t.Errorf("DataTypes[%d] = %v, want %v", i, got.DataTypes[i], want.DataTypes[i])
		}
	}
}

func TestToRowFromRow_NoExpiryRoundTripsNil(t *testing.T) {
	want := InstrumentDefinition{
		InstrumentKey:  "BINANCE:SPOT_PAIR:BTC-USDT",
		Venue:          "binance",
		InstrumentType: InstrumentType_SpotPair,
		AvailableFrom:  time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		DataTypes:      []Product{Product_Trades, Product_BookSnapshot5},
		BaseAsset:      "BTC",
		QuoteAsset:     "USDT",
	}

	got, err := FromRow(toRow(want))
	if err != nil {
		t.Fatalf("FromRow: %v", err)
	}
	if got.Expiry != nil {
		t.Fatalf("Expiry = %v, want nil", got.Expiry)
	}
	if got.OptionType != OptionType_None {
		t.Fatalf("OptionType = %v, want None", got.OptionType)
	}
}

func TestSplitDataTypes_ExactMatchNotSubstring(t *testing.T) {
	got := splitDataTypes("trades,book_snapshot_5")
	want := []Product{Product_Trades, Product_BookSnapshot5}
	if len(got) != len(want) {
		t.Fatalf("splitDataTypes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitDataTypes[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSplitDataTypes_Empty(t *testing.T) {
	if got := splitDataTypes(""); got != nil {
		t.Fatalf("splitDataTypes(\"\") = %v, want nil", got)
	}
}
