// Copyright (c) 2024 Neomantra Corp

package download_test

import (
	"errors"
	"testing"

	"github.com/nimblemarkets/tickvault/internal/download"
	"github.com/nimblemarkets/tickvault/internal/vendorapi"
)

func TestDecodeCSV_TradesHappyPath(t *testing.T) {
	body := []byte("exchange,symbol,timestamp,local_timestamp,price,amount,side,id\n" +
		"binance,BTCUSDT,1700000000000000,1700000000100000,50000.5,0.1,buy,123\n")

	rows, skipped, err := download.DecodeCSV("trades", body)
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0][2] != 50000.5 {
		t.Errorf("price = %v, want 50000.5", rows[0][2])
	}
	if rows[0][3] != 0.1 {
		t.Errorf("amount = %v, want 0.1", rows[0][3])
	}
}

func TestDecodeCSV_NonNumericCoercesToNull(t *testing.T) {
	body := []byte("exchange,symbol,timestamp,local_timestamp,price,amount,side,id\n" +
		"binance,BTCUSDT,1700000000000000,1700000000100000,not-a-number,0.1,buy,123\n")

	rows, _, err := download.DecodeCSV("trades", body)
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (a bad value nulls its column, it doesn't drop the row)", len(rows))
	}
	if rows[0][2] != nil {
		t.Errorf("price = %v, want nil", rows[0][2])
	}
}

func TestDecodeCSV_UnknownProduct(t *testing.T) {
	if _, _, err := download.DecodeCSV("not_a_product", []byte("a,b\n1,2\n")); err == nil {
		t.Fatalf("DecodeCSV should reject an unknown product")
	}
}

func TestDecodeCSV_MissingColumnBecomesNull(t *testing.T) {
	body := []byte("exchange,symbol,timestamp\n" +
		"binance,BTCUSDT,1700000000000000\n")

	rows, _, err := download.DecodeCSV("trades", body)
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0][2] != nil {
		t.Errorf("price = %v, want nil for a column absent from the header", rows[0][2])
	}
}

func TestClassify(t *testing.T) {
	if got := download.Classify(nil); got != download.CategoryNone {
		t.Errorf("Classify(nil) = %v, want CategoryNone", got)
	}
	if got := download.Classify(vendorapi.ErrNotFound); got != download.CategoryNotFound {
		t.Errorf("Classify(ErrNotFound) = %v, want CategoryNotFound", got)
	}
	wrapped := errors.New("wrapped: " + vendorapi.ErrNotFound.Error())
	if got := download.Classify(wrapped); got == download.CategoryNotFound {
		t.Errorf("Classify should not match on message text, only errors.Is: got %v", got)
	}
	if got := download.Classify(errors.New("connection reset")); got != download.CategoryRetryExhausted {
		t.Errorf("Classify(generic error) = %v, want CategoryRetryExhausted", got)
	}
}
