// Copyright (c) 2024 Neomantra Corp

package objectstore_test

import (
	"context"
	"testing"

	"github.com/nimblemarkets/tickvault/internal/objectstore"
)

func TestLocalStore_PutGetExists(t *testing.T) {
	ctx := context.Background()
	store, err := objectstore.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	path := "catalog/by_date/day-2024-01-01/instruments.parquet"
	if ok, _ := store.Exists(ctx, path); ok {
		t.Fatalf("path should not exist before Put")
	}

	if err := store.Put(ctx, path, []byte("hello")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	ok, err := store.Exists(ctx, path)
	if err != nil || !ok {
		t.Fatalf("Exists after Put: ok=%v err=%v", ok, err)
	}

	data, err := store.Get(ctx, path)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("Get returned %q, want %q", data, "hello")
	}
}

func TestLocalStore_ListByPrefix(t *testing.T) {
	ctx := context.Background()
	store, err := objectstore.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	paths := []string{
		"raw_tick_data/by_date/day-2024-01-01/data_type-trades/BINANCE:SPOT_PAIR:BTC-USDT.parquet",
		"raw_tick_data/by_date/day-2024-01-01/data_type-trades/BINANCE:SPOT_PAIR:ETH-USDT.parquet",
		"raw_tick_data/by_date/day-2024-01-02/data_type-trades/BINANCE:SPOT_PAIR:BTC-USDT.parquet",
	}
	for _, p := range paths {
		if err := store.Put(ctx, p, []byte("x")); err != nil {
			t.Fatalf("Put %q: %v", p, err)
		}
	}

	got, err := store.List(ctx, objectstore.TickDataDatePrefix("2024-01-01"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d paths, want 2: %v", len(got), got)
	}
}

func TestMemoryStore_MatchesLocalStoreBehavior(t *testing.T) {
	ctx := context.Background()
	store := objectstore.NewMemoryStore()

	if ok, _ := store.Exists(ctx, "a"); ok {
		t.Fatalf("path should not exist before Put")
	}
	if err := store.Put(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ok, _ := store.Exists(ctx, "a"); !ok {
		t.Fatalf("path should exist after Put")
	}
	data, err := store.Get(ctx, "a")
	if err != nil || string(data) != "1" {
		t.Fatalf("Get = %q, %v", data, err)
	}
	if _, err := store.Get(ctx, "missing"); err == nil {
		t.Fatalf("Get of a missing path should error")
	}
}

func TestCanonicalPaths(t *testing.T) {
	if got, want := objectstore.CatalogByDatePath("2024-01-01", "parquet"), "catalog/by_date/day-2024-01-01/instruments.parquet"; got != want {
		t.Errorf("CatalogByDatePath = %q, want %q", got, want)
	}
	if got, want := objectstore.CatalogAggregatePath("2024-01-01", "2024-01-31", "parquet"), "catalog/aggregate/instruments_20240101_20240131.parquet"; got != want {
		t.Errorf("CatalogAggregatePath = %q, want %q", got, want)
	}
	if got, want := objectstore.MissingDataReportPath("2024-01-01", "parquet"), "missing_data_reports/by_date/day-2024-01-01/missing_data.parquet"; got != want {
		t.Errorf("MissingDataReportPath = %q, want %q", got, want)
	}
}
