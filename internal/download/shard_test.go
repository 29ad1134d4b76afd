// Copyright (c) 2024 Neomantra Corp

package download_test

import (
	"fmt"
	"testing"

	"github.com/nimblemarkets/tickvault/internal/download"
)

func TestShardOf_Deterministic(t *testing.T) {
	key := "BINANCE:SPOT_PAIR:BTC-USDT"
	first := download.ShardOf(key, 8)
	for i := 0; i < 100; i++ {
		if got := download.ShardOf(key, 8); got != first {
			t.Fatalf("ShardOf is not deterministic: got %d, want %d", got, first)
		}
	}
}

func TestShardOf_PartitionsExhaustivelyAndDisjointly(t *testing.T) {
	const totalShards = 4
	targets := make([]download.Target, 0, 500)
	for i := 0; i < 500; i++ {
		targets = append(targets, download.Target{InstrumentKey: fmt.Sprintf("BINANCE:SPOT_PAIR:SYM%d-USDT", i)})
	}

	seen := make(map[string]int, len(targets))
	for shard := 0; shard < totalShards; shard++ {
		subset := download.FilterByShard(targets, shard, totalShards)
		for _, target := range subset {
			if prior, ok := seen[target.InstrumentKey]; ok {
				t.Fatalf("instrument %s assigned to both shard %d and shard %d", target.InstrumentKey, prior, shard)
			}
			seen[target.InstrumentKey] = shard
		}
	}

	if len(seen) != len(targets) {
		t.Fatalf("union of shards covered %d targets, want %d", len(seen), len(targets))
	}
}

func TestShardOf_TotalShardsOneIsNoOp(t *testing.T) {
	targets := []download.Target{{InstrumentKey: "A"}, {InstrumentKey: "B"}}
	out := download.FilterByShard(targets, 0, 1)
	if len(out) != len(targets) {
		t.Fatalf("total_shards=1 should pass every target through unfiltered, got %d of %d", len(out), len(targets))
	}
}
