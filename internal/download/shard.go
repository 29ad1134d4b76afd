// Copyright (c) 2024 Neomantra Corp

package download

import "github.com/zeebo/xxh3"

// ShardOf deterministically assigns instrumentKey to one of totalShards
// shards. This replaces the reimplementation hazard of a language's
// built-in, process-unstable string hash (see spec's sharding design
// note) with xxHash3 over the UTF-8 key bytes, which is stable across
// processes and machines.
func ShardOf(instrumentKey string, totalShards int) int {
	if totalShards <= 0 {
		return 0
	}
	h := xxh3.HashString(instrumentKey)
	return int(h % uint64(totalShards))
}

// InShard reports whether instrumentKey belongs to shardIndex out of
// totalShards, the predicate the orchestrator filters targets with.
func InShard(instrumentKey string, shardIndex, totalShards int) bool {
	return ShardOf(instrumentKey, totalShards) == shardIndex
}
