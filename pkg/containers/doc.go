/*
Package containers holds the concurrency substrate every higher layer
is built on: a striped concurrent hashmap (Map), and the small
fixed-capacity / lookup-table helpers (FixedArray, BoolTable) that
replace virtual dispatch in hot paths.

# Striped map

A Map[V] (string keys) shards its keyspace across a fixed, power-of-two number of
independent read/write-locked hashtables. A 64-bit hash of the key
picks the shard using the high bits (shift = 64 - log2(shardCount)),
so the shard count can be grown without touching call sites. A key
lives in exactly one shard for
its entire lifetime; iteration takes each shard's read lock in turn and
is safe to interleave with single-key mutation on other shards.
*/
package containers
