// Package persist implements the on-disk format and the flush/recovery
// procedures that give the in-memory store durability: directory
// layout, the PRELOAD/PARTMAP/table-payload binary codecs, the
// BGSAVE and snapshot schedulers, and startup recovery (unflush).
//
// Every file on disk is written by composing a byte buffer in memory,
// writing it to "<name>_", fsyncing, then renaming over "<name>" --
// the durable-write discipline a transactional KV engine would give
// for free, reproduced by hand here because the wire format is a
// small custom binary layout rather than anything such a library can
// be pointed at.
//
// The two background loops (BGSAVE, snapshot) follow a
// ticker-plus-stop-channel shape: time.NewTicker, a select over the
// ticker and a stop channel, Stop() closing that channel.
package persist
