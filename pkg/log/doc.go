/*
Package log provides structured logging for skyd using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with connection/keyspace/table-specific loggers, configurable log levels, and
helper functions for common logging patterns. All logs include timestamps and
support filtering by severity level for production debugging.

# Architecture

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                    │          │
	│  │  - Zerolog instance                         │          │
	│  │  - Initialized via log.Init()               │          │
	│  │  - Thread-safe for concurrent use           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout, file, or custom writer   │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Context Loggers                      │          │
	│  │  - WithComponent("engine")                  │          │
	│  │  - WithConn("c-abc123")                     │          │
	│  │  - WithKeyspace("analytics")                │          │
	│  │  - WithTable("events")                      │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Log Output                       │          │
	│  │  JSON:    {"level":"info","conn_id":"c-1",  │          │
	│  │            "message":"connection accepted"} │          │
	│  │  Console: 10:30AM INF connection accepted   │          │
	│  │           conn_id=c-1                       │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via log.Init()
  - Accessible from all skyd packages
  - Thread-safe concurrent writes

Log Levels:
  - Debug: Detailed debugging information
  - Info: General informational messages
  - Warn: Warning messages (potential issues)
  - Error: Error messages (operation failed)
  - Fatal: Critical errors (process exits)

Context Loggers:
  - WithComponent: Add component name to all logs
  - WithConn: Add conn_id context, one per accepted connection
  - WithKeyspace: Add keyspace context
  - WithTable: Add table context

# Usage

Initializing the Logger:

	import "github.com/skytable/skyd/pkg/log"

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

Simple Logging:

	log.Info("store initialized successfully")
	log.Warn("bgsave cycle slower than interval")
	log.Error("flush cycle failed")

Structured Logging:

	log.Logger.Error().
		Err(err).
		Str("keyspace", "analytics").
		Str("table", "events").
		Msg("create table failed")

Connection Logger:

	connLog := log.WithConn(connID)
	connLog.Info().Msg("connection accepted")
	connLog.Debug().Str("verb", "GET").Msg("query dispatched")

# Integration Points

This package integrates with:

  - pkg/server: logs connection accept/close, admission rejection
  - pkg/engine: logs DDL outcomes, poison transitions
  - pkg/persist: logs failed flush, snapshot and cleanup cycles
  - pkg/auth does not log

# Security

Log Content:
  - Never log tokens, origin keys, or hashed credentials
  - Use structured fields (.Str, .Int) rather than string concatenation
    for any value that originates from a client query

# See Also

  - Zerolog documentation: https://github.com/rs/zerolog
*/
package log
