/*
Package model defines skyd's namespace hierarchy: Memstore, Keyspace,
Table and the Data buffer that flows through all of them.

# Hierarchy

	Memstore
	 └─ Keyspace (system, default, ...)
	     └─ Table (KV blob or KV list)
	         └─ store.KVEngine / store.ListEngine

Ids are validated ASCII identifiers (ValidateID in this package); the
reserved names "PRELOAD" and "PARTMAP" can never be used as a keyspace
or table id. "system" passes validation, since it names the existing
system keyspace; DDL against that keyspace is refused by the engine.

# Ownership

Keyspaces and tables are handed out as reference-counted handles
(*KeyspaceRef, *TableRef). A connection's entity state holds onto a
handle for as long as it is the "current" keyspace/table; dropping or
replacing that binding releases the reference. DDL that removes a
keyspace or table first checks that the store itself is the sole
holder of the corresponding handle — this is the only defined way to
detect "still in use".
*/
package model
