package store

// schemaDDL creates the logical tables from spec §4.2: files, symbols,
// edges, fts_symbols (virtual full-text), embeddings, plus a small meta
// table for process-wide scalars (last index duration, last indexed git
// commit for change-narrowing). Mirrors the teacher's
// internal/ingest/sqlite_writer.go in style: one multi-statement string,
// IF NOT EXISTS everywhere so Open is idempotent across runs.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	path            TEXT NOT NULL UNIQUE,
	language        TEXT NOT NULL,
	content_hash    TEXT NOT NULL,
	size_bytes      INTEGER NOT NULL DEFAULT 0,
	last_indexed_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS symbols (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	file_id          INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
	name             TEXT NOT NULL,
	qualified_name   TEXT,
	kind             TEXT NOT NULL,
	start_line       INTEGER NOT NULL,
	end_line         INTEGER NOT NULL,
	start_byte       INTEGER NOT NULL DEFAULT 0,
	end_byte         INTEGER NOT NULL DEFAULT 0,
	signature        TEXT,
	visibility       TEXT NOT NULL DEFAULT 'public',
	parent_symbol_id INTEGER REFERENCES symbols(id) ON DELETE SET NULL,
	content          TEXT,
	content_hash     TEXT
);

CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file_id);
CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS idx_symbols_parent ON symbols(parent_symbol_id);

CREATE TABLE IF NOT EXISTS edges (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	file_id          INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
	source_symbol_id INTEGER REFERENCES symbols(id) ON DELETE CASCADE,
	target_name      TEXT NOT NULL,
	kind             TEXT NOT NULL,
	line             INTEGER NOT NULL,
	target_symbol_id INTEGER REFERENCES symbols(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_edges_file ON edges(file_id);
CREATE INDEX IF NOT EXISTS idx_edges_target_name ON edges(target_name);
CREATE INDEX IF NOT EXISTS idx_edges_target_symbol ON edges(target_symbol_id);
CREATE INDEX IF NOT EXISTS idx_edges_source_symbol ON edges(source_symbol_id);
CREATE INDEX IF NOT EXISTS idx_edges_unresolved ON edges(target_symbol_id) WHERE target_symbol_id IS NULL;

CREATE VIRTUAL TABLE IF NOT EXISTS fts_symbols USING fts5(
	symbol_id UNINDEXED,
	content,
	tokenize='porter unicode61'
);

CREATE TABLE IF NOT EXISTS embeddings (
	symbol_id   INTEGER PRIMARY KEY REFERENCES symbols(id) ON DELETE CASCADE,
	vector      BLOB NOT NULL,
	source_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`
