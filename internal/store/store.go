// Package store is the sole owner of SQL in codegraph (spec §4.2): every
// other package reads and writes through the Store's Go methods, never by
// formulating its own queries. Grounded on the teacher's
// internal/ingest/sqlite_writer.go (prepared statements inside one
// transaction) and internal/graph/sqlite_graph.go (modernc.org/sqlite
// connection setup), generalized from mache's generic node/ref tables to
// the spec's fixed files/symbols/edges schema.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/cgerrors"
	_ "modernc.org/sqlite"
)

// Store wraps the single embedded database file at the project root.
// Writer is single (writeMu), concurrent readers are permitted because
// the connection runs in WAL journaling mode.
type Store struct {
	db      *sql.DB
	writeMu sync.Mutex
}

// Open creates or opens the store file at path, creating the schema if
// it does not already exist. Schema migrations are additive only, per
// spec §6 — Open never drops or rewrites an existing table.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, cgerrors.Store(fmt.Sprintf("open store %s", path), err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, cgerrors.Store("set WAL mode", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, cgerrors.Store("enable foreign keys", err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, cgerrors.Store("create schema", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertFile replaces any prior row for path, returning its file_id.
// Per I1 (at most one FileInfo per file), a conflict on the unique path
// column updates the existing row in place rather than creating a
// duplicate; callers still need ReplaceFileRows to cascade the actual
// symbol/edge replacement.
func (s *Store) UpsertFile(path, language, contentHash string, sizeBytes, lastIndexedAt int64) (int64, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO files (path, language, content_hash, size_bytes, last_indexed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			language = excluded.language,
			content_hash = excluded.content_hash,
			size_bytes = excluded.size_bytes,
			last_indexed_at = excluded.last_indexed_at
	`, path, language, contentHash, sizeBytes, lastIndexedAt)
	if err != nil {
		return 0, cgerrors.Store("upsert file", err)
	}
	// When the conflict branch updates an existing row, SQLite's
	// LastInsertId still holds the connection's previous insert, so the
	// id is always looked up by path.
	var fid int64
	if qerr := s.db.QueryRow(`SELECT id FROM files WHERE path = ?`, path).Scan(&fid); qerr != nil {
		return 0, cgerrors.Store("lookup file id after upsert", qerr)
	}
	return fid, nil
}

// GetFileByPath returns the FileInfo for path, or nil if not indexed.
func (s *Store) GetFileByPath(path string) (*api.FileInfo, error) {
	row := s.db.QueryRow(`SELECT id, path, language, content_hash, size_bytes, last_indexed_at FROM files WHERE path = ?`, path)
	var f api.FileInfo
	if err := row.Scan(&f.ID, &f.Path, &f.Language, &f.ContentHash, &f.SizeBytes, &f.LastIndexedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, cgerrors.Store("get file by path", err)
	}
	return &f, nil
}

// ListFiles returns every indexed file, ordered by path.
func (s *Store) ListFiles() ([]api.FileInfo, error) {
	rows, err := s.db.Query(`SELECT id, path, language, content_hash, size_bytes, last_indexed_at FROM files ORDER BY path`)
	if err != nil {
		return nil, cgerrors.Store("list files", err)
	}
	defer rows.Close()

	var out []api.FileInfo
	for rows.Next() {
		var f api.FileInfo
		if err := rows.Scan(&f.ID, &f.Path, &f.Language, &f.ContentHash, &f.SizeBytes, &f.LastIndexedAt); err != nil {
			return nil, cgerrors.Store("scan file", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// DeleteFile removes a file and all rows owned by it (I1): ON DELETE
// CASCADE on symbols/edges/embeddings handles the cascade; fts_symbols
// is a separate virtual table so its rows are deleted explicitly.
func (s *Store) DeleteFile(fileID int64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.deleteFileLocked(fileID)
}

func (s *Store) deleteFileLocked(fileID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return cgerrors.Store("begin delete file", err)
	}
	defer tx.Rollback()

	if err := deleteFTSForFileTx(tx, fileID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM files WHERE id = ?`, fileID); err != nil {
		return cgerrors.Store("delete file", err)
	}
	if err := tx.Commit(); err != nil {
		return cgerrors.Store("commit delete file", err)
	}
	return nil
}

func deleteFTSForFileTx(tx *sql.Tx, fileID int64) error {
	rows, err := tx.Query(`SELECT id FROM symbols WHERE file_id = ?`, fileID)
	if err != nil {
		return cgerrors.Store("list symbols for fts cleanup", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return cgerrors.Store("scan symbol id", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return cgerrors.Store("iterate symbols for fts cleanup", err)
	}
	for _, id := range ids {
		if _, err := tx.Exec(`DELETE FROM fts_symbols WHERE symbol_id = ?`, id); err != nil {
			return cgerrors.Store("delete fts row", err)
		}
	}
	return nil
}

// ReplaceFileRows performs the atomic delete-then-insert described in
// spec §4.2 for every symbol and edge owned by fileID, plus the
// dependent fts_symbols rows (I4). ParsedSymbol.ParentIndex and
// ParsedEdge.SourceIndex are positions into result.Symbols; they are
// resolved to real, store-assigned symbol IDs inside the same
// transaction so parent/child relationships never straddle a commit
// boundary (I2).
func (s *Store) ReplaceFileRows(fileID int64, result api.ParseResult) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return cgerrors.Store("begin replace file rows", err)
	}
	defer tx.Rollback()

	if err := deleteFTSForFileTx(tx, fileID); err != nil {
		return err
	}
	// Edges go first, then symbols; the schema's ON DELETE CASCADE/SET
	// NULL actions (including parent_symbol_id's SET NULL) handle rows
	// that still reference the deleted symbols.
	if _, err := tx.Exec(`DELETE FROM edges WHERE file_id = ?`, fileID); err != nil {
		return cgerrors.Store("delete edges for file", err)
	}
	if _, err := tx.Exec(`DELETE FROM symbols WHERE file_id = ?`, fileID); err != nil {
		return cgerrors.Store("delete symbols for file", err)
	}

	insertSym, err := tx.Prepare(`
		INSERT INTO symbols (file_id, name, qualified_name, kind, start_line, end_line, start_byte, end_byte, signature, visibility, parent_symbol_id, content, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return cgerrors.Store("prepare symbol insert", err)
	}
	defer insertSym.Close()

	symbolIDs := make([]int64, len(result.Symbols))
	// Two passes: first insert every symbol with no parent so every row
	// exists, then patch parent_symbol_id once all IDs are known — a
	// method's parent may appear later in Symbols than the method itself.
	for i, sym := range result.Symbols {
		contentHash := ""
		if sym.Content != "" {
			contentHash = api.ContentHashString(sym.Content)
		}
		res, err := insertSym.Exec(fileID, sym.Name, nullIfEmpty(sym.QualifiedName), string(sym.Kind),
			sym.StartLine, sym.EndLine, sym.StartByte, sym.EndByte,
			nullIfEmpty(sym.Signature), string(sym.Visibility), nil, nullIfEmpty(sym.Content), nullIfEmpty(contentHash))
		if err != nil {
			return cgerrors.Store("insert symbol", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return cgerrors.Store("symbol last insert id", err)
		}
		symbolIDs[i] = id
	}

	updateParent, err := tx.Prepare(`UPDATE symbols SET parent_symbol_id = ? WHERE id = ?`)
	if err != nil {
		return cgerrors.Store("prepare parent update", err)
	}
	defer updateParent.Close()
	for i, sym := range result.Symbols {
		if sym.ParentIndex < 0 || sym.ParentIndex >= len(symbolIDs) {
			continue
		}
		if _, err := updateParent.Exec(symbolIDs[sym.ParentIndex], symbolIDs[i]); err != nil {
			return cgerrors.Store("update parent symbol id", err)
		}
	}

	insertEdge, err := tx.Prepare(`
		INSERT INTO edges (file_id, source_symbol_id, target_name, kind, line, target_symbol_id)
		VALUES (?, ?, ?, ?, ?, NULL)
	`)
	if err != nil {
		return cgerrors.Store("prepare edge insert", err)
	}
	defer insertEdge.Close()
	for _, e := range result.Edges {
		var sourceID any
		if e.SourceIndex >= 0 && e.SourceIndex < len(symbolIDs) {
			sourceID = symbolIDs[e.SourceIndex]
		}
		if _, err := insertEdge.Exec(fileID, sourceID, e.TargetName, string(e.Kind), e.Line); err != nil {
			return cgerrors.Store("insert edge", err)
		}
	}

	insertFTS, err := tx.Prepare(`INSERT INTO fts_symbols (symbol_id, content) VALUES (?, ?)`)
	if err != nil {
		return cgerrors.Store("prepare fts insert", err)
	}
	defer insertFTS.Close()
	for i, sym := range result.Symbols {
		if sym.Content == "" {
			continue
		}
		if _, err := insertFTS.Exec(symbolIDs[i], sym.Content); err != nil {
			return cgerrors.Store("insert fts row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return cgerrors.Store("commit replace file rows", err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// DeleteFileByPath is a convenience used by the orchestrator when it finds
// a stored file absent from disk.
func (s *Store) DeleteFileByPath(path string) error {
	f, err := s.GetFileByPath(path)
	if err != nil {
		return err
	}
	if f == nil {
		return nil
	}
	return s.DeleteFile(f.ID)
}

// SetMeta and GetMeta persist small scalars (last_index_ms, last indexed
// git commit) that don't belong in any per-file or per-symbol row.
func (s *Store) SetMeta(key, value string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err := s.db.Exec(`INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return cgerrors.Store("set meta", err)
	}
	return nil
}

func (s *Store) GetMeta(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, cgerrors.Store("get meta", err)
	}
	return v, true, nil
}
