package store

import (
	"database/sql"
	"path"
	"strconv"
	"strings"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/cgerrors"
)

func scanSymbol(row interface {
	Scan(dest ...any) error
}) (api.Symbol, error) {
	var sym api.Symbol
	var qname, signature, visibility, content, contentHash sql.NullString
	var parent sql.NullInt64
	err := row.Scan(&sym.ID, &sym.FileID, &sym.Name, &qname, &sym.Kind, &sym.StartLine, &sym.EndLine,
		&sym.StartByte, &sym.EndByte, &signature, &visibility, &parent, &content, &contentHash)
	if err != nil {
		return sym, err
	}
	sym.QualifiedName = qname.String
	sym.Signature = signature.String
	sym.Visibility = api.Visibility(visibility.String)
	sym.ParentSymbolID = parent.Int64
	sym.Content = content.String
	sym.ContentHash = contentHash.String
	return sym, nil
}

const symbolColumns = `id, file_id, name, qualified_name, kind, start_line, end_line, start_byte, end_byte, signature, visibility, parent_symbol_id, content, content_hash`

// SymbolByID returns a single symbol, or nil if id is unknown.
func (s *Store) SymbolByID(id int64) (*api.Symbol, error) {
	row := s.db.QueryRow(`SELECT `+symbolColumns+` FROM symbols WHERE id = ?`, id)
	sym, err := scanSymbol(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, cgerrors.Store("get symbol by id", err)
	}
	return &sym, nil
}

// SymbolsByFile returns every symbol in fileID, ordered by start_line —
// the outline() contract.
func (s *Store) SymbolsByFile(fileID int64) ([]api.Symbol, error) {
	return s.querySymbols(`SELECT `+symbolColumns+` FROM symbols WHERE file_id = ? ORDER BY start_line`, fileID)
}

// SymbolsByNameInFile returns symbols named name within one file — scope
// tier 1 of the resolver (spec §4.3).
func (s *Store) SymbolsByNameInFile(fileID int64, name string) ([]api.Symbol, error) {
	return s.querySymbols(`SELECT `+symbolColumns+` FROM symbols WHERE file_id = ? AND name = ?`, fileID, name)
}

// SymbolsByNameInFiles returns symbols named name across a set of file
// IDs — scope tier 2 (directory-local).
func (s *Store) SymbolsByNameInFiles(fileIDs []int64, name string) ([]api.Symbol, error) {
	if len(fileIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(fileIDs))
	args := make([]any, 0, len(fileIDs)+1)
	for i, id := range fileIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, name)
	q := `SELECT ` + symbolColumns + ` FROM symbols WHERE file_id IN (` + strings.Join(placeholders, ",") + `) AND name = ?`
	return s.querySymbols(q, args...)
}

// SymbolsByName returns every symbol named name across the whole
// project — scope tier 3, where the resolver additionally requires
// uniqueness before using the result.
func (s *Store) SymbolsByName(name string) ([]api.Symbol, error) {
	return s.querySymbols(`SELECT `+symbolColumns+` FROM symbols WHERE name = ?`, name)
}

// SearchSymbols implements the name-match tiers of search() (spec
// §4.5): exact, prefix, substring, case-insensitive. The handler in
// internal/query re-ranks the merged rows by tier and kind; this method
// just returns every row that could plausibly match so the handler
// doesn't need three separate round-trips.
func (s *Store) SearchSymbols(query string, kindFilter string, fileFilter string, limit int) ([]api.Symbol, error) {
	like := "%" + escapeLike(query) + "%"
	q := `SELECT ` + symbolColumns + ` FROM symbols WHERE name LIKE ? ESCAPE '\' COLLATE NOCASE`
	args := []any{like}
	if kindFilter != "" {
		q += ` AND kind = ?`
		args = append(args, kindFilter)
	}
	if fileFilter != "" {
		q += ` AND file_id IN (SELECT id FROM files WHERE path = ?)`
		args = append(args, fileFilter)
	}
	q += ` LIMIT ?`
	args = append(args, maxInt(limit*4, 200)) // overfetch; handler re-ranks and truncates
	return s.querySymbols(q, args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (s *Store) querySymbols(q string, args ...any) ([]api.Symbol, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, cgerrors.Store("query symbols", err)
	}
	defer rows.Close()
	var out []api.Symbol
	for rows.Next() {
		sym, err := scanSymbol(rows)
		if err != nil {
			return nil, cgerrors.Store("scan symbol", err)
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

func scanEdge(row interface {
	Scan(dest ...any) error
}) (api.Edge, error) {
	var e api.Edge
	var source, target sql.NullInt64
	err := row.Scan(&e.ID, &e.FileID, &source, &e.TargetName, &e.Kind, &e.Line, &target)
	if err != nil {
		return e, err
	}
	e.SourceSymbolID = source.Int64
	e.TargetSymbolID = target.Int64
	return e, nil
}

const edgeColumns = `id, file_id, source_symbol_id, target_name, kind, line, target_symbol_id`

// UnresolvedEdges returns every edge with no target_symbol_id — the
// resolver's input set.
func (s *Store) UnresolvedEdges() ([]api.Edge, error) {
	return s.queryEdges(`SELECT ` + edgeColumns + ` FROM edges WHERE target_symbol_id IS NULL`)
}

// UpdateEdgeTargets resolves a batch of edges in one transaction.
func (s *Store) UpdateEdgeTargets(edgeIDToSymbolID map[int64]int64) error {
	if len(edgeIDToSymbolID) == 0 {
		return nil
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return cgerrors.Store("begin resolve edges", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE edges SET target_symbol_id = ? WHERE id = ?`)
	if err != nil {
		return cgerrors.Store("prepare resolve edges", err)
	}
	defer stmt.Close()
	for edgeID, symID := range edgeIDToSymbolID {
		if _, err := stmt.Exec(symID, edgeID); err != nil {
			return cgerrors.Store("update edge target", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return cgerrors.Store("commit resolve edges", err)
	}
	return nil
}

// EdgesByResolvedTargetName implements refs(): every edge whose resolved
// target has name = name, optionally filtered by kind.
func (s *Store) EdgesByResolvedTargetName(name string, kind string) ([]api.Edge, error) {
	q := `
		SELECT e.` + strings.ReplaceAll(edgeColumns, ", ", ", e.") + `
		FROM edges e
		JOIN symbols t ON t.id = e.target_symbol_id
		WHERE t.name = ?`
	args := []any{name}
	if kind != "" {
		q += ` AND e.kind = ?`
		args = append(args, kind)
	}
	q += ` ORDER BY e.file_id, e.line`
	return s.queryEdges(q, args...)
}

// EdgesByKindAndSourceName implements callees(): every `calls` edge
// whose source symbol is named name.
func (s *Store) EdgesByKindAndSourceName(kind, sourceName string) ([]api.Edge, error) {
	q := `
		SELECT e.` + strings.ReplaceAll(edgeColumns, ", ", ", e.") + `
		FROM edges e
		JOIN symbols src ON src.id = e.source_symbol_id
		WHERE e.kind = ? AND src.name = ?
		ORDER BY e.line`
	return s.queryEdges(q, kind, sourceName)
}

// EdgesIntoSymbols returns every edge whose resolved target is one of
// targetSymbolIDs — the reverse-edge expansion step of impact().
func (s *Store) EdgesIntoSymbols(targetSymbolIDs []int64) ([]api.Edge, error) {
	if len(targetSymbolIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(targetSymbolIDs))
	args := make([]any, len(targetSymbolIDs))
	for i, id := range targetSymbolIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	q := `SELECT ` + edgeColumns + ` FROM edges WHERE target_symbol_id IN (` + strings.Join(placeholders, ",") + `)`
	return s.queryEdges(q, args...)
}

// EdgesInheritsTouching returns every `inherits` edge where source or
// target is one of symbolIDs — one BFS layer of hierarchy()'s closure.
func (s *Store) EdgesInheritsTouching(symbolIDs []int64) ([]api.Edge, error) {
	if len(symbolIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(symbolIDs))
	args := make([]any, 0, len(symbolIDs)*2)
	for i, id := range symbolIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	for _, id := range symbolIDs {
		args = append(args, id)
	}
	in := strings.Join(placeholders, ",")
	q := `SELECT ` + edgeColumns + ` FROM edges WHERE kind = 'inherits' AND (source_symbol_id IN (` + in + `) OR target_symbol_id IN (` + in + `))`
	return s.queryEdges(q, args...)
}

// EdgesImportsByFile implements deps(): every imports edge originating
// in fileID, ordered by line.
func (s *Store) EdgesImportsByFile(fileID int64) ([]api.Edge, error) {
	return s.queryEdges(`SELECT `+edgeColumns+` FROM edges WHERE file_id = ? AND kind = 'imports' ORDER BY line`, fileID)
}

func (s *Store) queryEdges(q string, args ...any) ([]api.Edge, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, cgerrors.Store("query edges", err)
	}
	defer rows.Close()
	var out []api.Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, cgerrors.Store("scan edge", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// FileByID returns the FileInfo for id, or nil if unknown.
func (s *Store) FileByID(id int64) (*api.FileInfo, error) {
	row := s.db.QueryRow(`SELECT id, path, language, content_hash, size_bytes, last_indexed_at FROM files WHERE id = ?`, id)
	var f api.FileInfo
	err := row.Scan(&f.ID, &f.Path, &f.Language, &f.ContentHash, &f.SizeBytes, &f.LastIndexedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, cgerrors.Store("get file by id", err)
	}
	return &f, nil
}

// FilesInSameDirectory returns the IDs of every indexed file sharing
// filePath's immediate parent directory, including filePath's own file.
func (s *Store) FilesInSameDirectory(filePath string) ([]int64, error) {
	dir := path.Dir(filePath)
	rows, err := s.db.Query(`SELECT id, path FROM files`)
	if err != nil {
		return nil, cgerrors.Store("list files for directory scope", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		var p string
		if err := rows.Scan(&id, &p); err != nil {
			return nil, cgerrors.Store("scan file for directory scope", err)
		}
		if path.Dir(p) == dir {
			ids = append(ids, id)
		}
	}
	return ids, rows.Err()
}

// Stats implements stats(): counts of files by language, symbols by
// kind, edges (total, resolved).
func (s *Store) Stats() (api.Stats, error) {
	st := api.Stats{
		FilesByLanguage: map[string]int{},
		SymbolsByKind:   map[string]int{},
	}

	rows, err := s.db.Query(`SELECT language, COUNT(*) FROM files GROUP BY language`)
	if err != nil {
		return st, cgerrors.Store("stats files by language", err)
	}
	for rows.Next() {
		var lang string
		var n int
		if err := rows.Scan(&lang, &n); err != nil {
			rows.Close()
			return st, cgerrors.Store("scan files by language", err)
		}
		st.FilesByLanguage[lang] = n
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT kind, COUNT(*) FROM symbols GROUP BY kind`)
	if err != nil {
		return st, cgerrors.Store("stats symbols by kind", err)
	}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			rows.Close()
			return st, cgerrors.Store("scan symbols by kind", err)
		}
		st.SymbolsByKind[kind] = n
	}
	rows.Close()

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&st.EdgesTotal); err != nil {
		return st, cgerrors.Store("stats edges total", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM edges WHERE target_symbol_id IS NOT NULL`).Scan(&st.EdgesResolved); err != nil {
		return st, cgerrors.Store("stats edges resolved", err)
	}

	if v, ok, err := s.GetMeta("last_index_ms"); err == nil && ok {
		if ms, convErr := strconv.ParseInt(v, 10, 64); convErr == nil {
			st.LastIndexMS = ms
		}
	}

	return st, nil
}
