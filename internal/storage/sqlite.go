package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sahilm/fuzzy"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS docstrings (
			id TEXT PRIMARY KEY,
			filepath TEXT NOT NULL,
			package TEXT,
			language TEXT,
			kind TEXT,
			name TEXT,
			signature TEXT,
			start_line INTEGER,
			end_line INTEGER,
			text TEXT,
			hash TEXT,
			html TEXT,
			markdown TEXT,
			tree JSON,
			error TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_docstrings_file ON docstrings(filepath);`,
		`CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

const upsertRecord = `
	INSERT INTO docstrings (id, filepath, package, language, kind, name, signature, start_line, end_line, text, hash, html, markdown, tree, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		filepath=excluded.filepath,
		package=excluded.package,
		language=excluded.language,
		kind=excluded.kind,
		name=excluded.name,
		signature=excluded.signature,
		start_line=excluded.start_line,
		end_line=excluded.end_line,
		text=excluded.text,
		hash=excluded.hash,
		html=excluded.html,
		markdown=excluded.markdown,
		tree=excluded.tree,
		error=excluded.error
`

const selectRecord = `SELECT id, filepath, package, language, kind, name, signature, start_line, end_line, text, hash, html, markdown, tree, error FROM docstrings`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var r Record
	var tree []byte
	if err := row.Scan(&r.ID, &r.Filepath, &r.Package, &r.Language, &r.Kind, &r.Name, &r.Signature,
		&r.StartLine, &r.EndLine, &r.Text, &r.Hash, &r.HTML, &r.Markdown, &tree, &r.Error); err != nil {
		return nil, err
	}
	if len(tree) > 0 {
		r.Tree = tree
	}
	return &r, nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, records []*Record) error {
	stmt, err := tx.PrepareContext(ctx, upsertRecord)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		var tree any
		if len(r.Tree) > 0 {
			tree = string(r.Tree)
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.Filepath, r.Package, r.Language, r.Kind, r.Name, r.Signature,
			r.StartLine, r.EndLine, r.Text, r.Hash, r.HTML, r.Markdown, tree, r.Error); err != nil {
			return fmt.Errorf("failed to save %s: %w", r.ID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) SaveRecords(ctx context.Context, records []*Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertRecords(ctx, tx, records); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) ReplaceFile(ctx context.Context, filepath string, records []*Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM docstrings WHERE filepath = ?", filepath); err != nil {
		return fmt.Errorf("failed to clear %s: %w", filepath, err)
	}
	if err := insertRecords(ctx, tx, records); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) DeleteFile(ctx context.Context, filepath string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM docstrings WHERE filepath = ?", filepath)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) GetRecord(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+" WHERE id = ?", id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

func (s *SQLiteStore) queryRecords(ctx context.Context, query string, args ...any) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan docstring: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) FindRecordsByFile(ctx context.Context, filepath string) ([]*Record, error) {
	return s.queryRecords(ctx, selectRecord+" WHERE filepath = ? ORDER BY start_line", filepath)
}

func (s *SQLiteStore) ListRecords(ctx context.Context) ([]*Record, error) {
	return s.queryRecords(ctx, selectRecord+" ORDER BY filepath, start_line")
}

func (s *SQLiteStore) ListFiles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT filepath FROM docstrings ORDER BY filepath")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// SearchText matches case-insensitively; LIKE wildcards in query are taken
// literally.
func (s *SQLiteStore) SearchText(ctx context.Context, query string, limit int) ([]*Record, error) {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(query)
	q := selectRecord + ` WHERE text LIKE ? ESCAPE '\' ORDER BY filepath, start_line`
	args := []any{"%" + escaped + "%"}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryRecords(ctx, q, args...)
}

// nameSource adapts records to fuzzy.Source.
type nameSource []*Record

func (n nameSource) String(i int) string { return n[i].QualifiedName() }
func (n nameSource) Len() int            { return len(n) }

func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	records, err := s.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	matches := fuzzy.FindFrom(query, nameSource(records))
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, SearchResult{
			Record:         records[m.Index],
			Target:         m.Str,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}
	return results, nil
}

func (s *SQLiteStore) SetMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value
	`, key, value)
	return err
}

func (s *SQLiteStore) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}
