package storage

import (
	"context"
	"errors"

	"docmark/internal/extractor"
)

// ErrNotFound is returned when a docstring ID is not stored.
var ErrNotFound = errors.New("docstring not found")

// Metadata keys written by the indexer.
const (
	MetaLastCommit = "last_commit"
	MetaLastScan   = "last_scan"
	MetaRoot       = "root"
)

// Record is one stored docstring with its rendered forms.
type Record struct {
	extractor.Docstring
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
	Tree     []byte `json:"tree,omitempty"` // serialized block tree (JSON)
	Error    string `json:"error,omitempty"`
}

// SearchResult is a fuzzy match on a record's qualified name.
type SearchResult struct {
	Record         *Record
	Target         string
	MatchedIndexes []int
	Score          int
}

// Store combines docstring and metadata storage.
type Store interface {
	DocstringStore
	MetadataStore
	Close() error
}

// DocstringStore defines operations for persisting docstring records.
type DocstringStore interface {
	// SaveRecords upserts records in one transaction.
	SaveRecords(ctx context.Context, records []*Record) error

	// ReplaceFile swaps all records of a file for the given ones.
	ReplaceFile(ctx context.Context, filepath string, records []*Record) error

	// DeleteFile removes all records of a file and reports how many were removed.
	DeleteFile(ctx context.Context, filepath string) (int64, error)

	GetRecord(ctx context.Context, id string) (*Record, error)
	FindRecordsByFile(ctx context.Context, filepath string) ([]*Record, error)
	ListRecords(ctx context.Context) ([]*Record, error)
	// ListFiles returns the distinct file paths that have records, sorted.
	ListFiles(ctx context.Context) ([]string, error)

	// Search fuzzy-matches query against qualified names, best first.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// SearchText finds records whose docstring text contains query.
	SearchText(ctx context.Context, query string, limit int) ([]*Record, error)
}

// MetadataStore keeps small key/value facts about the index.
type MetadataStore interface {
	SetMeta(ctx context.Context, key, value string) error
	// GetMeta returns "" for a missing key.
	GetMeta(ctx context.Context, key string) (string, error)
}

// QualifiedName is the name search matches against, e.g. "pkg.mod.Class.method".
func (r *Record) QualifiedName() string {
	if r.Package == "" || r.Name == r.Package {
		return r.Name
	}
	return r.Package + "." + r.Name
}
