package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/skillgap/internal/adapters/driven/storage"
	"github.com/custodia-labs/skillgap/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/vecmath"
)

// DefaultCollection is used when no collection name is configured.
const DefaultCollection = "skill_gap_masr"

// dbFile is the database file name inside the store directory.
const dbFile = "skillgap.db"

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is a SQLite-backed vector store holding one named collection.
type Store struct {
	db         *sql.DB
	path       string
	collection string
}

// NewStore opens (or creates) the store in dataDir.
// If dataDir is empty, defaults to ./vector_store.
func NewStore(dataDir, collection string) (*Store, error) {
	if dataDir == "" {
		dataDir = "vector_store"
	}
	if collection == "" {
		collection = DefaultCollection
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:         db,
		path:       dbPath,
		collection: collection,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Location describes the collection for user messages.
func (s *Store) Location() string {
	return s.path + "#" + s.collection
}

// migrate applies the steps in fsys newer than the recorded version,
// each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	steps, err := migrations.After(fsys, current)
	if err != nil {
		return err
	}
	for _, step := range steps {
		if err := s.apply(step); err != nil {
			return fmt.Errorf("migration %s: %w", step.Name, err)
		}
	}
	return nil
}

func (s *Store) apply(step migrations.Migration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(step.SQL); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", step.Version); err != nil {
		return err
	}
	return tx.Commit()
}

// Write replaces the collection in a single transaction.
// Readers see either the old collection or the new one, never a mix.
func (s *Store) Write(ctx context.Context, chunks []domain.Chunk) error {
	dim, err := storage.ValidateRecords(chunks)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE collection = ?", s.collection); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO collections (name, dimensions, record_count, written_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			dimensions = excluded.dimensions,
			record_count = excluded.record_count,
			written_at = excluded.written_at
	`, s.collection, dim, len(chunks), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (collection, id, document_id, position, content, doc_type, source_name, metadata, vector)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range chunks {
		c := &chunks[i]
		metaJSON, err := json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata for %s: %w", c.ID, err)
		}
		if c.Metadata == nil {
			metaJSON = []byte("{}")
		}
		if _, err := stmt.ExecContext(ctx, s.collection, c.ID, c.DocumentID, c.Position, c.Content,
			string(c.DocType()), c.SourceName(), string(metaJSON), vecmath.Encode(c.Embedding)); err != nil {
			return fmt.Errorf("inserting record %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing collection: %w", err)
	}
	return nil
}

// dimensions returns the collection's vector length.
// Returns an error wrapping domain.ErrMissingVectorStore when the collection
// has never been written.
func (s *Store) dimensions(ctx context.Context) (int, error) {
	var dim int
	err := s.db.QueryRowContext(ctx,
		"SELECT dimensions FROM collections WHERE name = ?", s.collection).Scan(&dim)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, storage.MissingCollection(s.Location())
	}
	if err != nil {
		return 0, fmt.Errorf("reading collection: %w", err)
	}
	return dim, nil
}

// scored pairs a record with its similarity while the scan runs.
type scored struct {
	chunk domain.Chunk
	score float64
}

// Search returns the k nearest records matching filter.
func (s *Store) Search(
	ctx context.Context, query []float32, k int, filter domain.SearchFilter,
) ([]domain.SearchResult, error) {
	dim, err := s.dimensions(ctx)
	if err != nil {
		return nil, err
	}
	if err := storage.CheckQuery(query, dim); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []domain.SearchResult{}, nil
	}

	rows, err := s.queryRecords(ctx, filter, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bySeq := make(map[int64]scored)
	var cands []vecmath.Candidate
	for rows.Next() {
		seq, chunk, vec, err := scanRecord(rows, true)
		if err != nil {
			return nil, err
		}
		score := vecmath.Cosine(query, vec)
		cands = append(cands, vecmath.Candidate{Seq: seq, Score: score})
		bySeq[seq] = scored{chunk: chunk, score: score}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	top := vecmath.TopK(cands, k)
	results := make([]domain.SearchResult, 0, len(top))
	for _, c := range top {
		hit := bySeq[c.Seq]
		results = append(results, domain.SearchResult{Chunk: hit.chunk, Score: hit.score})
	}
	return results, nil
}

// List returns every record matching filter in insertion order.
func (s *Store) List(ctx context.Context, filter domain.SearchFilter) ([]domain.Chunk, error) {
	if _, err := s.dimensions(ctx); err != nil {
		return nil, err
	}

	rows, err := s.queryRecords(ctx, filter, false)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Chunk, 0)
	for rows.Next() {
		_, chunk, _, err := scanRecord(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return out, nil
}

// Count returns the number of records in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE collection = ?", s.collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// Exists reports whether the collection has been written.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	_, err := s.dimensions(ctx)
	if errors.Is(err, domain.ErrMissingVectorStore) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// queryRecords selects the collection's records in insertion order.
func (s *Store) queryRecords(ctx context.Context, filter domain.SearchFilter, withVector bool) (*sql.Rows, error) {
	cols := "seq, id, document_id, position, content, metadata"
	if withVector {
		cols += ", vector"
	}
	q := "SELECT " + cols + " FROM records WHERE collection = ?"
	args := []any{s.collection}
	if filter.DocType != "" {
		q += " AND doc_type = ?"
		args = append(args, string(filter.DocType))
	}
	q += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	return rows, nil
}

// scanRecord reads one row produced by queryRecords.
func scanRecord(rows *sql.Rows, withVector bool) (int64, domain.Chunk, []float32, error) {
	var (
		seq      int64
		chunk    domain.Chunk
		metaJSON string
		blob     []byte
	)
	dest := []any{&seq, &chunk.ID, &chunk.DocumentID, &chunk.Position, &chunk.Content, &metaJSON}
	if withVector {
		dest = append(dest, &blob)
	}
	if err := rows.Scan(dest...); err != nil {
		return 0, domain.Chunk{}, nil, fmt.Errorf("scanning record: %w", err)
	}

	chunk.Metadata = make(map[string]any)
	if err := json.Unmarshal([]byte(metaJSON), &chunk.Metadata); err != nil {
		return 0, domain.Chunk{}, nil, fmt.Errorf("unmarshaling metadata for %s: %w", chunk.ID, err)
	}

	if !withVector {
		return seq, chunk, nil, nil
	}
	vec, err := vecmath.Decode(blob)
	if err != nil {
		return 0, domain.Chunk{}, nil, fmt.Errorf("decoding vector for %s: %w", chunk.ID, err)
	}
	return seq, chunk, vec, nil
}
