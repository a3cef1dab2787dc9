package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/skillgap/internal/adapters/driven/storage"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/vecmath"
)

const (
	// HNSW index parameters
	defaultEFConstruction = 200
	defaultM              = 16

	// Field names in the record hash
	fieldID         = "id"
	fieldDocumentID = "document_id"
	fieldPosition   = "position"
	fieldContent    = "content"
	fieldDocType    = "doc_type"
	fieldSourceName = "source_name"
	fieldMetadata   = "metadata"
	fieldVector     = "vector"
	fieldSeq        = "seq"
	fieldScore      = "score"

	// Field names in the collection meta hash
	metaDimensions = "dimensions"
	metaCount      = "count"
)

// returnFields are the hash fields read back by searches.
var returnFields = []string{
	fieldID, fieldDocumentID, fieldPosition, fieldContent,
	fieldDocType, fieldSourceName, fieldMetadata, fieldSeq,
}

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// Config holds Redis connection settings.
type Config struct {
	Addr       string
	Password   string
	DB         int
	Collection string
}

// VectorStore implements driven.VectorStore using RediSearch.
type VectorStore struct {
	client     *redis.Client
	addr       string
	collection string
}

// NewVectorStore connects to Redis and verifies the connection.
func NewVectorStore(ctx context.Context, cfg Config) (*VectorStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.Collection == "" {
		cfg.Collection = "skill_gap_masr"
	}

	// RESP2 keeps FT.SEARCH replies as flat arrays.
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Protocol: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w: %w", cfg.Addr, domain.ErrVectorStoreUnavailable, err)
	}

	return &VectorStore{
		client:     client,
		addr:       cfg.Addr,
		collection: cfg.Collection,
	}, nil
}

func (s *VectorStore) indexName() string { return s.collection + ":idx" }
func (s *VectorStore) metaKey() string   { return s.collection + ":meta" }
func (s *VectorStore) keyPrefix() string { return s.collection + ":rec:" }

// Location describes the collection for user messages.
func (s *VectorStore) Location() string {
	return "redis://" + s.addr + "/" + s.collection
}

// Close closes the Redis connection.
func (s *VectorStore) Close() error {
	return s.client.Close()
}

// Write drops the existing index and records, then writes the new collection.
func (s *VectorStore) Write(ctx context.Context, chunks []domain.Chunk) error {
	dim, err := storage.ValidateRecords(chunks)
	if err != nil {
		return err
	}

	if err := s.drop(ctx); err != nil {
		return err
	}

	if len(chunks) > 0 {
		if err := s.createIndex(ctx, dim); err != nil {
			return err
		}
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i := range chunks {
			fields, err := hashFields(&chunks[i], int64(i))
			if err != nil {
				return err
			}
			pipe.HSet(ctx, s.keyPrefix()+strconv.Itoa(i), fields...)
		}
		pipe.HSet(ctx, s.metaKey(), metaDimensions, dim, metaCount, len(chunks))
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing collection %s: %w", s.collection, err)
	}
	return nil
}

// drop removes the index together with its documents, and the meta key.
func (s *VectorStore) drop(ctx context.Context) error {
	err := s.client.Do(ctx, "FT.DROPINDEX", s.indexName(), "DD").Err()
	if err != nil && !isUnknownIndex(err) {
		return fmt.Errorf("dropping index %s: %w", s.indexName(), err)
	}
	if err := s.client.Del(ctx, s.metaKey()).Err(); err != nil {
		return fmt.Errorf("deleting collection meta: %w", err)
	}
	return nil
}

// createIndex creates the HNSW vector index over the record prefix.
func (s *VectorStore) createIndex(ctx context.Context, dim int) error {
	args := createIndexArgs(s.indexName(), s.keyPrefix(), dim)
	if err := s.client.Do(ctx, args...).Err(); err != nil {
		return fmt.Errorf("creating index %s: %w", s.indexName(), err)
	}
	return nil
}

// meta reads the collection's dimensions and record count.
func (s *VectorStore) meta(ctx context.Context) (dim, count int, err error) {
	vals, err := s.client.HMGet(ctx, s.metaKey(), metaDimensions, metaCount).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("reading collection meta: %w", err)
	}
	if len(vals) != 2 || vals[0] == nil {
		return 0, 0, storage.MissingCollection(s.Location())
	}
	dim, _ = strconv.Atoi(fmt.Sprint(vals[0]))
	count, _ = strconv.Atoi(fmt.Sprint(vals[1]))
	return dim, count, nil
}

// Search runs a KNN query restricted by filter.
func (s *VectorStore) Search(
	ctx context.Context, query []float32, k int, filter domain.SearchFilter,
) ([]domain.SearchResult, error) {
	dim, count, err := s.meta(ctx)
	if err != nil {
		return nil, err
	}
	if err := storage.CheckQuery(query, dim); err != nil {
		return nil, err
	}
	if k <= 0 || count == 0 {
		return []domain.SearchResult{}, nil
	}

	args := []any{"FT.SEARCH", s.indexName(), knnQuery(filter, k),
		"PARAMS", "2", "vec", vecmath.Encode(query),
		"RETURN", strconv.Itoa(len(returnFields) + 1)}
	for _, f := range returnFields {
		args = append(args, f)
	}
	args = append(args, fieldScore,
		"SORTBY", fieldScore, "ASC",
		"LIMIT", "0", strconv.Itoa(k),
		"DIALECT", "2")

	reply, err := s.client.Do(ctx, args...).Result()
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	hits, err := parseSearchReply(reply)
	if err != nil {
		return nil, fmt.Errorf("parsing search reply: %w", err)
	}
	return rankHits(hits, k), nil
}

// List returns every record matching filter in insertion order.
func (s *VectorStore) List(ctx context.Context, filter domain.SearchFilter) ([]domain.Chunk, error) {
	_, count, err := s.meta(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []domain.Chunk{}, nil
	}

	args := []any{"FT.SEARCH", s.indexName(), filterQuery(filter),
		"RETURN", strconv.Itoa(len(returnFields))}
	for _, f := range returnFields {
		args = append(args, f)
	}
	args = append(args,
		"SORTBY", fieldSeq, "ASC",
		"LIMIT", "0", strconv.Itoa(count),
		"DIALECT", "2")

	reply, err := s.client.Do(ctx, args...).Result()
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	hits, err := parseSearchReply(reply)
	if err != nil {
		return nil, fmt.Errorf("parsing list reply: %w", err)
	}
	out := make([]domain.Chunk, len(hits))
	for i, h := range hits {
		out[i] = h.chunk
	}
	return out, nil
}

// Count returns the number of records in the collection.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	_, count, err := s.meta(ctx)
	if errors.Is(err, domain.ErrMissingVectorStore) {
		return 0, nil
	}
	return count, err
}

// Exists reports whether the collection has been written.
func (s *VectorStore) Exists(ctx context.Context) (bool, error) {
	n, err := s.client.Exists(ctx, s.metaKey()).Result()
	if err != nil {
		return false, fmt.Errorf("checking collection: %w", err)
	}
	return n > 0, nil
}

// hit is one parsed FT.SEARCH result.
type hit struct {
	chunk    domain.Chunk
	seq      int64
	distance float64
}

// createIndexArgs builds the FT.CREATE command for a collection.
func createIndexArgs(index, prefix string, dim int) []any {
	return []any{"FT.CREATE", index,
		"ON", "HASH",
		"PREFIX", "1", prefix,
		"SCHEMA",
		fieldVector, "VECTOR", "HNSW", "10",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(dim),
		"DISTANCE_METRIC", "COSINE",
		"EF_CONSTRUCTION", strconv.Itoa(defaultEFConstruction),
		"M", strconv.Itoa(defaultM),
		fieldDocType, "TAG",
		fieldSourceName, "TAG",
		fieldSeq, "NUMERIC", "SORTABLE",
	}
}

// hashFields flattens a chunk into HSET field/value pairs.
func hashFields(c *domain.Chunk, seq int64) ([]any, error) {
	meta := c.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshalling metadata for %s: %w", c.ID, err)
	}
	return []any{
		fieldID, c.ID,
		fieldDocumentID, c.DocumentID,
		fieldPosition, c.Position,
		fieldContent, c.Content,
		fieldDocType, string(c.DocType()),
		fieldSourceName, c.SourceName(),
		fieldMetadata, string(metaJSON),
		fieldVector, vecmath.Encode(c.Embedding),
		fieldSeq, seq,
	}, nil
}

// filterQuery renders a SearchFilter as a RediSearch query.
func filterQuery(filter domain.SearchFilter) string {
	if filter.DocType == "" {
		return "*"
	}
	return fmt.Sprintf("@%s:{%s}", fieldDocType, escapeTag(string(filter.DocType)))
}

// knnQuery renders a KNN query over the filtered records.
func knnQuery(filter domain.SearchFilter, k int) string {
	base := filterQuery(filter)
	if base != "*" {
		base = "(" + base + ")"
	}
	return fmt.Sprintf("%s=>[KNN %d @%s $vec AS %s]", base, k, fieldVector, fieldScore)
}

// escapeTag escapes characters RediSearch treats as syntax inside a tag query.
func escapeTag(s string) string {
	var b strings.Builder
	for _, r := range s {
		isWord := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isWord {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseSearchReply parses a RESP2 FT.SEARCH reply:
// [total, key1, [field, value, ...], key2, [...], ...].
func parseSearchReply(reply any) ([]hit, error) {
	values, ok := reply.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected reply type %T", reply)
	}
	if len(values) == 0 {
		return []hit{}, nil
	}

	hits := make([]hit, 0, len(values)/2)
	for i := 1; i+1 < len(values); i += 2 {
		fields, ok := values[i+1].([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected fields type %T for %v", values[i+1], values[i])
		}
		h, err := parseFields(fields)
		if err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, nil
}

// parseFields parses one flattened field/value list.
func parseFields(fields []any) (hit, error) {
	h := hit{chunk: domain.Chunk{Metadata: map[string]any{}}}
	for i := 0; i+1 < len(fields); i += 2 {
		name := fmt.Sprint(fields[i])
		value := fmt.Sprint(fields[i+1])

		switch name {
		case fieldID:
			h.chunk.ID = value
		case fieldDocumentID:
			h.chunk.DocumentID = value
		case fieldPosition:
			h.chunk.Position, _ = strconv.Atoi(value)
		case fieldContent:
			h.chunk.Content = value
		case fieldMetadata:
			if err := json.Unmarshal([]byte(value), &h.chunk.Metadata); err != nil {
				return hit{}, fmt.Errorf("unmarshaling metadata: %w", err)
			}
		case fieldSeq:
			seq, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return hit{}, fmt.Errorf("parsing seq %q: %w", value, err)
			}
			h.seq = seq
		case fieldScore:
			d, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return hit{}, fmt.Errorf("parsing score %q: %w", value, err)
			}
			h.distance = d
		}
	}

	// doc_type and source_name are duplicated in the hash for indexing;
	// the metadata JSON is authoritative but fall back to the hash fields.
	for i := 0; i+1 < len(fields); i += 2 {
		name := fmt.Sprint(fields[i])
		if (name == fieldDocType || name == fieldSourceName) && h.chunk.Metadata[name] == nil {
			h.chunk.Metadata[name] = fmt.Sprint(fields[i+1])
		}
	}
	return h, nil
}

// rankHits converts cosine distances to similarities and orders the hits
// by descending similarity, then insertion order.
func rankHits(hits []hit, k int) []domain.SearchResult {
	bySeq := make(map[int64]hit, len(hits))
	cands := make([]vecmath.Candidate, 0, len(hits))
	for _, h := range hits {
		bySeq[h.seq] = h
		cands = append(cands, vecmath.Candidate{Seq: h.seq, Score: 1 - h.distance})
	}

	top := vecmath.TopK(cands, k)
	results := make([]domain.SearchResult, 0, len(top))
	for _, c := range top {
		results = append(results, domain.SearchResult{Chunk: bySeq[c.Seq].chunk, Score: c.Score})
	}
	return results
}

// isUnknownIndex reports whether err is RediSearch's missing-index error.
func isUnknownIndex(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unknown index") || strings.Contains(msg, "no such index")
}
