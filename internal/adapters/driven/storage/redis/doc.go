// Package redis provides a driven.VectorStore backed by Redis Stack.
//
// Records are stored as hashes under "<collection>:rec:<seq>" and indexed
// with a RediSearch HNSW vector index using the COSINE metric. Collection
// metadata (dimensions, record count) lives in "<collection>:meta".
//
// The store needs the RediSearch module (redis-stack-server or Redis 8).
package redis
