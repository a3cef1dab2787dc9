// Package sqlite provides the default on-disk implementation of driven.VectorStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Every collection lives in one database file:
//
//   - collections: one row per written collection with its dimensionality
//   - records: chunk text, metadata and the float32 vector as a blob
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Search
//
// Search is a brute-force cosine scan over the filtered collection. The
// records table keeps an AUTOINCREMENT sequence so equal scores resolve
// in insertion order.
//
// # Data Location
//
// By default, the database is stored at vector_store/skillgap.db relative to
// the working directory.
package sqlite
