// Package domain holds the types shared by every layer: loaded documents
// and their chunks, the job/CV doc type tag, ranked search results, the
// settings tree and the report returned by an analysis.
//
// It imports nothing outside the standard library.
package domain
