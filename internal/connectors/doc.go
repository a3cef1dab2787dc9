// Package connectors provides the document sources the ingestion flow reads.
//
// Only the local filesystem is supported: job descriptions and CVs are read
// from two directories and watched for changes.
package connectors
