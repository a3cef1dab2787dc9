// Package normalisers provides implementations of the Normaliser interface
// for the file formats the loader reads. Each normaliser knows how to
// extract text content from one or more file extensions.
//
// Normalisers are registered with the Registry at startup via RegisterDefaults.
package normalisers
