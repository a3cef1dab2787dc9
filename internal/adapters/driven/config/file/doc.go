// Package file holds the adapters that live under ~/.skillgap: the TOML
// ConfigStore and the PromptStore, whose templates users may edit.
package file
