// Package config holds the key/value map shared by the ConfigStore
// adapters. Keys are dotted paths such as "llm.model" or "chunking.size".
//
// Reads are lenient: TOML decodes integers as int64 and arrays as []any,
// while code sets plain ints and []string, and both must read back the
// same. A value of the wrong type reads as the zero value.
package config

import (
	"math"
	"strings"
	"sync"
)

// Values is a concurrency-safe flat map of dotted keys.
type Values struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewValues returns an empty map.
func NewValues() *Values {
	return &Values{data: make(map[string]any)}
}

// Get returns the raw value stored under key.
func (v *Values) Get(key string) (any, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	val, ok := v.data[key]
	return val, ok
}

// GetString returns a string value.
func (v *Values) GetString(key string) string {
	val, _ := v.Get(key)
	s, _ := val.(string)
	return s
}

// GetInt returns an integer value. Floats count only when whole.
func (v *Values) GetInt(key string) int {
	val, _ := v.Get(key)
	switch n := val.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	}
	return 0
}

// GetFloat returns a float value. Integers are accepted so that
// "temperature = 1" reads as 1.0.
func (v *Values) GetFloat(key string) float64 {
	val, _ := v.Get(key)
	switch n := val.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// GetBool returns a boolean value.
func (v *Values) GetBool(key string) bool {
	val, _ := v.Get(key)
	b, _ := val.(bool)
	return b
}

// GetStringSlice returns a string list. Non-string items are dropped.
func (v *Values) GetStringSlice(key string) []string {
	val, _ := v.Get(key)
	switch list := val.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Put stores value under key.
func (v *Values) Put(key string, value any) {
	v.mu.Lock()
	v.data[key] = value
	v.mu.Unlock()
}

// Replace swaps the whole map, e.g. after reading a file.
func (v *Values) Replace(data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}
	v.mu.Lock()
	v.data = data
	v.mu.Unlock()
}

// Snapshot returns a copy of the current map.
func (v *Values) Snapshot() map[string]any {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[string]any, len(v.data))
	for k, val := range v.data {
		out[k] = val
	}
	return out
}

// Len returns the number of keys.
func (v *Values) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.data)
}

// Flatten turns nested tables into dotted keys:
// {"llm": {"model": "x"}} becomes {"llm.model": "x"}.
func Flatten(nested map[string]any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, nested, "")
	return out
}

func flattenInto(out, nested map[string]any, prefix string) {
	for key, val := range nested {
		if prefix != "" {
			key = prefix + "." + key
		}
		if table, ok := val.(map[string]any); ok {
			flattenInto(out, table, key)
			continue
		}
		out[key] = val
	}
}

// Nest is the inverse of Flatten.
func Nest(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for key, val := range flat {
		parts := strings.Split(key, ".")
		table := out
		for _, part := range parts[:len(parts)-1] {
			child, ok := table[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				table[part] = child
			}
			table = child
		}
		table[parts[len(parts)-1]] = val
	}
	return out
}
