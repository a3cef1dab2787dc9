package filesystem

import (
	"path/filepath"
	"strings"
)

// ResolvePath converts a directory argument to a clean local path.
// Handles file:// URIs and bare paths.
func ResolvePath(uri string) string {
	path := strings.TrimPrefix(uri, "file://")
	if path == "" {
		return "."
	}
	return filepath.Clean(path)
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && part[0] == '.' && part != ".." {
			return true
		}
	}
	return false
}
