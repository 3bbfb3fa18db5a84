// Package filex holds filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold the file at path.
// Paths without a directory component, in-memory SQLite names and
// "file:" URIs with query parameters are resolved to their file part first.
func EnsureParentDir(path string) (string, error) {
	name := dataFile(path)
	if name == "" {
		return "", nil
	}

	dir := filepath.Dir(name)
	if dir == "." {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// dataFile strips a "file:" scheme and query string. It returns "" for
// in-memory databases.
func dataFile(dsn string) string {
	name := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == ":memory:" {
		return ""
	}
	return name
}
