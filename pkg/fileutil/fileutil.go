package fileutil

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// SafeFilename sanitizes a filename against filesystem-unsafe characters
// and ensures the given extension. An empty name falls back to def.
func SafeFilename(name, def, ext string) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = def
	}
	base = unsafeChars.ReplaceAllString(base, "_")
	if ext != "" && !strings.HasSuffix(strings.ToLower(base), strings.ToLower(ext)) {
		base += ext
	}
	return base
}

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %q: %w", dir, err)
	}
	return nil
}
