package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// DisplayPath shortens path relative to the working directory when it lives
// below it, and leaves it absolute otherwise.
func DisplayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	return relativeTo(wd, path)
}

func relativeTo(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
