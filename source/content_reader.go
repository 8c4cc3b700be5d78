package source

import (
	"fmt"
	"os"
)

// ContentReader is a function that reads file content given a file path.
// This allows the caller to control how files are read (filesystem, in-memory fixtures, etc.)
type ContentReader func(filePath string) ([]byte, error)

// FilesystemContentReader reads files directly from disk.
func FilesystemContentReader(filePath string) ([]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return content, nil
}

// IsRegularFile reports whether path exists and is not a directory.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
