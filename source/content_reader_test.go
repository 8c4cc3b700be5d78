package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemContentReader_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.h")
	require.NoError(t, os.WriteFile(path, []byte("int api(void);\n"), 0o644))

	content, err := FilesystemContentReader(path)

	require.NoError(t, err)
	assert.Equal(t, "int api(void);\n", string(content))
}

func TestFilesystemContentReader_MissingFileWrapsNotExist(t *testing.T) {
	_, err := FilesystemContentReader(filepath.Join(t.TempDir(), "missing.h"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.h")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	assert.True(t, IsRegularFile(path))
	assert.False(t, IsRegularFile(dir))
	assert.False(t, IsRegularFile(filepath.Join(dir, "nope.h")))
}
