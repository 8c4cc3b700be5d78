package cmd

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/amalgam/amalgam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	if args == nil {
		args = []string{}
	}

	cmd := NewRootCommand()
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_WritesDefaultTarget(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"src/APIDefs.h": "#ifndef APIDEFS_H\n#define APIDEFS_H\n#include \"Types.h\"\n\n\nvoid api(void);\n#endif\n",
		"src/Types.h":   "#pragma once\ntypedef int id_t;\n",
	})

	stdout, _, err := execute(t, "src/APIDefs.h")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Completed: 1 header, 1 source")

	content, err := os.ReadFile(filepath.Join(dir, "Nexus.h"))
	require.NoError(t, err)
	assert.Equal(t, "typedef int id_t;\n\nvoid api(void);\n", string(content))
}

func TestRoot_HonoursFlags(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"a.c":           "#include \"internal/x.h\"\n#include \"pub.h\"\nint a;\n",
		"b.c":           "int b;\n",
		"pub.h":         "int pub;\n",
		"internal/x.h":  "int hidden;\n",
		"out/prelude.h": "// prelude\n",
	})
	target := filepath.Join(dir, "out", "prelude.h")

	_, _, err := execute(t, "a.c", "b.c",
		"--target_path", target,
		"--blacklisted_includes", "internal",
		"--write_mode", "append",
	)

	require.NoError(t, err)
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "// prelude\nint pub;\nint a;\nint b;\n", string(content))
}

func TestRoot_ReadsConfigFile(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"main.c":        "#include \"gen/x.h\"\nint main_impl;\n",
		"gen/x.h":       "int generated;\n",
		".amalgam.yaml": "target_path: Single.h\nblacklisted_includes: [gen]\n",
	})

	_, _, err := execute(t, "main.c")

	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, "Single.h"))
	require.NoError(t, err)
	assert.Equal(t, "int main_impl;\n", string(content))
}

func TestRoot_MissingSourceFails(t *testing.T) {
	setupProject(t, nil)

	_, _, err := execute(t, "missing.c")

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRoot_RefusesToOverwriteSource(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"api.h": "int api(void);\n",
	})

	_, _, err := execute(t, "api.h", "--target_path", "api.h", "--write_mode", "append")

	assert.ErrorIs(t, err, amalgam.ErrTargetIsSource)
	content, readErr := os.ReadFile(filepath.Join(dir, "api.h"))
	require.NoError(t, readErr)
	assert.Equal(t, "int api(void);\n", string(content))
}

func TestRoot_RequiresSource(t *testing.T) {
	setupProject(t, nil)

	_, _, err := execute(t)

	assert.Error(t, err)
}

func TestRoot_CheckReportsStaleTarget(t *testing.T) {
	setupProject(t, map[string]string{
		"main.c":  "int fresh;\n",
		"Nexus.h": "int stale;\n",
	})

	_, stderr, err := execute(t, "main.c", "--check")

	assert.ErrorIs(t, err, amalgam.ErrStale)
	assert.Contains(t, stderr, "-int stale;")
	assert.Contains(t, stderr, "+int fresh;")
}

func TestRoot_CheckPassesAfterBuild(t *testing.T) {
	setupProject(t, map[string]string{"main.c": "int fresh;\n"})

	_, _, err := execute(t, "main.c")
	require.NoError(t, err)

	stdout, _, err := execute(t, "main.c", "--check")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Up to date: Nexus.h")
}
