package emitter

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWriteTo_HeadersThenSourcesInOrder(t *testing.T) {
	dir := t.TempDir()
	h1 := writeFile(t, dir, "h1.h", "#pragma once\nint h1;\n")
	h2 := writeFile(t, dir, "h2.h", "int h2;\n")
	a := writeFile(t, dir, "a.c", "#include \"h1.h\"\nint a;\n")
	b := writeFile(t, dir, "b.c", "#include \"h2.h\"\nint b;\n")

	var out bytes.Buffer
	stats, err := New(nil).WriteTo(&out, []string{h1, h2}, []string{a, b})

	require.NoError(t, err)
	assert.Equal(t, "int h1;\nint h2;\nint a;\nint b;\n", out.String())
	assert.Equal(t, 4, stats.Files)
	assert.Equal(t, 7, stats.LinesRead)
	assert.Equal(t, 4, stats.LinesWritten)
	assert.Equal(t, 3, stats.LinesDropped)
	assert.Equal(t, int64(out.Len()), stats.BytesWritten)
}

func TestWriteTo_CollapsesBlankLinesAcrossFileBoundaries(t *testing.T) {
	dir := t.TempDir()
	h1 := writeFile(t, dir, "h1.h", "int h1;\n\n\n")
	h2 := writeFile(t, dir, "h2.h", "\n\nint h2;\n\n")
	src := writeFile(t, dir, "main.c", "\n\n\nint main;\n")

	var out bytes.Buffer
	_, err := New(nil).WriteTo(&out, []string{h1, h2}, []string{src})

	require.NoError(t, err)
	assert.Equal(t, "int h1;\n\nint h2;\n\nint main;\n", out.String())
	assert.NotContains(t, out.String(), "\n\n\n")
}

func TestWriteTo_NeverEmitsDirectiveLines(t *testing.T) {
	dir := t.TempDir()
	header := writeFile(t, dir, "api.h", strings.Join([]string{
		"#ifndef API_H",
		"#define API_H",
		"#include <stdint.h>",
		"#if defined(X)",
		"#error nope",
		"#endif",
		"#pragma pack(1)",
		"struct s { int x; };",
		"#endif",
		"",
	}, "\n"))

	var out bytes.Buffer
	_, err := New(nil).WriteTo(&out, []string{header}, nil)

	require.NoError(t, err)
	assert.Equal(t, "struct s { int x; };\n", out.String())
	for _, directive := range DefaultDirectives {
		assert.NotContains(t, out.String(), directive)
	}
}

func TestWriteTo_TerminatesFinalLineWithoutNewline(t *testing.T) {
	dir := t.TempDir()
	h1 := writeFile(t, dir, "h1.h", "int h1;")
	h2 := writeFile(t, dir, "h2.h", "int h2;")

	var out bytes.Buffer
	_, err := New(nil).WriteTo(&out, []string{h1, h2}, nil)

	require.NoError(t, err)
	assert.Equal(t, "int h1;\nint h2;\n", out.String())
}

func TestWriteTo_PreservesCRLF(t *testing.T) {
	dir := t.TempDir()
	h := writeFile(t, dir, "win.h", "#pragma once\r\nint x;\r\n\r\n\r\nint y;\r\n")

	var out bytes.Buffer
	_, err := New(nil).WriteTo(&out, []string{h}, nil)

	require.NoError(t, err)
	assert.Equal(t, "int x;\r\n\r\nint y;\r\n", out.String())
}

func TestWriteTo_MissingSourceFails(t *testing.T) {
	var out bytes.Buffer
	_, err := New(nil).WriteTo(&out, nil, []string{filepath.Join(t.TempDir(), "missing.c")})

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNew_CustomDirectives(t *testing.T) {
	dir := t.TempDir()
	h := writeFile(t, dir, "a.h", "#include \"b.h\"\nAPI_EXPORT int x;\n")

	e := New([]string{"API_EXPORT"})
	var out bytes.Buffer
	_, err := e.WriteTo(&out, []string{h}, nil)

	require.NoError(t, err)
	assert.Equal(t, "#include \"b.h\"\n", out.String())
	assert.Equal(t, []string{"API_EXPORT"}, e.Directives())
}

func TestNew_CopiesDirectives(t *testing.T) {
	directives := []string{"#define"}
	e := New(directives)
	directives[0] = "changed"

	assert.Equal(t, []string{"#define"}, e.Directives())
}

func TestEmit_WriteModeTruncates(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "Nexus.h", "stale content\n")
	h := writeFile(t, dir, "a.h", "int a;\n")

	_, err := New(nil).Emit(target, []string{h}, WriteModeWrite, nil)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "int a;\n", string(content))
}

func TestEmit_AppendModeKeepsExistingBytes(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "Nexus.h", "// prologue\n")
	h := writeFile(t, dir, "a.h", "int a;\n")
	src := writeFile(t, dir, "main.c", "int main;\n")

	_, err := New(nil).Emit(target, []string{h}, WriteModeAppend, []string{src})
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "// prologue\nint a;\nint main;\n", string(content))
}

func TestEmit_CreatesMissingTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.h")
	h := writeFile(t, dir, "a.h", "int a;\n")

	_, err := New(nil).Emit(target, []string{h}, WriteModeAppend, nil)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "int a;\n", string(content))
}

func TestEmit_RejectsUnknownWriteMode(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.h")

	_, err := New(nil).Emit(target, nil, WriteMode("overwrite"), nil)

	assert.ErrorContains(t, err, "unknown write mode")
	_, statErr := os.Stat(target)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestEmit_ExampleProjectMatchesGolden(t *testing.T) {
	dir := filepath.Join("testdata", "example")
	target := filepath.Join(t.TempDir(), "Nexus.h")

	headers := []string{filepath.Join(dir, "b.h"), filepath.Join(dir, "a.h")}
	_, err := New(nil).Emit(target, headers, WriteModeWrite, []string{filepath.Join(dir, "main.c")})
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "example_amalgamation", content)
}

func TestParseWriteMode(t *testing.T) {
	mode, err := ParseWriteMode("write")
	require.NoError(t, err)
	assert.Equal(t, WriteModeWrite, mode)

	mode, err = ParseWriteMode("append")
	require.NoError(t, err)
	assert.Equal(t, WriteModeAppend, mode)

	_, err = ParseWriteMode("w")
	assert.ErrorContains(t, err, "unknown write mode")
}
