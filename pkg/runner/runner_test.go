package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/golmm/pkg/lmm"
	"github.com/yaklabco/golmm/pkg/runner"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiscover_FindsLMMFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.lmm", "text\n")
	b := writeFile(t, dir, "docs/b.lmm", "text\n")
	writeFile(t, dir, "notes.txt", "not lmm\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestDiscover_SkipsHiddenAndExcluded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keep := writeFile(t, dir, "keep.lmm", "x\n")
	writeFile(t, dir, ".hidden/skip.lmm", "x\n")
	writeFile(t, dir, "vendor/dep.lmm", "x\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:        []string{"."},
		WorkingDir:   dir,
		ExcludeGlobs: []string{"vendor/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{keep}, files)
}

func TestDiscover_SingleFileArgument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "one.lmm", "x\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"one.lmm"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"does-not-exist"},
		WorkingDir: t.TempDir(),
	})
	assert.Error(t, err)
}

func TestRun_ParsesAndAggregates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "clean.lmm", "@part One {\nbody\n}\n")
	writeFile(t, dir, "broken.lmm", "@a { unclosed\n")
	writeFile(t, dir, "warn.lmm", "@note{\nx\n}\n")

	r := runner.New(lmm.DefaultOptions())
	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Jobs:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesProcessed)
	assert.Equal(t, 2, result.Stats.FilesWithIssues)
	assert.Equal(t, 2, result.Stats.DiagnosticsTotal)
	assert.Equal(t, 1, result.Stats.Errors)
	assert.Equal(t, 1, result.Stats.Warnings)
	assert.True(t, result.HasFailures())
	assert.True(t, result.HasIssues())

	// Outcomes are ordered by path regardless of worker completion order.
	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(dir, "broken.lmm"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "clean.lmm"), result.Files[1].Path)
	assert.Equal(t, filepath.Join(dir, "warn.lmm"), result.Files[2].Path)
}

func TestRun_CleanTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.lmm", "hello\n")

	r := runner.New(lmm.DefaultOptions())
	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.False(t, result.HasFailures())
	assert.False(t, result.HasIssues())
	assert.Equal(t, 1, result.Stats.FilesProcessed)
}

func TestRun_EmptyDirectory(t *testing.T) {
	t.Parallel()

	r := runner.New(lmm.DefaultOptions())
	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.lmm", "x\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := runner.New(lmm.DefaultOptions())
	_, err := r.Run(ctx, runner.Options{Paths: []string{"."}, WorkingDir: dir})
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "doc.lmm", "#title: T\n\nbody\n")

	r := runner.New(lmm.DefaultOptions())
	parsed, err := r.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, parsed.Document.Attrs, 1)
	assert.Equal(t, "T", parsed.Document.Attrs[0].Value)

	_, err = r.ParseFile(filepath.Join(dir, "missing.lmm"))
	assert.Error(t, err)
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".lmm"}, runner.DefaultExtensions())
}
