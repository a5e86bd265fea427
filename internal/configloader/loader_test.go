package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/golmm/internal/configloader"
	"github.com/yaklabco/golmm/pkg/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenNoConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// A VCS marker stops the upward search from escaping the temp dir.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Config.SpaceWidth)
	assert.Equal(t, 2, result.Config.TabWidth)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfigYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	path := writeFile(t, dir, ".golmm.yml", "space_width: 2\ntab_width: 4\n")

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Config.SpaceWidth)
	assert.Equal(t, 4, result.Config.TabWidth)
	assert.Equal(t, []string{path}, result.LoadedFrom)
}

func TestLoad_ProjectConfigTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, dir, ".golmm.toml", "tab_width = 8\n")

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, result.Config.TabWidth)
	// Unset fields keep defaults.
	assert.Equal(t, 1, result.Config.SpaceWidth)
}

func TestLoad_UpwardSearch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, dir, ".golmm.yml", "space_width: 3\n")

	nested := filepath.Join(dir, "docs", "guides")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:         nested,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Config.SpaceWidth)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, dir, ".golmm.yml", "space_width: 2\ntab_width: 4\n")
	explicit := writeFile(t, dir, "override.yaml", "tab_width: 6\n")

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:         dir,
		ExplicitPath:       explicit,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, result.Config.TabWidth)
	// Fields the explicit file leaves unset survive from the project config.
	assert.Equal(t, 2, result.Config.SpaceWidth)
}

func TestLoad_CLIConfigHighestPrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, dir, ".golmm.yml", "space_width: 2\n")

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		CLIConfig: &config.Config{
			SpaceWidth: 5,
			Format:     config.FormatJSON,
			Strict:     true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Config.SpaceWidth)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.True(t, result.Config.Strict)
}

func TestLoad_ValidationRejectsNegativeWidths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, dir, ".golmm.yml", "space_width: -1\n")

	_, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "space_width")
}

func TestLoad_BadExplicitPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	_, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:         dir,
		ExplicitPath:       filepath.Join(dir, "missing.yaml"),
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	})
	assert.Error(t, err)
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &config.Config{SpaceWidth: 2, TabWidth: 4}

	yamlPath := filepath.Join(dir, "out.yaml")
	require.NoError(t, configloader.WriteConfig(cfg, yamlPath))
	content, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# golmm configuration")
	assert.Contains(t, string(content), "space_width: 2")

	tomlPath := filepath.Join(dir, "out.toml")
	require.NoError(t, configloader.WriteConfig(cfg, tomlPath))
	content, err = os.ReadFile(tomlPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "space_width = 2")
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".golmm.yml", "space_width: 9\n")

	repo := filepath.Join(dir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	// The config above the VCS root must not be picked up.
	found, err := configloader.FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, found)
}
