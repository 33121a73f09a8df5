package configpaths_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Alia5/yapigen/internal/configpaths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("AppData", dir)

	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths("custom.yml")
	require.NotEmpty(t, yamlPaths)
	assert.Equal(t, "custom.yml", yamlPaths[0])
	assert.NotContains(t, jsonPaths, "custom.yml")

	assert.Contains(t, jsonPaths, filepath.Join(dir, "yapigen", "yapigen.json"))
	assert.Contains(t, tomlPaths, filepath.Join(dir, "yapigen", "build.toml"))
	assert.Contains(t, yamlPaths, filepath.Join(dir, "yapigen", "config.yaml"))
	if runtime.GOOS != "windows" {
		assert.Contains(t, jsonPaths, "/etc/yapigen/yapigen.json")
	}

	jsonPaths, _, _ = configpaths.ConfigCandidatePaths("settings")
	assert.Equal(t, "settings", jsonPaths[0])
}

func TestDefaultNamedConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("AppData", dir)

	p, err := configpaths.DefaultNamedConfigPath("build", "yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "yapigen", "build.yaml"), p)

	p, err = configpaths.DefaultNamedConfigPath("build", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "yapigen", "build.json"), p)
}
