package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[install]
tool = "clang-tidy"
manager = "dnf"
sudo = false

[log]
level = "debug"

[update]
source = "someone/fork"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "clang-tidy", cfg.Install.Tool)
	assert.Equal(t, "dnf", cfg.Install.Manager)
	assert.False(t, cfg.Install.Sudo)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "someone/fork", cfg.Update.Source)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "warn"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "cppcheck", cfg.Install.Tool)
	assert.True(t, cfg.Install.Sudo)
	assert.Equal(t, DefaultUpdateSource, cfg.Update.Source)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err), "Error should be a 'file not found' type error")
}

func TestLoadOrDefault_Missing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_InvalidFormat(t *testing.T) {
	path := writeConfig(t, `
[install
tool = "cppcheck"
`)
	_, err := LoadOrDefault(path)
	assert.Error(t, err)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, `
[install]
tool = "cppcheck"
flavour = "vanilla"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install.flavour")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"empty tool":  "[install]\ntool = \"\"\n",
		"bad level":   "[log]\nlevel = \"shouty\"\n",
		"bad source":  "[update]\nsource = \"no-slash\"\n",
		"bad source2": "[update]\nsource = \"/repo\"\n",
		"bad manager": "[install]\nmanager = \"dnff\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Install.Manager = "brew"
	cfg.Log.Level = "error"

	require.NoError(t, Write(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Config
	_, err = toml.Decode(string(data), &decoded)
	require.NoError(t, err)
	assert.Equal(t, *cfg, decoded)

	// Overwrites in place.
	cfg.Install.Tool = "cpplint"
	require.NoError(t, Write(path, cfg))
	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cpplint", reloaded.Install.Tool)
}

func TestSplitSource(t *testing.T) {
	owner, repo, err := SplitSource("nightconcept/sailup")
	require.NoError(t, err)
	assert.Equal(t, "nightconcept", owner)
	assert.Equal(t, "sailup", repo)

	_, _, err = SplitSource("a/b/c")
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))

	cfg := Default()
	cfg.Install.Tool = "iwyu"
	ctx := WithConfig(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))
}
