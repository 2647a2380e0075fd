package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SETTINGS_TUI_CONFIG", "")

	p, err := Load()
	require.NoError(t, err)
	assert.False(t, p.NoColor)
	assert.Equal(t, "info", p.Log.Level)
	assert.Equal(t, 32, p.UI.InputWidth)
}

func TestLoadFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SETTINGS_TUI_CONFIG", "")
	dir := filepath.Join(home, ".config", "settings-tui")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
no_color = true

[log]
enabled = true
level = "debug"

[ui]
width = 70
`), 0o644))
	t.Setenv("SETTINGS_TUI_UI_WIDTH", "90")

	p, err := Load()
	require.NoError(t, err)
	assert.True(t, p.NoColor)
	assert.True(t, p.Log.Enabled)
	assert.Equal(t, "debug", p.Log.Level)
	assert.Equal(t, 90, p.UI.Width, "env wins over the file")
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SETTINGS_TUI_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load()
	assert.ErrorContains(t, err, "read preferences")
}
