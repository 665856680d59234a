package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-tools/flexarc/internal/config"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.LoadScope(config.ScopeGlobal)
	require.NoError(t, err)
	assert.Empty(t, cfg.Author.Name)
	assert.Empty(t, cfg.Archive.Dir)
	assert.Equal(t, int64(config.DefaultMaxReport), cfg.MaxReport())
}

func TestSetSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.LoadScope(config.ScopeGlobal)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("author.name", "Jane Trader"))
	require.NoError(t, cfg.Set("archive.dir", "/srv/reports"))
	require.NoError(t, cfg.Set("limits.max_report", "4096"))
	require.NoError(t, cfg.Save())

	loaded, err := config.LoadScope(config.ScopeGlobal)
	require.NoError(t, err)

	got, err := loaded.Get("author.name")
	require.NoError(t, err)
	assert.Equal(t, "Jane Trader", got)
	assert.Equal(t, "/srv/reports", loaded.Archive.Dir)
	assert.Equal(t, int64(4096), loaded.MaxReport())
	assert.True(t, loaded.IsSet("limits.max_report"))
}

func TestSetRejectsBadValues(t *testing.T) {
	var cfg config.Config

	err := cfg.Set("limits.max_report", "zero")
	assert.ErrorIs(t, err, config.ErrInvalidValue)

	err = cfg.Set("no.such.key", "x")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".flexarc"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".flexarc", "config.yaml"),
		[]byte("author: [oops"), 0644))

	_, err := config.LoadScope(config.ScopeGlobal)
	assert.Error(t, err)
}

func TestLoadRejectsOutOfRangeLimit(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".flexarc"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".flexarc", "config.yaml"),
		[]byte("limits:\n  max_report: 0\n"), 0644))

	_, err := config.LoadScope(config.ScopeGlobal)
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}
