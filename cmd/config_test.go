package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigSetAndGet(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("config", "author.name", "Jane Trader")
	env.contains(out, "author.name = Jane Trader (global)")

	out = env.run("config", "author.name")
	env.contains(out, "Jane Trader")
}

func TestConfigShowsAllKeys(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("config")
	env.contains(out, "author.name")
	env.contains(out, "archive.dir")
	env.contains(out, "limits.max_report")
}

func TestConfigLocalOverridesGlobal(t *testing.T) {
	env := newTestEnv(t)

	env.run("config", "author.name", "Global Name")
	env.run("config", "--local", "author.name", "Local Name")

	out := env.run("config", "author.name")
	env.contains(out, "Local Name")
}

func TestConfigRejectsUnknownKey(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("config", "no.such.key")
	require.Error(t, err)
	env.contains(out, "unknown config key")
}

func TestConfigArchiveDirIsUsed(t *testing.T) {
	env := newTestEnv(t)
	archiveDir := t.TempDir()

	env.run("config", "archive.dir", archiveDir)
	env.runStdin(sampleReport, "archive", "-d", "2026-01-29")

	restored := env.run("restore", "2026-01-29")
	require.Equal(t, sampleReport, restored)
}
