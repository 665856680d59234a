package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuideOutputsMainPage(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("guide")
	env.contains(out, "flexarc")
	env.contains(out, "archive")
	env.contains(out, "restore")
}

func TestGuideFormatPage(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("guide", "format")
	env.contains(out, "base_YYYYMMDD.xml")
	env.contains(out, "delta_YYYYMMDD.patch")
}

func TestGuideUnknownPage(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("guide", "nonexistent")
	require.Error(t, err)
	env.contains(out, "not found")
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("version")
	env.contains(out, "Build Tag:")
	env.contains(out, "Go Version:")
}
