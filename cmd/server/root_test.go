package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "seed"}, names)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestRootCmd_ConfigFlagSetsConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Cleanup(func() { configDir = "" })

	cmd := NewRootCmd()
	require.NoError(t, cmd.PersistentFlags().Set("config", "/etc/hyky"))
	require.NoError(t, cmd.PersistentPreRunE(cmd, nil))

	assert.Equal(t, "/etc/hyky", os.Getenv("CONFIG_PATH"))
}

func TestSeedCmd_MissingSeedFiles(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Cleanup(func() { configDir = "" })

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"seed",
		"--config", filepath.Join("..", "..", "configs", "dev"),
		"--dir", t.TempDir(),
	})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "failed to read seed file")
}
