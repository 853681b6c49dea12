package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/recbatch/internal/config"
)

func TestConfigInit(t *testing.T) {
	t.Run("CreatesFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		t.Setenv(config.EnvConfigPath, path)
		t.Setenv(envLogLevel, "error")

		stdout, _, err := runConfigCommand(t, "config", "init")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Configuration initialized successfully")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "max_records_per_batch: 500")
	})

	t.Run("RefusesOverwriteWithoutForce", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output:\n  default_format: json\n"), 0o600))
		t.Setenv(config.EnvConfigPath, path)
		t.Setenv(envLogLevel, "error")

		_, _, err := runConfigCommand(t, "config", "init")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("ForceOverwrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output:\n  default_format: json\n"), 0o600))
		t.Setenv(config.EnvConfigPath, path)
		t.Setenv(envLogLevel, "error")

		_, _, err := runConfigCommand(t, "config", "init", "--force")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "default_format: table")
	})
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  max_records_per_batch: 7\n"), 0o600))
	t.Setenv(config.EnvConfigPath, path)
	t.Setenv(envLogLevel, "error")

	stdout, _, err := runConfigCommand(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "max_records_per_batch: 7")
	assert.Contains(t, stdout, "level: info")
}

// runConfigCommand executes the root command without touching the config env
// var, which the caller has already pinned.
func runConfigCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root := NewRootCmd("test")
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
