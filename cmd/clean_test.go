package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunClean(t *testing.T) {
	tempDir := t.TempDir()
	clientDir := filepath.Join(tempDir, "1.0client")
	serverDir := filepath.Join(tempDir, "1.0server")
	require.NoError(t, os.MkdirAll(clientDir, 0o755))
	require.NoError(t, os.MkdirAll(serverDir, 0o755))

	// Without --target both sides go
	rootCmd.SetArgs([]string{"clean", "1.0", "--output", tempDir})
	require.NoError(t, rootCmd.Execute())

	assert.NoDirExists(t, clientDir)
	assert.NoDirExists(t, serverDir)

	// With --target only that side goes
	require.NoError(t, os.MkdirAll(clientDir, 0o755))
	require.NoError(t, os.MkdirAll(serverDir, 0o755))

	rootCmd.SetArgs([]string{"clean", "1.0", "--output", tempDir, "--target", "server"})
	require.NoError(t, rootCmd.Execute())

	assert.DirExists(t, clientDir)
	assert.NoDirExists(t, serverDir)
}

func TestRunClean_All(t *testing.T) {
	tempDir := t.TempDir()
	clientDir := filepath.Join(tempDir, "1.0client")
	serverDir := filepath.Join(tempDir, "1.1server")
	require.NoError(t, os.MkdirAll(clientDir, 0o755))
	require.NoError(t, os.MkdirAll(serverDir, 0o755))

	// The run journal is a plain file and must survive
	journalPath := filepath.Join(tempDir, "mcprep.db")
	require.NoError(t, os.WriteFile(journalPath, []byte("journal"), 0o644))

	defer cleanCmd.Flags().Set("all", "false")

	rootCmd.SetArgs([]string{"clean", "--all", "--output", tempDir})
	require.NoError(t, rootCmd.Execute())

	assert.NoDirExists(t, clientDir)
	assert.NoDirExists(t, serverDir)
	assert.FileExists(t, journalPath)
}

func TestRunClean_NoVersionNoAll(t *testing.T) {
	rootCmd.SetArgs([]string{"clean", "--output", t.TempDir()})
	assert.Error(t, rootCmd.Execute())
}

func TestRunClean_InvalidTarget(t *testing.T) {
	rootCmd.SetArgs([]string{"clean", "1.0", "--output", t.TempDir(), "--target", "both"})
	assert.Error(t, rootCmd.Execute())
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}
