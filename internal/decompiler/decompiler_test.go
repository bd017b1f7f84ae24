package decompiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommander implements Commander interface for testing
type mockCommander struct {
	runFunc func() error
}

func (m *mockCommander) Run() error {
	return m.runFunc()
}

func TestTool_Decompile(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "decompiled")

	var gotName string
	var gotArgs []string

	tool := NewTool("/usr/bin/java", "/opt/vineflower.jar")
	tool.execCommand = func(_ context.Context, name string, args ...string) Commander {
		gotName = name
		gotArgs = args
		return &mockCommander{runFunc: func() error { return nil }}
	}

	err := tool.Decompile(context.Background(), "/work/remapped-1.0.jar", outputDir)
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/java", gotName)
	assert.Equal(t, []string{"-jar", "/opt/vineflower.jar", "/work/remapped-1.0.jar", outputDir}, gotArgs)

	info, err := os.Stat(outputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "output directory should be created before the engine runs")
}

func TestTool_Decompile_EngineFailure(t *testing.T) {
	tool := NewTool("", "/opt/vineflower.jar")
	tool.execCommand = func(_ context.Context, name string, args ...string) Commander {
		return &mockCommander{runFunc: func() error { return errors.New("exit status 2") }}
	}

	err := tool.Decompile(context.Background(), "in.jar", filepath.Join(t.TempDir(), "out"))
	assert.ErrorContains(t, err, "decompile engine")
}
