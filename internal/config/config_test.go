package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		OutputDir: "output",
		Version:   "1.21.4",
		Target:    TargetClient,
		JavaPath:  "java",
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, filepath.IsAbs(cfg.OutputDir), "output dir should be resolved to an absolute path")
}

func TestValidate_Target(t *testing.T) {
	tests := []struct {
		target string
		ok     bool
	}{
		{"client", true},
		{"server", true},
		{"", false},
		{"both", false},
		{"CLIENT", false}, // Load lowercases before Validate
	}

	for _, tt := range tests {
		t.Run("target "+tt.target, func(t *testing.T) {
			cfg := validConfig()
			cfg.Target = tt.target

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_VersionRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Version = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_DecompileRequiresRemap(t *testing.T) {
	cfg := validConfig()
	cfg.Decompile = true
	cfg.RemapperJar = "remapper.jar"
	cfg.DecompilerJar = "decompiler.jar"
	assert.Error(t, cfg.Validate())

	cfg.Remap = true
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EngineJarsRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Remap = true
	assert.Error(t, cfg.Validate(), "remap without remapper_jar")

	cfg.RemapperJar = "remapper.jar"
	require.NoError(t, cfg.Validate())
	assert.True(t, filepath.IsAbs(cfg.RemapperJar))

	cfg = validConfig()
	cfg.Remap = true
	cfg.RemapperJar = "remapper.jar"
	cfg.Decompile = true
	assert.Error(t, cfg.Validate(), "decompile without decompiler_jar")

	cfg.DecompilerJar = "decompiler.jar"
	require.NoError(t, cfg.Validate())
	assert.True(t, filepath.IsAbs(cfg.DecompilerJar))
}
