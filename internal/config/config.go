package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultOutputDir = "output"
	DefaultTarget    = "client"
	DefaultJavaPath  = "java"
	DefaultVerbose   = false
)

// Pipeline targets
const (
	TargetClient = "client"
	TargetServer = "server"
)

// Holds the configuration options for mcprep
type Config struct {
	// Root directory that receives per-release work directories
	OutputDir string

	// Version to prepare: an exact release id or one of the aliases
	// latest, latest-release, latest-snapshot
	Version string

	// Side to prepare: client or server
	Target string

	// URL of the remote version index
	IndexURL string

	// Run the symbol remapping stage
	Remap bool

	// Run the decompilation stage (requires Remap)
	Decompile bool

	// Path to the java binary used to run the external engines
	JavaPath string

	// Executable jar of the remapping engine
	RemapperJar string

	// Executable jar of the decompilation engine
	DecompilerJar string

	// Enable verbose output
	Verbose bool
}

func Load() (*Config, error) {
	cfg := &Config{
		OutputDir:     viper.GetString("output"),
		Version:       viper.GetString("version"),
		Target:        strings.ToLower(viper.GetString("target")),
		IndexURL:      viper.GetString("index_url"),
		Remap:         viper.GetBool("remap"),
		Decompile:     viper.GetBool("decompile"),
		JavaPath:      viper.GetString("java_path"),
		RemapperJar:   viper.GetString("remapper_jar"),
		DecompilerJar: viper.GetString("decompiler_jar"),
		Verbose:       viper.GetBool("verbose"),
	}

	// Apply defaults if not set
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}

	if cfg.JavaPath == "" {
		cfg.JavaPath = DefaultJavaPath
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if abs, err := filepath.Abs(c.OutputDir); err == nil {
		c.OutputDir = abs
	}

	if c.Target != TargetClient && c.Target != TargetServer {
		return fmt.Errorf("invalid target: %s (must be client or server)", c.Target)
	}

	if c.Version == "" {
		return fmt.Errorf("version not specified")
	}

	if c.Decompile && !c.Remap {
		return fmt.Errorf("decompile requires remap")
	}

	if c.Remap {
		if c.RemapperJar == "" {
			return fmt.Errorf("remapper_jar not set but remap is enabled")
		}

		if abs, err := filepath.Abs(c.RemapperJar); err == nil {
			c.RemapperJar = abs
		}
	}

	if c.Decompile {
		if c.DecompilerJar == "" {
			return fmt.Errorf("decompiler_jar not set but decompile is enabled")
		}

		if abs, err := filepath.Abs(c.DecompilerJar); err == nil {
			c.DecompilerJar = abs
		}
	}

	return nil
}
