// Package remapper calls the external symbol-remapping engine. The pipeline
// depends only on the Remapper interface; Tool is the production
// implementation shelling out to a SpecialSource-compatible jar.
package remapper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Remapper rewrites obfuscated symbol names in inputJar using the mapping
// file and writes the result to outputJar.
type Remapper interface {
	Remap(ctx context.Context, mappingPath, inputJar, outputJar string) error
}

// Commander abstracts a runnable command for testing.
type Commander interface {
	Run() error
}

// Tool invokes a remapping engine distributed as an executable jar.
type Tool struct {
	JavaPath string
	JarPath  string

	execCommand func(ctx context.Context, name string, args ...string) Commander
}

// NewTool creates a Tool running jarPath with the java binary at javaPath.
// An empty javaPath falls back to "java" on PATH.
func NewTool(javaPath, jarPath string) *Tool {
	if javaPath == "" {
		javaPath = "java"
	}

	return &Tool{
		JavaPath: javaPath,
		JarPath:  jarPath,
		execCommand: func(ctx context.Context, name string, args ...string) Commander {
			return exec.CommandContext(ctx, name, args...)
		},
	}
}

// Remap runs the engine. The engine streams its own progress to the
// inherited stdout/stderr.
func (t *Tool) Remap(ctx context.Context, mappingPath, inputJar, outputJar string) error {
	args := []string{
		"-jar", t.JarPath,
		"--in-jar", inputJar,
		"--out-jar", outputJar,
		"--srg-in", mappingPath,
	}

	c := t.execCommand(ctx, t.JavaPath, args...)
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("remap engine: %w", err)
	}

	return nil
}
