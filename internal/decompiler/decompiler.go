// Package decompiler calls the external decompilation engine. The pipeline
// depends only on the Decompiler interface; Tool shells out to a
// Vineflower-compatible jar.
package decompiler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Decompiler reconstructs source from inputJar into outputDir. The layout of
// outputDir is engine-defined.
type Decompiler interface {
	Decompile(ctx context.Context, inputJar, outputDir string) error
}

// Commander abstracts a runnable command for testing.
type Commander interface {
	Run() error
}

// Tool invokes a decompilation engine distributed as an executable jar.
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

// Decompile runs the engine, creating outputDir first.
func (t *Tool) Decompile(ctx context.Context, inputJar, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create decompile output directory: %w", err)
	}

	c := t.execCommand(ctx, t.JavaPath, "-jar", t.JarPath, inputJar, outputDir)
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("decompile engine: %w", err)
	}

	return nil
}
