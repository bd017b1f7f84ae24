package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcprep/mcprep/internal/config"
	"github.com/mcprep/mcprep/internal/decompiler"
	"github.com/mcprep/mcprep/internal/history"
	"github.com/mcprep/mcprep/internal/index"
	"github.com/mcprep/mcprep/internal/pipeline"
	"github.com/mcprep/mcprep/internal/remapper"
	"github.com/mcprep/mcprep/internal/transport"
)

var prepareCmd = &cobra.Command{
	Use:          "prepare [version]",
	Short:        "Run the preparation pipeline for a release",
	Long:         `Resolve a release, download and verify its artifacts, unpack the server bundle, and optionally remap and decompile.`,
	RunE:         runPrepare,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

func runPrepare(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		viper.Set("version", args[0])
	}

	// decompile implies remap
	if d, _ := cmd.Flags().GetBool("decompile"); d {
		viper.Set("remap", true)
	}

	cfg, err := config.NewLoader().LoadForPrepare(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	ctx := cmd.Context()

	client := transport.NewHTTPClient(0)

	release, err := index.Resolve(ctx, client, cfg.IndexURL, cfg.Version)
	if err != nil {
		return err
	}

	logger.Info("preparing release",
		slog.String("version", release.ID),
		slog.String("target", cfg.Target))

	var rm remapper.Remapper
	if cfg.Remap {
		rm = remapper.NewTool(cfg.JavaPath, cfg.RemapperJar)
	}

	var dc decompiler.Decompiler
	if cfg.Decompile {
		dc = decompiler.NewTool(cfg.JavaPath, cfg.DecompilerJar)
	}

	p := pipeline.New(pipeline.Options{
		OutputDir: cfg.OutputDir,
		Release:   release,
		Target:    cfg.Target,
		Remap:     cfg.Remap,
		Decompile: cfg.Decompile,
	}, client, rm, dc, logger)

	start := time.Now()
	result, runErr := p.Run(ctx)

	recordRun(logger, cfg, release.ID, result, start, runErr)

	if runErr != nil {
		return runErr
	}

	fmt.Printf("Done. Artifacts in %s\n", result.Root)

	return nil
}

// recordRun appends the run to the journal. Journal failures are logged and
// never affect the pipeline outcome.
func recordRun(logger *slog.Logger, cfg *config.Config, releaseID string, result pipeline.Result, start time.Time, runErr error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Warn("failed to create output directory for run journal", slog.Any("error", err))
		return
	}

	journal, err := history.Open(cfg.OutputDir)
	if err != nil {
		logger.Warn("failed to open run journal", slog.Any("error", err))
		return
	}
	defer journal.Close()

	run := history.Run{
		ID:         uuid.NewString(),
		Version:    releaseID,
		Target:     cfg.Target,
		Skipped:    result.Skipped,
		Remapped:   cfg.Remap,
		Decompiled: cfg.Decompile,
		StartedAt:  start,
		Duration:   time.Since(start),
		Success:    runErr == nil,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if err := journal.Record(run); err != nil {
		logger.Warn("failed to record run", slog.Any("error", err))
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
