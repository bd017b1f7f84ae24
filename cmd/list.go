package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcprep/mcprep/internal/history"
)

var listCmd = &cobra.Command{
	Use:          "list",
	Short:        "List recorded pipeline runs",
	RunE:         runList,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
}

func runList(cmd *cobra.Command, _ []string) error {
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	outputDir := viper.GetString("output")
	if abs, err := filepath.Abs(outputDir); err == nil {
		outputDir = abs
	}

	if _, err := os.Stat(filepath.Join(outputDir, history.DBFileName)); os.IsNotExist(err) {
		fmt.Println("No runs recorded.")
		return nil
	}

	journal, err := history.Open(outputDir)
	if err != nil {
		return err
	}
	defer journal.Close()

	runs, err := journal.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	if isTerminal(os.Stdout.Fd()) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"Started", "Version", "Target", "Remap", "Decompile", "Skipped", "Duration", "Status"})

	for _, run := range runs {
		status := "ok"
		if !run.Success {
			status = "failed"
		}

		tw.AppendRow(table.Row{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Version,
			run.Target,
			yesNo(run.Remapped),
			yesNo(run.Decompiled),
			strings.Join(run.Skipped, ", "),
			run.Duration.Round(10 * time.Millisecond).String(),
			status,
		})
	}

	tw.Render()

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
