package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcprep/mcprep/internal/config"
)

var cleanCmd = &cobra.Command{
	Use:          "clean [version]",
	Short:        "Remove the work directories of prepared releases",
	Long:         `Delete per-release work directories (downloads, remapped jar, decompiled source) under the output directory, for one release or for all of them.`,
	RunE:         runClean,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

func init() {
	cleanCmd.Flags().Bool("all", false, "Remove every work directory under the output directory")
}

func runClean(cmd *cobra.Command, args []string) error {
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("target", cmd.Flags().Lookup("target"))

	outputDir := viper.GetString("output")
	if abs, err := filepath.Abs(outputDir); err == nil {
		outputDir = abs
	}

	if all, _ := cmd.Flags().GetBool("all"); all {
		return cleanAll(outputDir)
	}

	if len(args) != 1 {
		return fmt.Errorf("requires a version argument or --all")
	}

	version := args[0]

	// Without an explicit --target both sides are removed.
	targets := []string{config.TargetClient, config.TargetServer}
	if cmd.Flags().Changed("target") {
		target := strings.ToLower(viper.GetString("target"))
		if target != config.TargetClient && target != config.TargetServer {
			return fmt.Errorf("invalid target: %s (must be client or server)", target)
		}

		targets = []string{target}
	}

	removed := 0
	for _, target := range targets {
		dir := filepath.Join(outputDir, version+target)

		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}

		fmt.Printf("Removed %s\n", dir)
		removed++
	}

	if removed == 0 {
		fmt.Printf("Nothing to clean for %s\n", version)
	}

	return nil
}

// cleanAll removes every work directory under outputDir. Plain files, such
// as the run journal, are left alone.
func cleanAll(outputDir string) error {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Nothing to clean.")
			return nil
		}

		return fmt.Errorf("failed to read %s: %w", outputDir, err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(outputDir, entry.Name())
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}

		fmt.Printf("Removed %s\n", dir)
		removed++
	}

	if removed == 0 {
		fmt.Println("Nothing to clean.")
	}

	return nil
}
