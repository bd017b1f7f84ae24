package cmd

import (
	"fmt"
	"os"

	"github.com/mcprep/mcprep/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "mcprep",
	Short:        "Prepare deobfuscated Minecraft jars",
	Long:         `Download, verify, unpack, remap and optionally decompile a Minecraft release.`,
	RunE:         runPrepare,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory for prepared artifacts")
	rootCmd.PersistentFlags().StringP("target", "t", "", "Side to prepare: client or server")
	rootCmd.PersistentFlags().String("index-url", "", "Version index URL")
	rootCmd.PersistentFlags().BoolP("remap", "r", false, "Remap obfuscated symbols")
	rootCmd.PersistentFlags().BoolP("decompile", "d", false, "Decompile the remapped jar (implies --remap)")
	rootCmd.PersistentFlags().String("java-path", "", "Java binary used to run the external engines")
	rootCmd.PersistentFlags().String("remapper-jar", "", "Executable jar of the remapping engine")
	rootCmd.PersistentFlags().String("decompiler-jar", "", "Executable jar of the decompilation engine")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cleanCmd)

	viper.SetDefault("output", "output")
	viper.SetDefault("target", "client")
	viper.SetDefault("java_path", "java")
	viper.SetDefault("verbose", false)
}
