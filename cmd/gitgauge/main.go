// Package main provides the entry point for the gitgauge CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitgauge/cmd/gitgauge/commands"
	"github.com/Sumatoshi-tech/gitgauge/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gitgauge",
		Short: "Gitgauge - commit quality and contributor value analysis",
		Long: `Gitgauge analyzes git history, classifies added diff lines, and scores
each contributor's quality, difficulty, and value.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "gitgauge %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
