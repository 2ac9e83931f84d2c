package main

import (
	"context"
	"fmt"
	"os"

	"github.com/helmcode/medicheck/cmd"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "medicheck",
		Short: "AI-powered symptom checker",
		Long: `medicheck sends free-text symptom descriptions to a generative model and
turns the answer into possible conditions, recommendations, an emergency flag
and a printable PDF report.

Configuration is read from the environment (or a .env file):
  LLM_PROVIDER   gemini to use the live model (default mock)
  LLM_API_KEY    Google Gemini API key
  LLM_MODEL      model name (default gemini-flash-latest)
  LLM_TIMEOUT    upstream call timeout (default 30s)
  PORT           HTTP port for serve (default 5000)`,
		SilenceUsage: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewServeCmd(version),
		cmd.NewAnalyzeCmd(),
		cmd.NewReportCmd(),
		cmd.NewModelsCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("medicheck version %s\n", version)
		},
	}
}
