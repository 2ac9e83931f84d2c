package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/helmcode/medicheck/pkg/analyzer"
	"github.com/helmcode/medicheck/pkg/formatter"
	"github.com/spf13/cobra"
)

var (
	analyzeOutputFormat string
	analyzePDFPath      string
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze SYMPTOMS",
		Short: "Analyze a symptom description with AI assistance",
		Long: `Send a free-text symptom description to the configured model and print the
possible conditions, recommendations and whether it looks like an emergency.

Examples:
  # Analyze symptoms
  medicheck analyze "I have a throbbing headache and sensitivity to light"

  # Machine readable output
  medicheck analyze "sore throat and fever" -o json

  # Also write the PDF report
  medicheck analyze "sharp pain in my lower right abdomen" --pdf MediCheck_Report.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&analyzePDFPath, "pdf", "", "Also write the PDF report to this file")
	cmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (gemini, mock). Defaults to LLM_PROVIDER")
	cmd.Flags().StringVar(&llmModel, "model", "", "LLM model to use (overrides LLM_MODEL)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	symptoms := strings.TrimSpace(strings.Join(args, " "))
	if symptoms == "" {
		return fmt.Errorf("symptoms are required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	aiAnalyzer := analyzer.New(cfg)

	human := analyzeOutputFormat == "human" || analyzeOutputFormat == ""
	if human {
		printHeader("🩺 MediCheck AI", fmt.Sprintf("📝 Symptoms: %s", symptoms))
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Analyzing with AI..."
	s.Start()

	result, outcome, err := aiAnalyzer.Analyze(cmd.Context(), symptoms)
	s.Stop()
	if err != nil {
		return err
	}

	if human {
		if outcome.Degraded() {
			printWarning(fmt.Sprintf("Analysis unavailable (%s), showing fallback guidance", outcome))
		} else {
			printSuccess(fmt.Sprintf("Analysis complete (%s)", aiAnalyzer.Mode()))
		}
	}

	if err := formatter.DisplayResults(os.Stdout, result, analyzeOutputFormat); err != nil {
		return err
	}

	if analyzePDFPath != "" {
		if err := writeReport(analyzePDFPath, result, symptoms); err != nil {
			return err
		}
		if human {
			printSuccess(fmt.Sprintf("Report written to %s", analyzePDFPath))
		}
	}
	return nil
}
