package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/helmcode/medicheck/pkg/model"
	"github.com/helmcode/medicheck/pkg/parser"
	"github.com/helmcode/medicheck/pkg/report"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	reportResultPath string
	reportSymptoms   string
	reportOutPath    string
)

func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a saved analysis as a PDF report",
		Long: `Render an analysis saved with "medicheck analyze -o json" (or -o yaml) into
the printable PDF report.

Examples:
  medicheck analyze "dry cough for two weeks" -o json > analysis.json
  medicheck report --result analysis.json --symptoms "dry cough for two weeks"`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	cmd.Flags().StringVar(&reportResultPath, "result", "", "Path to the analysis result (JSON or YAML)")
	cmd.Flags().StringVar(&reportSymptoms, "symptoms", "", "The symptom text the analysis was made for")
	cmd.Flags().StringVar(&reportOutPath, "out", report.DefaultFilename, "Where to write the PDF")
	_ = cmd.MarkFlagRequired("result")
	_ = cmd.MarkFlagRequired("symptoms")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	symptoms, err := model.NormalizeSymptoms(reportSymptoms)
	if err != nil {
		return err
	}

	result, err := loadResult(reportResultPath)
	if err != nil {
		return err
	}

	if err := writeReport(reportOutPath, result, symptoms); err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Report written to %s", reportOutPath))
	return nil
}

// loadResult reads a saved analysis and runs it through the same validation
// as a model answer. YAML files are converted to JSON first.
func loadResult(path string) (*model.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse result: %w", err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("convert result: %w", err)
		}
	}

	result, err := parser.ParseAnalysisResponse(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid result file %s: %w", path, err)
	}
	return result, nil
}

func writeReport(path string, result *model.AnalysisResult, symptoms string) error {
	data, err := report.NewRenderer().Render(result, symptoms)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
