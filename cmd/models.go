package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/helmcode/medicheck/pkg/llm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var modelsOutputFormat string

func NewModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the Gemini models available to the configured API key",
		Args:  cobra.NoArgs,
		RunE:  runModels,
	}

	cmd.Flags().StringVarP(&modelsOutputFormat, "output", "o", "human", "Output format (human, yaml)")

	return cmd
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("no API key found: %w", llm.ErrMissingCredential)
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Fetching available models..."
	s.Start()

	models, err := llm.NewGemini(cfg).ListModels(cmd.Context())
	s.Stop()
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}

	if modelsOutputFormat == "yaml" {
		out, err := yaml.Marshal(models)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	printSuccess("Available Models:")
	for _, m := range models {
		fmt.Printf("- %s (%s)\n", m.Name, strings.Join(m.SupportedGenerationMethods, ","))
	}
	return nil
}
