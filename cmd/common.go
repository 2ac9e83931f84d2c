package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/helmcode/medicheck/pkg/config"
	"github.com/helmcode/medicheck/pkg/llm"
)

var (
	llmProvider string
	llmModel    string
)

// loadConfig reads the environment once and applies the command line
// overrides. The returned value is not modified afterwards.
func loadConfig() (*config.Config, error) {
	provider := llmProvider
	if provider != "" {
		p, err := llm.ParseProvider(provider)
		if err != nil {
			return nil, err
		}
		provider = string(p)
	}
	cfg := config.Load().WithOverrides(provider, llmModel)
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

func setupLogging(level string) {
	log.SetHandler(cli.New(os.Stderr))
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
		log.Warnf("unknown LOG_LEVEL %q, using info", level)
	}
	log.SetLevel(lvl)
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", msg)
}

func printWarning(msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Printf("! %s\n", msg)
}

func printHeader(title, detail string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	cyan.Println(title)
	if detail != "" {
		fmt.Println(detail)
	}
	fmt.Println()
}
