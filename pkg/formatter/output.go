package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/helmcode/medicheck/pkg/model"
	"gopkg.in/yaml.v3"
)

// DisplayResults writes the analysis to w in the requested format.
func DisplayResults(w io.Writer, analysis *model.AnalysisResult, format string) error {
	switch format {
	case "json":
		return displayJSON(w, analysis)
	case "yaml":
		return displayYAML(w, analysis)
	case "human", "":
		displayHuman(w, analysis)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: human, json, yaml)", format)
	}
}

func displayJSON(w io.Writer, analysis *model.AnalysisResult) error {
	output, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, analysis *model.AnalysisResult) error {
	output, err := yaml.Marshal(analysis)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHuman(w io.Writer, analysis *model.AnalysisResult) {
	// Colors
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)

	if analysis.EmergencyAlert {
		red.Fprintln(w, "🚨 EMERGENCY: these symptoms may need immediate medical attention.")
		red.Fprintln(w, "   Call your local emergency number or go to the nearest emergency room.")
		fmt.Fprintln(w)
	}

	yellow.Fprintln(w, "🩺 POSSIBLE CONDITIONS:")
	if len(analysis.Conditions) == 0 {
		fmt.Fprintln(w, "   None identified")
	}
	for i, condition := range analysis.Conditions {
		fmt.Fprintf(w, "   %d. %s\n", i+1, condition.Name)
		fmt.Fprintln(w, wrapText(condition.Explanation, 80, "      "))
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	cyan.Fprintln(w, "💡 RECOMMENDATIONS:")
	if len(analysis.Recommendations) == 0 {
		fmt.Fprintln(w, "   None")
	}
	for i, rec := range analysis.Recommendations {
		fmt.Fprintf(w, "   %d. %s\n", i+1, rec.Action)
		fmt.Fprintf(w, "%s\n\n", wrapText("Why: "+rec.Reason, 80, "      "))
	}

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintln(w, color.HiBlackString(wrapText("Disclaimer: "+analysis.Disclaimer, 80, "")))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width && currentLine != indent {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
