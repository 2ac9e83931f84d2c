package parser

import "strings"

// Accepted fence markers. An opening tag only counts when a newline follows
// it directly; the closing fence only counts at the very end of the text.
var (
	openingFences = []string{"```json\n", "```json\r\n", "```JSON\n", "```JSON\r\n", "```\n", "```\r\n"}
	closingFence  = "\n```"
)

// StripFences removes one optional markdown code fence wrapped around the
// model output. Whitespace outside the fence is ignored; text inside the
// fence is returned untouched. Text without a recognised fence is returned
// as is.
func StripFences(text string) string {
	probe := strings.TrimSpace(text)

	stripped := false
	for _, fence := range openingFences {
		if strings.HasPrefix(probe, fence) {
			probe = probe[len(fence):]
			stripped = true
			break
		}
	}
	if strings.HasSuffix(probe, closingFence) {
		probe = probe[:len(probe)-len(closingFence)]
		stripped = true
	}
	if !stripped {
		return text
	}
	return probe
}
