package recommend

import (
	"strings"

	_ "embed"
)

//go:embed prompts/recommend.md
var promptTemplate string

func buildPrompt(query string, contextDocs []string) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{QUERY}}", query)
	return strings.ReplaceAll(prompt, "{{CONTEXT}}", strings.Join(contextDocs, "\n\n"))
}
