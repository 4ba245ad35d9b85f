package recommend

import (
	"regexp"
	"strings"
)

var (
	numberPrefixRe = regexp.MustCompile(`^\s*\d+[.)]\s*`)
	bulletPrefixRe = regexp.MustCompile(`^\s*[-*•]\s*`)
	parenRe        = regexp.MustCompile(`\s*\([^)]*\)`)
	// The model likes appending " - 30 minutes" style junk after a name.
	trailerRe = regexp.MustCompile(`\s+[-–]\s+.*$`)
)

// ParseNames turns the LLM's free-text answer into a clean list of assessment
// names. The prompt asks for names only, one per line, but the model still
// numbers them, bullets them, or decorates them with parentheses, so each line
// is scrubbed before use.
func ParseNames(raw string) []string {
	cleaned := stripCodeFence(raw)

	var names []string
	for _, line := range strings.Split(cleaned, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		name := numberPrefixRe.ReplaceAllString(line, "")
		name = bulletPrefixRe.ReplaceAllString(name, "")
		name = parenRe.ReplaceAllString(name, "")
		name = trailerRe.ReplaceAllString(name, "")
		name = strings.TrimSpace(name)

		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

// stripCodeFence removes a surrounding markdown fence if the model wrapped
// its answer in one.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```text")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSpace(raw)
	if idx := strings.LastIndex(raw, "```"); idx != -1 {
		raw = raw[:idx]
	}

	return strings.TrimSpace(raw)
}
