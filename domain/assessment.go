package domain

import "strings"

// Category labels used for balanced selection.
const (
	CategoryTechnical  = "technical"
	CategoryBehavioral = "behavioral"
)

// Assessment is one row of the product catalog. Immutable once loaded.
type Assessment struct {
	Name            string   `json:"name"`
	URL             string   `json:"url"`
	Description     string   `json:"description"`
	AdaptiveSupport string   `json:"adaptive_support"`
	Duration        int      `json:"duration"`
	RemoteSupport   string   `json:"remote_support"`
	TestType        []string `json:"test_type"`
}

// Category maps the catalog's test types onto the two selection categories.
// A row listing both a knowledge and a personality type counts as technical:
// the first listed type wins.
func (a Assessment) Category() string {
	for _, t := range a.TestType {
		lower := strings.ToLower(t)
		if strings.Contains(lower, "knowledge") || strings.Contains(lower, "skill") {
			return CategoryTechnical
		}
		if strings.Contains(lower, "personality") || strings.Contains(lower, "behavior") || strings.Contains(lower, "behaviour") {
			return CategoryBehavioral
		}
	}
	if len(a.TestType) > 0 {
		return strings.ToLower(a.TestType[0])
	}
	return ""
}
