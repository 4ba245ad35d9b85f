package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"assessMatch/domain"
	"assessMatch/pkg/logger"
)

// Service holds the loaded assessment catalog. The catalog is immutable after
// Load, so the service is safe for concurrent readers without locking.
type Service struct {
	items []domain.Assessment
}

// NewService loads the catalog CSV from path. Rows without a name are skipped.
func NewService(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("catalog %s has no data rows", path)
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"name", "url", "description", "test_type"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog %s is missing column %q", path, required)
		}
	}

	items := make([]domain.Assessment, 0, len(records)-1)
	skipped := 0
	for _, rec := range records[1:] {
		name := strings.TrimSpace(field(rec, col, "name"))
		if name == "" {
			skipped++
			continue
		}

		items = append(items, domain.Assessment{
			Name:            name,
			URL:             strings.TrimSpace(field(rec, col, "url")),
			Description:     strings.TrimSpace(field(rec, col, "description")),
			AdaptiveSupport: yesNo(field(rec, col, "adaptive_support")),
			Duration:        parseDuration(field(rec, col, "duration")),
			RemoteSupport:   yesNo(field(rec, col, "remote_support")),
			TestType:        ParseTestType(field(rec, col, "test_type")),
		})
	}

	logger.Info("catalog loaded", "path", path, "assessments", len(items), "skipped_rows", skipped)

	return &Service{items: items}, nil
}

// All returns the full catalog. Callers must not mutate the result.
func (s *Service) All() []domain.Assessment {
	return s.items
}

// FindByName resolves an assessment name produced by the LLM back to its
// catalog row. Matching is a case-insensitive substring test against the
// catalog name and the first match wins, mirroring how loosely the model
// reproduces names.
func (s *Service) FindByName(name string) (domain.Assessment, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return domain.Assessment{}, false
	}

	for _, a := range s.items {
		if strings.Contains(strings.ToLower(a.Name), needle) {
			return a, true
		}
	}

	return domain.Assessment{}, false
}

// Document renders an assessment as the text that gets embedded and that is
// shown to the LLM as retrieved context.
func (s *Service) Document(a domain.Assessment) string {
	var b strings.Builder
	b.WriteString("Name: ")
	b.WriteString(a.Name)
	b.WriteString("\nDescription: ")
	b.WriteString(a.Description)
	b.WriteString("\nTest Type: ")
	b.WriteString(strings.Join(a.TestType, ", "))
	return b.String()
}

// ParseTestType parses the catalog's stringified type list. The scraped data
// carries values like "['Knowledge & Skills']" or
// "['Knowledge & Skills'; 'Personality & Behavior']", with either `;` or `,`
// separators, so strip the bracket and quote junk and split on whichever
// separator is present.
func ParseTestType(raw string) []string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, "[]")
	if cleaned == "" {
		return nil
	}

	sep := ","
	if strings.Contains(cleaned, ";") {
		sep = ";"
	}

	parts := strings.Split(cleaned, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `'"`)
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func field(rec []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func parseDuration(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func yesNo(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "yes") {
		return "Yes"
	}
	return "No"
}
