package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"assessMatch/domain"
)

const testCSV = `name,url,description,adaptive_support,duration,remote_support,test_type
Java Programming (New),https://example.com/java,"Measures Java knowledge, including collections.",No,30,Yes,['Knowledge & Skills']
Teamwork Styles Assessment,https://example.com/teamwork,Assesses collaboration preferences.,No,20,Yes,['Personality & Behavior']
,https://example.com/empty,Row without a name must be skipped.,No,10,No,['Knowledge & Skills']
Graduate Assessment,https://example.com/graduate,Blended cognitive and behavioral assessment.,Yes,40,yes,['Knowledge & Skills'; 'Personality & Behavior']
No Duration,https://example.com/nodur,Bad duration falls back to zero.,No,unknown,No,['Knowledge & Skills']
`

func writeTestCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("writing test catalog: %v", err)
	}
	return path
}

func TestNewServiceLoadsCatalog(t *testing.T) {
	svc, err := NewService(writeTestCatalog(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := svc.All()
	if len(items) != 4 {
		t.Fatalf("expected 4 assessments (nameless row skipped), got %d", len(items))
	}

	java := items[0]
	if java.Name != "Java Programming (New)" {
		t.Fatalf("unexpected first assessment: %q", java.Name)
	}
	if java.Duration != 30 {
		t.Fatalf("expected duration 30, got %d", java.Duration)
	}
	if len(java.TestType) != 1 || java.TestType[0] != "Knowledge & Skills" {
		t.Fatalf("unexpected test types: %v", java.TestType)
	}

	graduate := items[2]
	if graduate.RemoteSupport != "Yes" {
		t.Fatalf("expected lowercase yes to normalize, got %q", graduate.RemoteSupport)
	}
	if len(graduate.TestType) != 2 {
		t.Fatalf("expected two test types, got %v", graduate.TestType)
	}

	if items[3].Duration != 0 {
		t.Fatalf("expected unparseable duration to be 0, got %d", items[3].Duration)
	}
}

func TestNewServiceRejectsMissingFile(t *testing.T) {
	if _, err := NewService(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestNewServiceRejectsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("name,url\nJava,https://example.com\n"), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	if _, err := NewService(path); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestFindByName(t *testing.T) {
	svc, err := NewService(writeTestCatalog(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		query     string
		wantName  string
		wantFound bool
	}{
		{"exact", "Java Programming (New)", "Java Programming (New)", true},
		{"case insensitive", "java programming", "Java Programming (New)", true},
		{"substring", "Teamwork", "Teamwork Styles Assessment", true},
		{"miss", "Cobol Mastery", "", false},
		{"empty", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := svc.FindByName(tt.query)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if found && got.Name != tt.wantName {
				t.Fatalf("got %q, want %q", got.Name, tt.wantName)
			}
		})
	}
}

func TestParseTestType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single", "['Knowledge & Skills']", []string{"Knowledge & Skills"}},
		{"semicolon list", "['Knowledge & Skills'; 'Personality & Behavior']", []string{"Knowledge & Skills", "Personality & Behavior"}},
		{"comma list", `["A", "B"]`, []string{"A", "B"}},
		{"bare value", "Simulation", []string{"Simulation"}},
		{"empty", "", nil},
		{"brackets only", "[]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTestType(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestAssessmentCategory(t *testing.T) {
	tests := []struct {
		name     string
		types    []string
		want     string
	}{
		{"knowledge", []string{"Knowledge & Skills"}, domain.CategoryTechnical},
		{"personality", []string{"Personality & Behavior"}, domain.CategoryBehavioral},
		{"mixed first wins", []string{"Knowledge & Skills", "Personality & Behavior"}, domain.CategoryTechnical},
		{"british spelling", []string{"Behaviour"}, domain.CategoryBehavioral},
		{"unknown passes through", []string{"Simulation"}, "simulation"},
		{"none", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.Assessment{TestType: tt.types}
			if got := a.Category(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDocumentRendering(t *testing.T) {
	svc, err := NewService(writeTestCatalog(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := svc.Document(svc.All()[0])
	for _, want := range []string{"Name: Java Programming (New)", "Description: Measures Java knowledge", "Test Type: Knowledge & Skills"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}
