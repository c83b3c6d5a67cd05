package filter

import (
	"reflect"
	"testing"
)

func TestAddLocationIdempotent(t *testing.T) {
	var s State
	s.AddLocation("Remote")
	s.AddLocation("Remote")

	if len(s.Locations) != 1 {
		t.Fatalf("expected 1 location, got %d: %v", len(s.Locations), s.Locations)
	}
	if s.Locations[0] != "Remote" {
		t.Errorf("expected Remote, got %q", s.Locations[0])
	}
}

func TestAddLocationIsCaseSensitive(t *testing.T) {
	var s State
	s.AddLocation("Berlin")
	s.AddLocation("berlin")

	// Dedup on insert is exact-match; only removal folds case.
	if len(s.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %v", s.Locations)
	}
}

func TestRemoveLocationCaseInsensitive(t *testing.T) {
	var s State
	s.AddLocation("Berlin")
	s.RemoveLocation("berlin")

	if len(s.Locations) != 0 {
		t.Errorf("expected empty set, got %v", s.Locations)
	}
}

func TestRemoveKeywordCaseSensitive(t *testing.T) {
	var s State
	s.AddKeyword("Python")

	s.RemoveKeyword("python")
	if len(s.Keywords) != 1 {
		t.Fatalf("case-insensitive removal should not match keywords, got %v", s.Keywords)
	}

	s.RemoveKeyword("Python")
	if len(s.Keywords) != 0 {
		t.Errorf("expected empty set, got %v", s.Keywords)
	}
}

func TestTagInsertionOrderPreserved(t *testing.T) {
	var s State
	for _, kw := range []string{"go", "python", "rust", "go"} {
		s.AddKeyword(kw)
	}
	want := []string{"go", "python", "rust"}
	if !reflect.DeepEqual(s.Keywords, want) {
		t.Errorf("expected %v, got %v", want, s.Keywords)
	}
}

func TestSetScalarFields(t *testing.T) {
	tests := []struct {
		name  string
		value string
		check func(s State) bool
	}{
		{"q", "engineer", func(s State) bool { return s.Query == "engineer" }},
		{"job_type", "Full-time", func(s State) bool { return s.JobType == "Full-time" }},
		{"remote_only", "true", func(s State) bool { return s.RemoteOnly }},
		{"remote_only", "yes", func(s State) bool { return !s.RemoteOnly }},
		{"category", "Engineering", func(s State) bool { return s.Category == "Engineering" }},
		{"days", "7", func(s State) bool { return s.RecencyDays == "7" }},
		{"company", "Acme", func(s State) bool { return s.Company == "Acme" }},
		{"bogus", "x", func(s State) bool { return s.IsZero() }},
	}

	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			var s State
			s.Set(tt.name, tt.value)
			if !tt.check(s) {
				t.Errorf("Set(%q, %q) produced %+v", tt.name, tt.value, s)
			}
		})
	}
}

func TestReset(t *testing.T) {
	s := State{
		Query:         "go",
		JobType:       "Full-time",
		RemoteOnly:    true,
		Locations:     []string{"Berlin"},
		Keywords:      []string{"python"},
		RecencyDays:   "7",
		Companies:     []string{"Acme"},
		FavoritesOnly: true,
	}
	s.Reset()
	if !s.IsZero() {
		t.Errorf("expected zero state after Reset, got %+v", s)
	}
}

func TestSearchTerm(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		query    string
		want     string
	}{
		{"empty", nil, "", ""},
		{"query only", nil, "engineer", "engineer"},
		{"keywords only", []string{"go", "python"}, "", "go python"},
		{"union", []string{"go"}, "engineer", "go engineer"},
		{"query already tagged", []string{"go", "engineer"}, "engineer", "go engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Keywords: tt.keywords, Query: tt.query}
			if got := s.SearchTerm(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
