package filter

import (
	"reflect"
	"testing"
)

func TestEncodeOmitsDefaults(t *testing.T) {
	if got := EncodeQuery(State{}); got != "" {
		t.Errorf("expected empty query for zero state, got %q", got)
	}

	params := Encode(State{Query: "go", RemoteOnly: false})
	if params.Has("remote_only") {
		t.Error("remote_only must be omitted when false")
	}
	if params.Get("q") != "go" {
		t.Errorf("expected q=go, got %q", params.Get("q"))
	}
}

func TestEncodeCommaJoinsTags(t *testing.T) {
	params := Encode(State{
		Locations: []string{"Berlin", "Remote"},
		Keywords:  []string{"go", "python"},
	})
	if got := params.Get("locations"); got != "Berlin,Remote" {
		t.Errorf("expected comma-joined locations, got %q", got)
	}
	if got := params.Get("keywords"); got != "go,python" {
		t.Errorf("expected comma-joined keywords, got %q", got)
	}
}

func TestDecodeEndToEnd(t *testing.T) {
	s, _, err := Decode("?q=engineer&locations=Berlin,Remote&job_type=Full-time&remote_only=true")
	if err != nil {
		t.Fatal(err)
	}

	if s.Query != "engineer" {
		t.Errorf("expected q=engineer, got %q", s.Query)
	}
	if !reflect.DeepEqual(s.Locations, []string{"Berlin", "Remote"}) {
		t.Errorf("expected [Berlin Remote], got %v", s.Locations)
	}
	if s.JobType != "Full-time" {
		t.Errorf("expected Full-time, got %q", s.JobType)
	}
	if !s.RemoteOnly {
		t.Error("expected RemoteOnly=true")
	}
}

func TestDecodeRepeatedParams(t *testing.T) {
	s, _, err := Decode("locations=Berlin&locations=Remote&companies=Acme&companies=Initech")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Locations, []string{"Berlin", "Remote"}) {
		t.Errorf("expected [Berlin Remote], got %v", s.Locations)
	}
	if !reflect.DeepEqual(s.Companies, []string{"Acme", "Initech"}) {
		t.Errorf("expected [Acme Initech], got %v", s.Companies)
	}
}

func TestDecodeDeduplicatesRepeatedTags(t *testing.T) {
	s, _, err := Decode("keywords=go&keywords=go&keywords=python")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Keywords, []string{"go", "python"}) {
		t.Errorf("expected [go python], got %v", s.Keywords)
	}
}

func TestDecodeTrimsAndDropsEmptyTags(t *testing.T) {
	s, _, err := Decode("locations=Berlin,%20,%20Remote%20,")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Locations, []string{"Berlin", "Remote"}) {
		t.Errorf("expected [Berlin Remote], got %v", s.Locations)
	}
}

func TestDecodeExtra(t *testing.T) {
	_, extra, err := Decode("view=companies&jobId=abc123&verified=true&reset=success")
	if err != nil {
		t.Fatal(err)
	}
	if extra.View != "companies" {
		t.Errorf("expected view=companies, got %q", extra.View)
	}
	if extra.JobID != "abc123" {
		t.Errorf("expected jobId=abc123, got %q", extra.JobID)
	}
	if !extra.Verified || !extra.PasswordReset {
		t.Errorf("expected verified and reset flags, got %+v", extra)
	}
}

func TestRoundTrip(t *testing.T) {
	states := []State{
		{},
		{Query: "engineer"},
		{Query: "data scientist", Category: "Data"},
		{Locations: []string{"Berlin", "Remote", "New York"}},
		{Keywords: []string{"go", "kubernetes"}, RemoteOnly: true},
		{RecencyDays: "7", JobType: "Internship"},
		{Company: "Acme", Companies: []string{"Initech", "Globex"}},
		{FavoritesOnly: true},
		{
			Query:       "backend",
			JobType:     "Full-time",
			RemoteOnly:  true,
			Category:    "Engineering",
			Locations:   []string{"Remote"},
			Keywords:    []string{"go", "grpc"},
			RecencyDays: "30",
			Companies:   []string{"Acme"},
		},
	}

	for _, orig := range states {
		decoded, _, err := Decode(EncodeQuery(orig))
		if err != nil {
			t.Fatalf("decode(%q): %v", EncodeQuery(orig), err)
		}
		if !statesEqual(orig, decoded) {
			t.Errorf("round trip mismatch:\n  in:  %+v\n  out: %+v", orig, decoded)
		}
	}
}

// statesEqual compares states treating nil and empty tag sets as equal.
func statesEqual(a, b State) bool {
	if a.Query != b.Query || a.JobType != b.JobType || a.RemoteOnly != b.RemoteOnly ||
		a.Category != b.Category || a.RecencyDays != b.RecencyDays ||
		a.Company != b.Company || a.FavoritesOnly != b.FavoritesOnly {
		return false
	}
	return tagsEqual(a.Locations, b.Locations) &&
		tagsEqual(a.Keywords, b.Keywords) &&
		tagsEqual(a.Companies, b.Companies)
}

func tagsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
