package filter

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCriteriaRoundTrip(t *testing.T) {
	orig := State{
		Query:       "backend",
		JobType:     "Full-time",
		RemoteOnly:  true,
		Category:    "Engineering",
		Locations:   []string{"Berlin", "Remote"},
		Keywords:    []string{"go"},
		RecencyDays: "7",
		Companies:   []string{"Acme"},
	}

	// Criteria travel through JSON to the backend and back, so the round
	// trip must survive JSON's type flattening.
	data, err := json.Marshal(orig.Criteria())
	if err != nil {
		t.Fatal(err)
	}
	var criteria map[string]any
	if err := json.Unmarshal(data, &criteria); err != nil {
		t.Fatal(err)
	}

	got := FromCriteria(criteria)
	if got.Query != orig.Query || got.JobType != orig.JobType || !got.RemoteOnly ||
		got.Category != orig.Category || got.RecencyDays != orig.RecencyDays {
		t.Errorf("scalar mismatch: %+v", got)
	}
	if !reflect.DeepEqual(got.Locations, orig.Locations) {
		t.Errorf("expected %v, got %v", orig.Locations, got.Locations)
	}
	if !reflect.DeepEqual(got.Keywords, orig.Keywords) {
		t.Errorf("expected %v, got %v", orig.Keywords, got.Keywords)
	}
	if !reflect.DeepEqual(got.Companies, orig.Companies) {
		t.Errorf("expected %v, got %v", orig.Companies, got.Companies)
	}
}

func TestFromCriteriaLegacyShapes(t *testing.T) {
	got := FromCriteria(map[string]any{
		"q":           "data",
		"location":    "Munich",
		"days":        float64(30),
		"remote_only": "true",
	})

	if got.Query != "data" {
		t.Errorf("expected q=data, got %q", got.Query)
	}
	if len(got.Locations) != 1 || got.Locations[0] != "Munich" {
		t.Errorf("expected legacy location folded in, got %v", got.Locations)
	}
	if got.RecencyDays != "30" {
		t.Errorf("expected numeric days coerced to string, got %q", got.RecencyDays)
	}
	if !got.RemoteOnly {
		t.Error("expected string true coerced to bool")
	}
}
