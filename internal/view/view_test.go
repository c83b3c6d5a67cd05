package view

import (
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/benlang/jobdetector/internal/models"
)

func TestFormatDateAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		posted time.Time
		want   string
	}{
		{"30 minutes ago", now.Add(-30 * time.Minute), "Just now"},
		{"59 minutes ago", now.Add(-59 * time.Minute), "Just now"},
		{"5 hours ago", now.Add(-5 * time.Hour), "5h ago"},
		{"23 hours ago", now.Add(-23 * time.Hour), "23h ago"},
		{"exactly 24 hours", now.Add(-24 * time.Hour), "1d ago"},
		{"25 hours ago rounds up", now.Add(-25 * time.Hour), "2d ago"},
		{"2 days ago", now.Add(-48 * time.Hour), "2d ago"},
		{"30 days ago", now.Add(-30 * 24 * time.Hour), "30d ago"},
		{"45 days ago", now.Add(-45 * 24 * time.Hour), "1/29/2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateAt(tt.posted, now); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatDateHandlesMissingInput(t *testing.T) {
	now := time.Now()
	if got := FormatDate("", now); got != "Just now" {
		t.Errorf("expected Just now for empty input, got %q", got)
	}
	if got := FormatDate("not-a-date", now); got != "Just now" {
		t.Errorf("expected Just now for garbage input, got %q", got)
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []Segment
	}{
		{"no query", "Engineer", "", []Segment{{Text: "Engineer"}}},
		{"no match", "Designer", "go", []Segment{{Text: "Designer"}}},
		{
			"case-insensitive match",
			"Senior Go Engineer",
			"go",
			[]Segment{{Text: "Senior "}, {Text: "Go", Match: true}, {Text: " Engineer"}},
		},
		{
			"multiple matches",
			"Go on the go",
			"go",
			[]Segment{{Text: "Go", Match: true}, {Text: " on the "}, {Text: "go", Match: true}},
		},
		{"whole string", "Go", "go", []Segment{{Text: "Go", Match: true}}},
		{
			"dotted capital I stays intact",
			"İstanbul Engineer",
			"st",
			[]Segment{{Text: "İ"}, {Text: "st", Match: true}, {Text: "anbul Engineer"}},
		},
		{
			"lowercase form wider than original",
			"Ⱥst", // U+023A lowers to the wider U+2C65
			"st",
			[]Segment{{Text: "Ⱥ"}, {Text: "st", Match: true}},
		},
		{
			"match wider than query",
			"İstanbul",
			"istanbul",
			[]Segment{{Text: "İstanbul", Match: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Highlight(tt.text, tt.query); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestJobListEmptyAndSkillCap(t *testing.T) {
	now := time.Now()

	empty := JobList(nil, "", now)
	if !empty.Empty {
		t.Error("expected Empty for no jobs")
	}

	jobs := []models.Job{{
		ID:      "1",
		Title:   "Backend Engineer",
		Company: "acme",
		Skills:  []string{"Go", "Postgres", "Redis", "Kafka", "gRPC"},
	}}
	vm := JobList(jobs, "", now)
	if len(vm.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(vm.Items))
	}
	item := vm.Items[0]
	if len(item.Skills) != 3 {
		t.Errorf("expected 3 visible skills, got %d", len(item.Skills))
	}
	if item.MoreSkills != 2 {
		t.Errorf("expected 2 hidden skills, got %d", item.MoreSkills)
	}
	if item.Glyph != "A" {
		t.Errorf("expected glyph A, got %q", item.Glyph)
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []string
	}{
		// The single skipped page 2 is filled in; the 8-9 gap collapses.
		{"middle of ten", 5, 10, []string{"1", "2", "3", "4", "5", "6", "7", "...", "10"}},
		{"first of ten", 1, 10, []string{"1", "2", "3", "...", "10"}},
		{"last of ten", 10, 10, []string{"1", "...", "8", "9", "10"}},
		{"deep middle", 10, 20, []string{"1", "...", "8", "9", "10", "11", "12", "...", "20"}},
		{"few pages", 2, 3, []string{"1", "2", "3"}},
		{"single page", 1, 1, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buttonsToStrings(PageWindow(tt.current, tt.total))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewPaginationHiddenForSinglePage(t *testing.T) {
	p := NewPagination(1, 40, 50)
	if p.TotalPages != 0 || len(p.Buttons) != 0 {
		t.Errorf("expected empty control when results fit one page, got %+v", p)
	}

	p = NewPagination(2, 120, 50)
	if p.TotalPages != 3 || !p.HasPrev || !p.HasNext {
		t.Errorf("unexpected control: %+v", p)
	}
}

func TestClampJump(t *testing.T) {
	if _, err := ClampJump("0", 10); err == nil {
		t.Error("expected error for page 0")
	}
	if _, err := ClampJump("11", 10); err == nil {
		t.Error("expected error for page beyond range")
	}
	if _, err := ClampJump("x", 10); err == nil {
		t.Error("expected error for non-numeric input")
	}
	page, err := ClampJump("7", 10)
	if err != nil || page != 7 {
		t.Errorf("expected page 7, got %d (%v)", page, err)
	}
}

func TestDescriptionText(t *testing.T) {
	html := "<p>We build <b>things</b>.</p><ul><li>Go</li><li>Postgres</li></ul>"
	got := DescriptionText(html)
	want := "We build things.\nGo\nPostgres"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if got := DescriptionText(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func buttonsToStrings(buttons []PageButton) []string {
	var out []string
	for _, b := range buttons {
		if b.Ellipsis {
			out = append(out, "...")
		} else {
			out = append(out, strconv.Itoa(b.Page))
		}
	}
	return out
}
