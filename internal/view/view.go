// Package view projects fetched data and pagination metadata into plain
// view models. Nothing here touches the terminal or the network, so the
// whole render stage is testable headlessly; internal/ui translates these
// models into pterm primitives.
package view

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/benlang/jobdetector/internal/models"
)

// Segment is a run of text that is either part of a highlighted query match
// or plain.
type Segment struct {
	Text  string
	Match bool
}

// JobItem is the card shown for a single job in the listing.
type JobItem struct {
	ID          string
	Glyph       string
	PostedLabel string
	Title       []Segment
	Company     []Segment
	Location    string
	JobTypeTag  string
	RemoteTag   string
	Skills      [][]Segment
	MoreSkills  int
}

// JobListView is the rendered job grid. Err is set instead of Items when the
// fetch pipeline failed; Empty marks a successful fetch with no matches.
type JobListView struct {
	Items []JobItem
	Empty bool
	Err   string
}

// visibleSkills is how many skill tags a list card shows; the rest are only
// visible in the detail view.
const visibleSkills = 3

// JobList builds the listing view for one page of jobs, highlighting the
// active free-text query in titles, company names and skills.
func JobList(jobs []models.Job, query string, now time.Time) JobListView {
	if len(jobs) == 0 {
		return JobListView{Empty: true}
	}

	items := make([]JobItem, 0, len(jobs))
	for _, job := range jobs {
		item := JobItem{
			ID:          job.ID,
			Glyph:       initialGlyph(job.Company),
			PostedLabel: FormatDate(job.PostedDate, now),
			Title:       Highlight(job.Title, query),
			Company:     Highlight(job.Company, query),
			Location:    job.Location,
			JobTypeTag:  job.JobType,
			RemoteTag:   job.RemoteType,
		}
		shown := job.Skills
		if len(shown) > visibleSkills {
			item.MoreSkills = len(shown) - visibleSkills
			shown = shown[:visibleSkills]
		}
		for _, skill := range shown {
			item.Skills = append(item.Skills, Highlight(skill, query))
		}
		items = append(items, item)
	}
	return JobListView{Items: items}
}

// JobListError builds the inline error placeholder rendered in place of the
// grid when fetching fails.
func JobListError() JobListView {
	return JobListView{Err: "Failed to load opportunities. Please try again later."}
}

// JobDetail is the expanded single-job view.
type JobDetail struct {
	Company     string
	Title       []Segment
	JobTypeTag  string
	RemoteTag   string
	Location    string
	PostedLabel string
	SourceURL   string
	Description string
	Skills      []string
}

// NewJobDetail builds the detail view for a job. The backend's HTML
// description is reduced to plain text for the terminal.
func NewJobDetail(job models.Job, query string, now time.Time) JobDetail {
	desc := DescriptionText(job.Description)
	if desc == "" {
		desc = "No description provided."
	}
	return JobDetail{
		Company:     job.Company,
		Title:       Highlight(job.Title, query),
		JobTypeTag:  job.JobType,
		RemoteTag:   job.RemoteType,
		Location:    job.Location,
		PostedLabel: FormatDate(job.PostedDate, now),
		SourceURL:   job.SourceURL,
		Description: desc,
		Skills:      job.Skills,
	}
}

// Highlight splits text into segments, marking every case-insensitive
// occurrence of query. An empty query yields a single plain segment.
// Matching is done rune-by-rune so that case pairs with different UTF-8
// lengths never split the original string mid-rune.
func Highlight(text, query string) []Segment {
	if query == "" || text == "" {
		return []Segment{{Text: text}}
	}

	var segs []Segment
	start := 0
	i := 0
	for i < len(text) {
		n, ok := foldPrefixLen(text[i:], query)
		if !ok {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		if i > start {
			segs = append(segs, Segment{Text: text[start:i]})
		}
		segs = append(segs, Segment{Text: text[i : i+n], Match: true})
		i += n
		start = i
	}
	if start < len(text) {
		segs = append(segs, Segment{Text: text[start:]})
	}
	return segs
}

// foldPrefixLen reports whether text starts with a case-insensitive match of
// query, and the byte length that match occupies in text. The length can
// differ from len(query) when a case pair encodes to different widths.
func foldPrefixLen(text, query string) (int, bool) {
	i := 0
	for _, qr := range query {
		if i >= len(text) {
			return 0, false
		}
		tr, size := utf8.DecodeRuneInString(text[i:])
		if tr != qr && unicode.ToLower(tr) != unicode.ToLower(qr) {
			return 0, false
		}
		i += size
	}
	return i, true
}

// FormatDate renders a posted-date timestamp relative to now. Hours are
// floored, days use a ceiling; anything older than 30 days falls back to an
// absolute date. Empty or unparsable input reads as freshly posted.
func FormatDate(dateStr string, now time.Time) string {
	if dateStr == "" {
		return "Just now"
	}
	posted, err := parseTimestamp(dateStr)
	if err != nil {
		return "Just now"
	}
	return FormatDateAt(posted, now)
}

// FormatDateAt is FormatDate over an already-parsed timestamp.
func FormatDateAt(posted, now time.Time) string {
	diff := now.Sub(posted)
	if diff < 0 {
		diff = -diff
	}

	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)
	if diff.Hours() > float64(days)*24 {
		days++ // ceiling
	}

	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days <= 30:
		return fmt.Sprintf("%dd ago", days)
	default:
		return posted.Format("1/2/2006")
	}
}

// parseTimestamp accepts the timestamp shapes the backend has been seen to
// emit: RFC 3339 with or without sub-second precision, and a bare date.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// CompanyCard is the card shown for a company in the companies view.
type CompanyCard struct {
	Glyph      string
	Name       string
	Domain     string
	SizeBadge  string
	Industry   string
	ActiveJobs int
	Silent     bool
}

// CompanyListView is the rendered companies grid.
type CompanyListView struct {
	Items []CompanyCard
	Empty bool
	Err   string
}

// CompanyList builds the companies view. Companies with no active jobs are
// flagged as silent so the adapter can dim them.
func CompanyList(companies []models.Company) CompanyListView {
	if len(companies) == 0 {
		return CompanyListView{Empty: true}
	}
	items := make([]CompanyCard, 0, len(companies))
	for _, c := range companies {
		size := c.Metadata.Size
		if size == "" {
			size = "Unknown Size"
		}
		items = append(items, CompanyCard{
			Glyph:      initialGlyph(c.Name),
			Name:       c.Name,
			Domain:     c.Domain,
			SizeBadge:  size,
			Industry:   c.Metadata.Industry,
			ActiveJobs: c.Stats.ActiveJobs,
			Silent:     c.Stats.ActiveJobs == 0,
		})
	}
	return CompanyListView{Items: items}
}

// StatsView is the dashboard counter row, with counts formatted for humans.
type StatsView struct {
	TotalJobs   string
	Companies   string
	RemoteJobs  string
	Visits      string
	ResultCount string
}

// NewStatsView formats the site-wide counters.
func NewStatsView(stats models.Stats, visits int64) StatsView {
	return StatsView{
		TotalJobs:  humanize.Comma(int64(stats.TotalJobs)),
		Companies:  humanize.Comma(int64(len(stats.CompanyStats))),
		RemoteJobs: humanize.Comma(int64(stats.RemoteCount)),
		Visits:     humanize.Comma(visits),
	}
}

func initialGlyph(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
