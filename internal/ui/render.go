// Package ui translates view models into pterm terminal output. It holds no
// application logic; everything it prints comes ready-made from
// internal/view and internal/controller.
package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/benlang/jobdetector/internal/models"
	"github.com/benlang/jobdetector/internal/view"
)

// RenderJobList prints the job grid for the current page.
func RenderJobList(vm view.JobListView) {
	if vm.Err != "" {
		pterm.Error.Println(vm.Err)
		return
	}
	if vm.Empty {
		pterm.Println(pterm.Gray("No opportunities found matching your criteria."))
		return
	}

	for _, item := range vm.Items {
		header := pterm.Cyan(fmt.Sprintf("[%s]", item.Glyph)) + " " + renderSegments(item.Title) + "  " + pterm.Gray(item.PostedLabel)
		pterm.Println(header)
		pterm.Println("    " + renderSegments(item.Company) + "  " + pterm.Gray(item.Location))

		tags := []string{}
		if item.JobTypeTag != "" {
			tags = append(tags, pterm.LightBlue(item.JobTypeTag))
		}
		if item.RemoteTag != "" {
			tags = append(tags, pterm.LightMagenta(item.RemoteTag))
		}
		for _, skill := range item.Skills {
			tags = append(tags, renderSegments(skill))
		}
		if item.MoreSkills > 0 {
			tags = append(tags, pterm.Gray(fmt.Sprintf("+%d more", item.MoreSkills)))
		}
		if len(tags) > 0 {
			pterm.Println("    " + strings.Join(tags, "  "))
		}
		pterm.Println(pterm.Gray(strings.Repeat("-", 80)))
	}
}

// RenderPagination prints the sliding-window page bar. An empty control
// prints nothing, mirroring the hidden bar for single-page results.
func RenderPagination(p view.Pagination) {
	if p.TotalPages <= 1 {
		return
	}

	var parts []string
	if p.HasPrev {
		parts = append(parts, pterm.Gray("<"))
	}
	for _, b := range p.Buttons {
		switch {
		case b.Ellipsis:
			parts = append(parts, pterm.Gray("..."))
		case b.Active:
			parts = append(parts, pterm.NewStyle(pterm.FgBlack, pterm.BgLightBlue).Sprintf(" %d ", b.Page))
		default:
			parts = append(parts, fmt.Sprintf(" %d ", b.Page))
		}
	}
	if p.HasNext {
		parts = append(parts, pterm.Gray(">"))
	}
	pterm.Println(strings.Join(parts, ""))
	pterm.Println(pterm.Gray(fmt.Sprintf("Page %d / %d", p.Current, p.TotalPages)))
}

// RenderJobDetail prints the expanded view of one job.
func RenderJobDetail(d view.JobDetail) {
	pterm.DefaultSection.Println(segmentsPlain(d.Title))
	pterm.Println(pterm.Cyan(d.Company))

	meta := []string{}
	if d.JobTypeTag != "" {
		meta = append(meta, pterm.LightBlue(d.JobTypeTag))
	}
	if d.RemoteTag != "" {
		meta = append(meta, pterm.LightMagenta(d.RemoteTag))
	}
	if d.Location != "" {
		meta = append(meta, d.Location)
	}
	meta = append(meta, pterm.Gray(d.PostedLabel))
	pterm.Println(strings.Join(meta, "  "))

	if d.SourceURL != "" {
		pterm.Println("Apply: " + FormatURL(d.SourceURL, true))
	}

	pterm.Println()
	pterm.Println(d.Description)

	if len(d.Skills) > 0 {
		pterm.Println()
		pterm.Println(pterm.Bold.Sprint("Extracted Skills"))
		pterm.Println(strings.Join(d.Skills, "  "))
	}
}

// RenderCompanies prints the companies grid.
func RenderCompanies(vm view.CompanyListView) {
	if vm.Err != "" {
		pterm.Error.Println(vm.Err)
		return
	}
	if vm.Empty {
		pterm.Println(pterm.Gray("No companies found."))
		return
	}

	rows := pterm.TableData{{"", "Company", "Domain", "Size", "Industry", "Jobs"}}
	for _, c := range vm.Items {
		jobs := fmt.Sprintf("%d", c.ActiveJobs)
		name := c.Name
		if c.Silent {
			name = pterm.Gray(name)
			jobs = pterm.Gray(jobs)
		}
		rows = append(rows, []string{c.Glyph, name, c.Domain, c.SizeBadge, c.Industry, jobs})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

// RenderCompanyJobs prints a company's open positions.
func RenderCompanyJobs(name string, vm view.JobListView) {
	pterm.DefaultSection.Printf("Open Positions at %s\n", name)
	if vm.Empty {
		pterm.Println(pterm.Gray("No active jobs found for this company."))
		return
	}
	RenderJobList(vm)
}

// RenderStats prints the dashboard counter row.
func RenderStats(s view.StatsView) {
	pterm.Println(strings.Join([]string{
		pterm.Bold.Sprint(s.TotalJobs) + " jobs",
		pterm.Bold.Sprint(s.Companies) + " companies",
		pterm.Bold.Sprint(s.RemoteJobs) + " remote",
		pterm.Bold.Sprint(s.Visits) + " visits",
	}, "   "))
}

// RenderFeedbackPage prints the admin feedback listing.
func RenderFeedbackPage(fp models.FeedbackPage) {
	if len(fp.Feedbacks) == 0 {
		pterm.Println(pterm.Gray("No feedback found."))
		return
	}

	uniqueUsers := map[string]bool{}
	for _, f := range fp.Feedbacks {
		if f.UserEmail != "" {
			uniqueUsers[f.UserEmail] = true
		}
	}
	pterm.Println(pterm.Bold.Sprintf("%d feedback entries, %d unique users on this page", fp.Total, len(uniqueUsers)))
	pterm.Println()

	for _, f := range fp.Feedbacks {
		user := f.UserEmail
		if user == "" {
			user = "Guest Account"
		}
		pterm.Println(pterm.Cyan(user) + "  " + pterm.Gray(f.CreatedAt.Local().Format("Jan 2 2006 15:04")) + "  " + pterm.Gray("id="+f.ID))
		pterm.Println(f.Content)
		if f.ProvidedEmail != "" {
			pterm.Println(pterm.Gray("Contact provided: " + f.ProvidedEmail))
		}
		pterm.Println(pterm.Gray(strings.Repeat("-", 60)))
	}
}

// RenderSavedSearches prints the user's saved searches.
func RenderSavedSearches(searches []models.SavedSearch) {
	if len(searches) == 0 {
		pterm.Println(pterm.Gray("No saved searches yet."))
		return
	}

	for _, s := range searches {
		alert := pterm.Gray("alerts off")
		if s.EmailAlert {
			alert = pterm.Green("alerts on")
		}
		pterm.Println(pterm.Bold.Sprint(s.Name) + "  " + alert + "  " + pterm.Gray("id="+s.ID))

		var tags []string
		for _, key := range []string{"q", "location", "locations", "category", "job_type", "days"} {
			if v, ok := s.Criteria[key]; ok {
				if tag := criteriaTag(v); tag != "" {
					tags = append(tags, tag)
				}
			}
		}
		if len(tags) > 0 {
			pterm.Println("    " + strings.Join(tags, "  "))
		}
	}
}

// ShareURL prints the shareable link for the current filters.
func ShareURL(baseURL, query string) {
	u := baseURL
	if query != "" {
		u += "/?" + query
	}
	pterm.Println(pterm.Gray("Share this search: ") + FormatURL(u, false))
}

// Alert prints a blocking user-facing notice, the terminal stand-in for a
// modal alert.
func Alert(msg string) {
	pterm.DefaultBox.Println(msg)
}

// Confirm asks a yes/no question and reports the answer. A prompt that
// cannot be shown (no terminal) reads as a refusal.
func Confirm(msg string) bool {
	ok, err := pterm.DefaultInteractiveConfirm.Show(msg)
	if err != nil {
		return false
	}
	return ok
}

// Errorf prints a user-facing failure message.
func Errorf(format string, args ...any) {
	pterm.Error.Printf(format+"\n", args...)
}

// Successf prints a user-facing success message.
func Successf(format string, args ...any) {
	pterm.Success.Printf(format+"\n", args...)
}

// Spinner starts a loading indicator; the returned stop function clears it.
func Spinner(msg string) func() {
	spinner, err := pterm.DefaultSpinner.Start(msg)
	if err != nil {
		return func() {}
	}
	return func() { _ = spinner.Stop() }
}

// ClearScreen scrolls to the top of the listing, the terminal equivalent of
// the page-change scroll.
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}

// FormatURL optionally renders a URL as a clickable terminal hyperlink
// using the OSC 8 escape sequence.
func FormatURL(url string, useHyperlink bool) string {
	if !useHyperlink {
		return url
	}
	return fmt.Sprintf("\033]8;;%s\a%s\033]8;;\a", url, "View Job")
}

func renderSegments(segs []view.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Match {
			b.WriteString(pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func segmentsPlain(segs []view.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func criteriaTag(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		var parts []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(val, ",")
	default:
		return ""
	}
}
