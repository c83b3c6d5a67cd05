// Package export writes fetched data to CSV files for offline use.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/benlang/jobdetector/internal/models"
)

// feedbackHeader matches the column order of the admin dashboard's
// downloadable report.
var feedbackHeader = []string{"Date", "User Email", "Provided Email", "Content"}

// Feedbacks writes the feedback entries as CSV. Field quoting and escaping
// follow RFC 4180, so free-text content with commas, quotes or newlines
// survives a round trip through a spreadsheet.
func Feedbacks(w io.Writer, items []models.Feedback) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(feedbackHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, f := range items {
		user := f.UserEmail
		if user == "" {
			user = "Guest Account"
		}
		record := []string{
			f.CreatedAt.Format("2006-01-02 15:04:05"),
			user,
			f.ProvidedEmail,
			f.Content,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FeedbackFileName returns the suggested file name for a feedback report.
func FeedbackFileName(now time.Time) string {
	return "feedbacks_" + now.Format("2006-01-02") + ".csv"
}

// jobHeader is the column order for job exports.
var jobHeader = []string{"ID", "Title", "Company", "Location", "Job Type", "Remote", "Posted", "Source URL"}

// PageFetcher fetches one page of the current search. Pages are numbered
// from 1.
type PageFetcher func(page int) (models.JobPage, error)

// Jobs walks every page of the current search and writes the jobs as CSV,
// driving a progress bar while pages stream in. pageLimit is the page size
// the fetcher serves; it is only used to derive the page count from the
// first response.
func Jobs(w io.Writer, fetch PageFetcher, pageLimit int, showProgress bool) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(jobHeader); err != nil {
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}

	written, err := walkPages(fetch, pageLimit, showProgress, func(job models.Job) error {
		record := []string{
			job.ID,
			job.Title,
			job.Company,
			job.Location,
			job.JobType,
			job.RemoteType,
			job.PostedDate,
			job.SourceURL,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	})
	if err != nil {
		return written, err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, err
	}
	return written, nil
}

// JobsJSON walks every page of the current search and writes the jobs as a
// single JSON array.
func JobsJSON(w io.Writer, fetch PageFetcher, pageLimit int, showProgress bool) (int, error) {
	var jobs []models.Job
	written, err := walkPages(fetch, pageLimit, showProgress, func(job models.Job) error {
		jobs = append(jobs, job)
		return nil
	})
	if err != nil {
		return written, err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if jobs == nil {
		jobs = []models.Job{}
	}
	if err := enc.Encode(jobs); err != nil {
		return written, fmt.Errorf("failed to write JSON: %w", err)
	}
	return written, nil
}

// walkPages fetches every page of the search and feeds each job to emit,
// with a progress bar over pages.
func walkPages(fetch PageFetcher, pageLimit int, showProgress bool, emit func(models.Job) error) (int, error) {
	if pageLimit <= 0 {
		return 0, fmt.Errorf("invalid page limit %d", pageLimit)
	}

	first, err := fetch(1)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch page 1: %w", err)
	}
	totalPages := (first.Total + pageLimit - 1) / pageLimit

	var bar *pb.ProgressBar
	if showProgress && totalPages > 0 {
		bar = pb.New(totalPages)
		bar.Start()
		defer bar.Finish()
	}

	written := 0
	emitPage := func(page models.JobPage) error {
		for _, job := range page.Jobs {
			if err := emit(job); err != nil {
				return err
			}
			written++
		}
		return nil
	}

	if err := emitPage(first); err != nil {
		return written, err
	}
	if bar != nil {
		bar.Increment()
	}

	for page := 2; page <= totalPages; page++ {
		jp, err := fetch(page)
		if err != nil {
			return written, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}
		if err := emitPage(jp); err != nil {
			return written, err
		}
		if bar != nil {
			bar.Increment()
		}
		// An empty page means the result set shrank under us; stop early
		// instead of spinning on the stale total.
		if len(jp.Jobs) == 0 {
			break
		}
	}

	return written, nil
}
