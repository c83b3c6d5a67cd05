package models

import "time"

// Job represents a single job posting returned by the backend.
// The client never mutates job records; they are cached for the current page only.
type Job struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	JobType     string   `json:"job_type"`
	RemoteType  string   `json:"remote_type"`
	Category    string   `json:"category,omitempty"`
	PostedDate  string   `json:"posted_date"`
	Skills      []string `json:"skills"`
	Description string   `json:"description,omitempty"`
	SourceURL   string   `json:"source_url,omitempty"`
}

// JobPage is one page of job results plus the backend's total match count.
type JobPage struct {
	Jobs  []Job `json:"jobs"`
	Total int   `json:"total"`
}

// CompanyMetadata holds descriptive company attributes.
type CompanyMetadata struct {
	Size         string `json:"size,omitempty"`
	Industry     string `json:"industry,omitempty"`
	Headquarters string `json:"headquarters,omitempty"`
}

// CompanyStats holds per-company counters maintained by the backend.
type CompanyStats struct {
	ActiveJobs int `json:"active_jobs"`
}

// Company represents a company profile.
type Company struct {
	Name     string          `json:"name"`
	Domain   string          `json:"domain"`
	Metadata CompanyMetadata `json:"metadata"`
	Stats    CompanyStats    `json:"stats"`
}

// User is the authenticated user's profile from /api/auth/me.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

// DisplayName returns the best available human-readable name for the user.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// SavedSearch is a named filter snapshot stored server-side per user.
// Criteria keys use the backend wire names (q, job_type, locations, ...).
// Older records may carry a singular "location" key instead of "locations".
type SavedSearch struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Criteria   map[string]any `json:"criteria"`
	EmailAlert bool           `json:"email_alert"`
}

// Feedback is a single user feedback entry as seen by the admin view.
type Feedback struct {
	ID            string    `json:"_id"`
	UserEmail     string    `json:"user_email,omitempty"`
	ProvidedEmail string    `json:"provided_email,omitempty"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

// FeedbackPage is one page of the admin feedback listing.
type FeedbackPage struct {
	Feedbacks []Feedback `json:"feedbacks"`
	Total     int        `json:"total"`
}

// Stats holds the site-wide counters shown on the dashboard.
type Stats struct {
	TotalJobs    int              `json:"total_jobs"`
	RemoteCount  int              `json:"remote_count"`
	CompanyStats []map[string]any `json:"company_stats"`
}

// VisitCount is the response of the visit counter endpoint.
type VisitCount struct {
	Visits int64 `json:"visits"`
}
