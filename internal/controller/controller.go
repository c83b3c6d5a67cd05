// Package controller owns the application state: the active filters, the
// pagination position, the transient job cache and the session. It drives
// the fetch pipeline and hands ready-to-render view models to the UI.
package controller

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/benlang/jobdetector/internal/api"
	"github.com/benlang/jobdetector/internal/filter"
	"github.com/benlang/jobdetector/internal/models"
	"github.com/benlang/jobdetector/internal/session"
	"github.com/benlang/jobdetector/internal/view"
)

// PageLimit is the jobs page size; FeedbackLimit the admin feedback one.
const (
	PageLimit     = 50
	FeedbackLimit = 10
)

// App is the single controller owning all mutable client state. All state
// mutation happens under its lock; view models handed out are copies.
type App struct {
	api  *api.Client
	sess *session.Session
	log  zerolog.Logger
	now  func() time.Time

	pageLimit     int
	feedbackLimit int

	mu         sync.Mutex
	filters    filter.State
	page       int
	totalCount int
	jobs       []models.Job
	seq        uint64
}

// Option configures an App.
type Option func(*App)

// WithClock overrides the time source, for deterministic rendering in tests.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithLogger attaches a structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithPageLimit overrides the jobs page size.
func WithPageLimit(limit int) Option {
	return func(a *App) {
		if limit > 0 {
			a.pageLimit = limit
		}
	}
}

// WithFeedbackLimit overrides the admin feedback page size.
func WithFeedbackLimit(limit int) Option {
	return func(a *App) {
		if limit > 0 {
			a.feedbackLimit = limit
		}
	}
}

// New creates the controller.
func New(client *api.Client, sess *session.Session, opts ...Option) *App {
	a := &App{
		api:           client,
		sess:          sess,
		log:           zerolog.Nop(),
		now:           time.Now,
		pageLimit:     PageLimit,
		feedbackLimit: FeedbackLimit,
		page:          1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Filters returns a copy of the current filter state.
func (a *App) Filters() filter.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneState(a.filters)
}

// UpdateFilters mutates the filter state under the controller's lock.
func (a *App) UpdateFilters(fn func(*filter.State)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.filters)
}

// ResetFilters clears every filter and rewinds to page 1.
func (a *App) ResetFilters() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filters.Reset()
	a.page = 1
}

// Session exposes the session for the UI layer.
func (a *App) Session() *session.Session {
	return a.sess
}

// ShareQuery returns the current filters as a shareable query string.
func (a *App) ShareQuery() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return filter.EncodeQuery(a.filters)
}

// ApplySharedQuery replaces the filter state from a shared/bookmarked query
// string and rewinds to page 1. The returned Extra carries the navigation
// side-band (view switch, job deep link, one-shot notices) for the caller to
// act on.
func (a *App) ApplySharedQuery(raw string) (filter.Extra, error) {
	state, extra, err := filter.Decode(raw)
	if err != nil {
		return filter.Extra{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filters = state
	a.page = 1
	return extra, nil
}

// Refresh is the rendered outcome of one fetch: the job grid, the
// pagination control, the query string to show as the shareable URL and a
// scroll signal for page navigation.
type Refresh struct {
	List        view.JobListView
	Pagination  view.Pagination
	ResultCount string
	ShareQuery  string
	ScrollTop   bool
	// Stale marks a response superseded by a newer fetch; the UI must
	// discard it without rendering.
	Stale bool
}

// FetchPage runs the fetch pipeline for the requested page and returns the
// rendered result. Network failures do not propagate: the previous page
// stays cached and the returned view carries an inline error instead.
func (a *App) FetchPage(ctx context.Context, page int) Refresh {
	if page < 1 {
		page = 1
	}

	a.mu.Lock()
	a.seq++
	mySeq := a.seq
	a.page = page
	state := cloneState(a.filters)
	a.mu.Unlock()

	query := a.backendQuery(state, page)

	// Favorites mode narrows the query to favorited companies. With no
	// favorites there is nothing to fetch at all.
	if state.FavoritesOnly && a.sess.Authenticated() {
		favorites, err := a.api.Favorites(ctx)
		switch {
		case err != nil:
			a.log.Error().Err(err).Msg("favorites lookup failed")
		case len(favorites) == 0:
			return a.applyResult(mySeq, page, models.JobPage{}, state)
		default:
			for _, fav := range favorites {
				query.Add("companies", fav.Name)
			}
		}
	}

	result, err := a.api.SearchJobs(ctx, query)
	if err != nil {
		a.log.Error().Err(err).Msg("job fetch failed")
		a.mu.Lock()
		defer a.mu.Unlock()
		if mySeq != a.seq {
			return Refresh{Stale: true}
		}
		return Refresh{
			List:        view.JobListError(),
			ShareQuery:  filter.EncodeQuery(a.filters),
			ResultCount: humanize.Comma(int64(a.totalCount)),
		}
	}

	return a.applyResult(mySeq, page, result, state)
}

// applyResult commits a fetch result unless a newer fetch superseded it.
func (a *App) applyResult(mySeq uint64, page int, result models.JobPage, state filter.State) Refresh {
	a.mu.Lock()
	defer a.mu.Unlock()

	if mySeq != a.seq {
		return Refresh{Stale: true}
	}

	a.jobs = result.Jobs
	a.totalCount = result.Total

	return Refresh{
		List:        view.JobList(result.Jobs, state.Query, a.now()),
		Pagination:  view.NewPagination(page, result.Total, a.pageLimit),
		ResultCount: humanize.Comma(int64(result.Total)),
		ShareQuery:  filter.EncodeQuery(state),
		ScrollTop:   page > 1,
	}
}

// backendQuery serializes filter state into the jobs request. This encoding
// is deliberately decoupled from the shareable URL codec: multi-valued
// filters go out as repeated parameters, the keyword tags fold into the
// single search term, and the remote toggle maps to the backend's
// remote_type field.
func (a *App) backendQuery(s filter.State, page int) url.Values {
	query := url.Values{}

	if term := s.SearchTerm(); term != "" {
		query.Set("q", term)
	}
	if s.JobType != "" {
		query.Set("job_type", s.JobType)
	}
	if s.RemoteOnly {
		query.Set("remote_type", "Remote")
	}
	if s.Category != "" {
		query.Set("category", s.Category)
	}
	for _, loc := range s.Locations {
		query.Add("locations", loc)
	}
	if s.RecencyDays != "" {
		query.Set("days", s.RecencyDays)
	}
	if s.Company != "" {
		query.Set("company", s.Company)
	}
	for _, c := range s.Companies {
		query.Add("companies", c)
	}

	skip := (page - 1) * a.pageLimit
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(a.pageLimit))
	return query
}

// RawPage fetches one page of the current search without touching the
// controller state. Exports walk pages through this so a long export does
// not fight the interactive listing over the cache.
func (a *App) RawPage(ctx context.Context, page int) (models.JobPage, error) {
	if page < 1 {
		page = 1
	}
	a.mu.Lock()
	state := cloneState(a.filters)
	a.mu.Unlock()
	return a.api.SearchJobs(ctx, a.backendQuery(state, page))
}

// CachedJob looks up a job on the current page by id.
func (a *App) CachedJob(id string) (models.Job, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, job := range a.jobs {
		if job.ID == id {
			return job, true
		}
	}
	return models.Job{}, false
}

// FindJob resolves a job deep link: the page cache first, then a broad
// backend lookup for links into pages we never fetched.
func (a *App) FindJob(ctx context.Context, id string) (models.Job, error) {
	if job, ok := a.CachedJob(id); ok {
		return job, nil
	}

	result, err := a.api.SearchJobs(ctx, url.Values{"limit": {"1000"}})
	if err != nil {
		return models.Job{}, err
	}
	for _, job := range result.Jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return models.Job{}, &api.Error{Status: http.StatusNotFound, Detail: "Job not found or no longer available"}
}

// TotalPages returns the page count for the last fetched total.
func (a *App) TotalPages() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return view.TotalPages(a.totalCount, a.pageLimit)
}

// Page returns the current page number.
func (a *App) Page() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.page
}

func cloneState(s filter.State) filter.State {
	out := s
	out.Locations = append([]string(nil), s.Locations...)
	out.Keywords = append([]string(nil), s.Keywords...)
	out.Companies = append([]string(nil), s.Companies...)
	return out
}
