package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/benlang/jobdetector/internal/api"
	"github.com/benlang/jobdetector/internal/filter"
	"github.com/benlang/jobdetector/internal/models"
	"github.com/benlang/jobdetector/internal/view"
)

var validate = validator.New()

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// Startup restores the session at launch: when a token is present, a
// who-am-I call refreshes the user profile. A 401 evicts the token
// silently, downgrading to an unauthenticated run; any other failure,
// network or server-side, keeps the token for next time.
func (a *App) Startup(ctx context.Context) {
	if !a.sess.Authenticated() {
		return
	}

	user, err := a.api.Me(ctx)
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) {
			a.log.Debug().Msg("session token rejected, evicting")
			if evictErr := a.sess.Evict(); evictErr != nil {
				a.log.Warn().Err(evictErr).Msg("token eviction failed")
			}
			return
		}
		a.log.Warn().Err(err).Msg("who-am-I check failed")
		return
	}
	a.sess.User = &user
}

// Login validates credentials, exchanges them for a token and persists it.
func (a *App) Login(ctx context.Context, email, password string) error {
	if err := validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return fmt.Errorf("please enter a valid email and a password of at least 8 characters")
	}

	result, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.sess.SetToken(result.AccessToken); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	user := result.User
	a.sess.User = &user
	return nil
}

// Register creates an account. Login remains a separate step, matching the
// backend flow that requires email verification first.
func (a *App) Register(ctx context.Context, email, password, fullName string) error {
	if err := validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return fmt.Errorf("please enter a valid email and a password of at least 8 characters")
	}
	return a.api.Register(ctx, email, password, fullName)
}

// ForgotPassword requests a reset link for the given address.
func (a *App) ForgotPassword(ctx context.Context, email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("please enter your email address")
	}
	return a.api.ForgotPassword(ctx, email)
}

// Logout drops the session token.
func (a *App) Logout() error {
	return a.sess.Evict()
}

// SaveCurrentSearch stores the active filters server-side under a name.
func (a *App) SaveCurrentSearch(ctx context.Context, name string, emailAlert bool) error {
	if err := validate.Var(name, "required"); err != nil {
		return fmt.Errorf("please name the search")
	}
	if !a.sess.Authenticated() {
		return fmt.Errorf("sign in to save searches")
	}
	return a.api.SaveSearch(ctx, name, a.Filters().Criteria(), emailAlert)
}

// SavedSearches lists the user's saved searches.
func (a *App) SavedSearches(ctx context.Context) ([]models.SavedSearch, error) {
	if !a.sess.Authenticated() {
		return nil, fmt.Errorf("sign in to view saved searches")
	}
	return a.api.SavedSearches(ctx)
}

// DeleteSavedSearch removes a saved search.
func (a *App) DeleteSavedSearch(ctx context.Context, id string) error {
	return a.api.DeleteSearch(ctx, id)
}

// ToggleSearchAlert flips a saved search's email alert subscription.
func (a *App) ToggleSearchAlert(ctx context.Context, id string, enabled bool) error {
	return a.api.SetSearchAlert(ctx, id, enabled)
}

// LoadSavedSearch replaces the filter state with a saved search's criteria
// and rewinds to page 1. The next FetchPage call picks it up.
func (a *App) LoadSavedSearch(criteria map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filters = filter.FromCriteria(criteria)
	a.page = 1
}

// SubmitFeedback sends feedback, anonymous or authenticated.
func (a *App) SubmitFeedback(ctx context.Context, content, email string) error {
	if err := validate.Var(content, "required"); err != nil {
		return fmt.Errorf("please provide some feedback content")
	}
	return a.api.SubmitFeedback(ctx, content, email)
}

// AdminFeedbacks fetches one page of the admin feedback view along with its
// rendered pagination control.
func (a *App) AdminFeedbacks(ctx context.Context, page int) (models.FeedbackPage, view.Pagination, error) {
	if page < 1 {
		page = 1
	}
	fp, err := a.api.AdminFeedbacks(ctx, page, a.feedbackLimit)
	if err != nil {
		return models.FeedbackPage{}, view.Pagination{}, err
	}
	return fp, view.NewPagination(page, fp.Total, a.feedbackLimit), nil
}

// Companies fetches the companies view, optionally filtered.
func (a *App) Companies(ctx context.Context, q string) (view.CompanyListView, error) {
	companies, err := a.api.Companies(ctx, q)
	if err != nil {
		return view.CompanyListView{Err: "Failed to load companies."}, err
	}
	return view.CompanyList(companies), nil
}

// CompanyJobs fetches a company's open positions for the detail view.
func (a *App) CompanyJobs(ctx context.Context, name string) ([]models.Job, error) {
	return a.api.CompanyJobs(ctx, name)
}

// Stats fetches the dashboard counters and bumps the visit counter. A
// failed visit bump is not fatal; the counter just reads zero.
func (a *App) Stats(ctx context.Context) (view.StatsView, error) {
	stats, err := a.api.Stats(ctx)
	if err != nil {
		return view.StatsView{}, err
	}
	visits, err := a.api.RecordVisit(ctx)
	if err != nil {
		a.log.Debug().Err(err).Msg("visit count update failed")
	}
	return view.NewStatsView(stats, visits), nil
}

// Favorites lists the user's favorited companies.
func (a *App) Favorites(ctx context.Context) ([]models.Company, error) {
	if !a.sess.Authenticated() {
		return nil, fmt.Errorf("sign in to view favorites")
	}
	return a.api.Favorites(ctx)
}
