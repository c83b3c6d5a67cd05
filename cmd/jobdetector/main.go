package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/benlang/jobdetector/internal/api"
	"github.com/benlang/jobdetector/internal/config"
	"github.com/benlang/jobdetector/internal/controller"
	"github.com/benlang/jobdetector/internal/export"
	"github.com/benlang/jobdetector/internal/filter"
	"github.com/benlang/jobdetector/internal/models"
	"github.com/benlang/jobdetector/internal/session"
	"github.com/benlang/jobdetector/internal/ui"
	"github.com/benlang/jobdetector/internal/view"
)

// printExamples displays usage examples for the program
func printExamples() {
	fmt.Println("\n📋 Job Detector Usage Examples 📋")
	fmt.Println("\n1. Search for remote Go jobs posted in the last 7 days:")
	fmt.Println("   jobdetector -query \"Go\" -remote -days 7")

	fmt.Println("\n2. Search for engineering jobs in two cities with extra keyword tags:")
	fmt.Println("   jobdetector -category Engineering -locations \"Berlin,Remote\" -keywords \"kubernetes,terraform\"")

	fmt.Println("\n3. Open page 3 of the current search and browse interactively:")
	fmt.Println("   jobdetector -query \"backend\" -page 3 -interactive")

	fmt.Println("\n4. Sign in, then list only jobs at your favorited companies:")
	fmt.Println("   jobdetector -login -email you@example.com")
	fmt.Println("   jobdetector -favorites")

	fmt.Println("\n5. Re-open a search someone shared with you:")
	fmt.Println("   jobdetector -from-url \"q=python&locations=Berlin&job_type=Full-time\"")

	fmt.Println("\n6. Save the current search with email alerts, then list saved searches:")
	fmt.Println("   jobdetector -query \"SRE\" -remote -save-search \"remote sre\" -alert")
	fmt.Println("   jobdetector -view saved")

	fmt.Println("\n7. Export every page of a search to CSV through a proxy:")
	fmt.Println("   jobdetector -query \"data engineer\" -export-jobs jobs.csv -proxy http://localhost:8080")

	fmt.Println("\n8. Admin: review feedback and download it as CSV:")
	fmt.Println("   jobdetector -view feedback -feedback-page 2")
	fmt.Println("   jobdetector -export-feedback feedbacks.csv")
	os.Exit(0)
}

func main() {
	// Search filter flags
	query := flag.String("query", "", "Free-text search query")
	locations := flag.String("locations", "", "Comma-separated location tags")
	keywords := flag.String("keywords", "", "Comma-separated keyword tags folded into the search term")
	jobType := flag.String("job-type", "", "Job type filter (e.g. Full-time, Part-time, Contract)")
	remote := flag.Bool("remote", false, "Only show remote positions")
	category := flag.String("category", "", "Category filter")
	days := flag.String("days", "", "Only show jobs posted within this many days")
	company := flag.String("company", "", "Single company filter")
	companies := flag.String("companies", "", "Comma-separated company list filter")
	favorites := flag.Bool("favorites", false, "Only show jobs at favorited companies (requires sign-in)")
	page := flag.Int("page", 1, "Page number to fetch")
	interactive := flag.Bool("interactive", false, "Browse pages interactively after the first fetch")

	// Shareable URL flags
	fromURL := flag.String("from-url", "", "Apply a shared query string instead of filter flags")
	shareURL := flag.Bool("share-url", false, "Print the shareable URL for the current search")

	// View selection
	viewName := flag.String("view", "", "Alternate view: companies, stats, saved, favorites, feedback")
	companyJobs := flag.String("company-jobs", "", "Show open positions at a company")
	jobID := flag.String("job", "", "Show the detail view for a job id")
	feedbackPage := flag.Int("feedback-page", 1, "Admin feedback page number")

	// Account flags
	login := flag.Bool("login", false, "Sign in (prompts for the password)")
	register := flag.Bool("register", false, "Create an account (prompts for the password)")
	forgot := flag.Bool("forgot-password", false, "Request a password reset link")
	logout := flag.Bool("logout", false, "Sign out and drop the stored token")
	whoami := flag.Bool("whoami", false, "Show the signed-in user")
	email := flag.String("email", "", "Email address for account operations")
	fullName := flag.String("name", "", "Full name for registration")

	// Saved search flags
	saveSearch := flag.String("save-search", "", "Save the current search under this name")
	alert := flag.Bool("alert", false, "Enable email alerts for -save-search or -toggle-alert")
	loadSearch := flag.String("load-search", "", "Run a saved search by id")
	deleteSearch := flag.String("delete-search", "", "Delete a saved search by id")
	toggleAlert := flag.String("toggle-alert", "", "Toggle email alerts for a saved search id")

	// Feedback flags
	feedback := flag.String("feedback", "", "Submit feedback")
	feedbackEmail := flag.String("feedback-email", "", "Contact email to attach to anonymous feedback")
	deleteFeedback := flag.String("delete-feedback", "", "Admin: delete a feedback entry by id (asks for confirmation)")
	yes := flag.Bool("yes", false, "Skip confirmation prompts")

	// Export flags
	exportJobs := flag.String("export-jobs", "", "Export every page of the current search to this file (.json for JSON, otherwise CSV)")
	exportFeedback := flag.String("export-feedback", "", "Admin: export all feedback to this CSV file")

	// Infrastructure flags
	configPath := flag.String("config", "", "Path to a config file")
	proxyURL := flag.String("proxy", "", "Proxy URL to use")
	debug := flag.Bool("debug", false, "Enable debug mode")
	examples := flag.Bool("examples", false, "Show usage examples")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	// Display banner (skip if either -silence or -nobanner is set)
	ui.PrintBanner(*silence || *noBanner)

	if *examples {
		printExamples()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *proxyURL != "" {
		cfg.API.Proxy = *proxyURL
	}

	logger := newLogger(cfg.Log.Level, *debug)

	sess, err := session.New(cfg.Session.TokenPath)
	if err != nil {
		log.Fatalf("Error opening session store: %v", err)
	}

	client := api.New(cfg.API.BaseURL,
		api.WithToken(sess.Token),
		api.WithTimeout(cfg.Timeout()),
		api.WithProxy(cfg.API.Proxy),
		api.WithLogger(logger),
	)

	app := controller.New(client, sess,
		controller.WithLogger(logger),
		controller.WithPageLimit(cfg.Jobs.PageLimit),
		controller.WithFeedbackLimit(cfg.Admin.FeedbackLimit),
	)

	ctx := context.Background()
	app.Startup(ctx)

	// Account operations run before anything that needs the session.
	switch {
	case *login:
		password := promptPassword("Password: ")
		if err := app.Login(ctx, *email, password); err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		ui.Successf("Signed in as %s", sess.User.DisplayName())
		return
	case *register:
		password := promptPassword("Choose a password: ")
		if err := app.Register(ctx, *email, password, *fullName); err != nil {
			log.Fatalf("Registration failed: %v", err)
		}
		ui.Alert("Account created. Check your email to verify your address, then sign in with -login.")
		return
	case *forgot:
		if err := app.ForgotPassword(ctx, *email); err != nil {
			log.Fatalf("Password reset request failed: %v", err)
		}
		ui.Successf("If that address has an account, a reset link is on its way.")
		return
	case *logout:
		if err := app.Logout(); err != nil {
			log.Fatalf("Logout failed: %v", err)
		}
		ui.Successf("Signed out")
		return
	case *whoami:
		if sess.User == nil {
			ui.Errorf("Not signed in")
			return
		}
		fmt.Printf("%s <%s>\n", sess.User.DisplayName(), sess.User.Email)
		return
	}

	// Saved search management.
	switch {
	case *deleteSearch != "":
		if err := app.DeleteSavedSearch(ctx, *deleteSearch); err != nil {
			log.Fatalf("Error deleting saved search: %v", err)
		}
		ui.Successf("Saved search deleted")
		return
	case *toggleAlert != "":
		if err := app.ToggleSearchAlert(ctx, *toggleAlert, *alert); err != nil {
			log.Fatalf("Error updating alert: %v", err)
		}
		ui.Successf("Email alerts %s", onOff(*alert))
		return
	}

	// Feedback operations.
	if *feedback != "" {
		if err := app.SubmitFeedback(ctx, *feedback, *feedbackEmail); err != nil {
			log.Fatalf("Error submitting feedback: %v", err)
		}
		ui.Successf("Thanks for the feedback!")
		return
	}
	if *deleteFeedback != "" {
		if !*yes && !ui.Confirm(fmt.Sprintf("Delete feedback %s? This cannot be undone.", *deleteFeedback)) {
			fmt.Println("Cancelled")
			return
		}
		if err := client.DeleteFeedback(ctx, *deleteFeedback); err != nil {
			log.Fatalf("Error deleting feedback: %v", err)
		}
		ui.Successf("Feedback deleted")
		return
	}
	if *exportFeedback != "" {
		if err := runFeedbackExport(ctx, app, *exportFeedback); err != nil {
			log.Fatalf("Error exporting feedback: %v", err)
		}
		return
	}

	// Assemble the filter state, either from a shared URL or from flags.
	if *fromURL != "" {
		extra, err := app.ApplySharedQuery(*fromURL)
		if err != nil {
			log.Fatalf("Error parsing shared URL: %v", err)
		}
		if extra.Verified {
			ui.Alert("Email verified successfully! You can now sign in.")
		}
		if extra.PasswordReset {
			ui.Alert("Open the reset link in your email client to choose a new password.")
		}
		if extra.JobID != "" && *jobID == "" {
			*jobID = extra.JobID
		}
		if extra.View != "" && *viewName == "" {
			*viewName = extra.View
		}
	} else {
		app.UpdateFilters(func(s *filter.State) {
			s.Query = *query
			s.JobType = *jobType
			s.RemoteOnly = *remote
			s.Category = *category
			s.RecencyDays = *days
			s.Company = *company
			s.FavoritesOnly = *favorites
			for _, loc := range splitTags(*locations) {
				s.AddLocation(loc)
			}
			for _, kw := range splitTags(*keywords) {
				s.AddKeyword(kw)
			}
			for _, c := range splitTags(*companies) {
				s.AddCompany(c)
			}
		})
	}

	if *loadSearch != "" {
		if err := runSavedSearch(ctx, app, *loadSearch); err != nil {
			log.Fatalf("Error loading saved search: %v", err)
		}
	}

	if *saveSearch != "" {
		if err := app.SaveCurrentSearch(ctx, *saveSearch, *alert); err != nil {
			log.Fatalf("Error saving search: %v", err)
		}
		ui.Successf("Search %q saved (email alerts %s)", *saveSearch, onOff(*alert))
	}

	if *shareURL {
		ui.ShareURL(cfg.API.BaseURL, app.ShareQuery())
		return
	}

	if *exportJobs != "" {
		if err := runJobExport(ctx, app, *exportJobs, cfg.Jobs.PageLimit); err != nil {
			log.Fatalf("Error exporting jobs: %v", err)
		}
		return
	}

	// Alternate views.
	switch *viewName {
	case "":
	case "companies":
		vm, err := app.Companies(ctx, *query)
		if err != nil && *debug {
			fmt.Printf("Companies fetch error: %v\n", err)
		}
		ui.RenderCompanies(vm)
		return
	case "stats":
		stats, err := app.Stats(ctx)
		if err != nil {
			log.Fatalf("Error fetching stats: %v", err)
		}
		ui.RenderStats(stats)
		return
	case "saved":
		searches, err := app.SavedSearches(ctx)
		if err != nil {
			log.Fatalf("Error fetching saved searches: %v", err)
		}
		ui.RenderSavedSearches(searches)
		return
	case "favorites":
		favs, err := app.Favorites(ctx)
		if err != nil {
			log.Fatalf("Error fetching favorites: %v", err)
		}
		vm := view.CompanyList(favs)
		ui.RenderCompanies(vm)
		return
	case "feedback":
		fp, pagination, err := app.AdminFeedbacks(ctx, *feedbackPage)
		if err != nil {
			log.Fatalf("Error fetching feedback: %v", err)
		}
		ui.RenderFeedbackPage(fp)
		ui.RenderPagination(pagination)
		return
	default:
		log.Fatalf("Unknown view %q. Must be one of: companies, stats, saved, favorites, feedback", *viewName)
	}

	if *companyJobs != "" {
		jobs, err := app.CompanyJobs(ctx, *companyJobs)
		if err != nil {
			log.Fatalf("Error fetching company jobs: %v", err)
		}
		ui.RenderCompanyJobs(*companyJobs, view.JobList(jobs, *query, time.Now()))
		return
	}

	if *jobID != "" {
		job, err := app.FindJob(ctx, *jobID)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		ui.RenderJobDetail(view.NewJobDetail(job, app.Filters().Query, time.Now()))
		return
	}

	// The default view: the paginated job listing.
	stop := ui.Spinner("Fetching jobs...")
	refresh := app.FetchPage(ctx, *page)
	stop()
	renderRefresh(refresh)

	if *interactive {
		browse(ctx, app, cfg.API.BaseURL)
	}
}

// renderRefresh prints one fetch result: the grid, the counter, the
// pagination bar and the shareable URL.
func renderRefresh(r controller.Refresh) {
	if r.Stale {
		return
	}
	if r.ScrollTop {
		ui.ClearScreen()
	}
	ui.RenderJobList(r.List)
	if r.List.Err == "" && !r.List.Empty {
		fmt.Printf("%s opportunities found\n", r.ResultCount)
	}
	ui.RenderPagination(r.Pagination)
}

// browse runs the interactive pager loop. Fetch-issuing commands go through
// the debouncer, so a burst of page keys or query edits collapses into one
// request once input goes quiet; results render from their own goroutine and
// the stale-response guard in the controller covers whatever still races
// through.
func browse(ctx context.Context, app *controller.App, baseURL string) {
	debouncer := controller.NewDebouncer(controller.DebounceDelay)
	defer debouncer.Stop()

	results := make(chan controller.Refresh, 4)
	go func() {
		for r := range results {
			fmt.Println()
			renderRefresh(r)
			fmt.Print("> ")
		}
	}()

	fetch := func(page int) {
		debouncer.Trigger(func() {
			results <- app.FetchPage(ctx, page)
		})
	}
	searchCompanies := func(q string) {
		debouncer.Trigger(func() {
			vm, err := app.Companies(ctx, q)
			if err != nil {
				ui.Errorf("%v", err)
			}
			fmt.Println()
			ui.RenderCompanies(vm)
			fmt.Print("> ")
		})
	}

	fmt.Println("\nCommands: n(ext), p(rev), <page number>, / <query>, c <company search>, j <job id>, u(rl), q(uit)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "q" || input == "quit":
			return
		case input == "n":
			fetch(app.Page() + 1)
		case input == "p":
			fetch(app.Page() - 1)
		case input == "u":
			ui.ShareURL(baseURL, app.ShareQuery())
		case strings.HasPrefix(input, "/"):
			q := strings.TrimSpace(strings.TrimPrefix(input, "/"))
			app.UpdateFilters(func(s *filter.State) { s.Query = q })
			fetch(1)
		case strings.HasPrefix(input, "c "):
			searchCompanies(strings.TrimSpace(strings.TrimPrefix(input, "c ")))
		case strings.HasPrefix(input, "j "):
			id := strings.TrimSpace(strings.TrimPrefix(input, "j "))
			job, err := app.FindJob(ctx, id)
			if err != nil {
				ui.Errorf("%v", err)
				continue
			}
			ui.RenderJobDetail(view.NewJobDetail(job, app.Filters().Query, time.Now()))
		case input == "":
		default:
			target, err := view.ClampJump(input, app.TotalPages())
			if err != nil {
				ui.Errorf("%v", err)
				continue
			}
			fetch(target)
		}
	}
}

// runSavedSearch resolves a saved search id and loads its criteria.
func runSavedSearch(ctx context.Context, app *controller.App, id string) error {
	searches, err := app.SavedSearches(ctx)
	if err != nil {
		return err
	}
	for _, s := range searches {
		if s.ID == id || s.Name == id {
			app.LoadSavedSearch(s.Criteria)
			ui.Successf("Loaded saved search %q", s.Name)
			return nil
		}
	}
	return fmt.Errorf("no saved search with id or name %q", id)
}

// runJobExport walks every page of the current search into a file. The
// extension picks the format: .json gets a JSON array, anything else CSV.
func runJobExport(ctx context.Context, app *controller.App, path string, pageLimit int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	write := export.Jobs
	if strings.EqualFold(filepath.Ext(path), ".json") {
		write = export.JobsJSON
	}
	n, err := write(f, func(page int) (models.JobPage, error) {
		return app.RawPage(ctx, page)
	}, pageLimit, true)
	if err != nil {
		return err
	}
	ui.Successf("Exported %d jobs to %s", n, path)
	return nil
}

// runFeedbackExport walks every admin feedback page into a CSV file.
func runFeedbackExport(ctx context.Context, app *controller.App, path string) error {
	var all []models.Feedback
	for page := 1; ; page++ {
		fp, _, err := app.AdminFeedbacks(ctx, page)
		if err != nil {
			return err
		}
		all = append(all, fp.Feedbacks...)
		if len(fp.Feedbacks) == 0 || len(all) >= fp.Total {
			break
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.Feedbacks(f, all); err != nil {
		return err
	}
	ui.Successf("Exported %d feedback entries to %s", len(all), path)
	return nil
}

// newLogger builds the structured logger. Debug mode switches to pretty
// console output at debug level; otherwise output follows the configured
// level as JSON on stderr.
func newLogger(level string, debug bool) zerolog.Logger {
	if debug {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// promptPassword reads a password with masked echo.
func promptPassword(prompt string) string {
	pw, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show(strings.TrimSuffix(prompt, ": "))
	if err != nil {
		// Not a terminal (piped input); fall back to a plain line read.
		fmt.Print(prompt)
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			return scanner.Text()
		}
		return ""
	}
	return pw
}

// splitTags splits a comma-separated flag value into trimmed tags.
func splitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
