package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestSearchJobsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jobs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"jobs": [{"_id": "1", "title": "Engineer", "company": "Acme"}], "total": 37}`))
	}))
	defer srv.Close()

	page, err := New(srv.URL).SearchJobs(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 37 {
		t.Errorf("expected total 37, got %d", page.Total)
	}
	if len(page.Jobs) != 1 || page.Jobs[0].Title != "Engineer" {
		t.Errorf("unexpected jobs: %+v", page.Jobs)
	}
}

func TestSearchJobsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id": "1", "title": "A"}, {"_id": "2", "title": "B"}]`))
	}))
	defer srv.Close()

	page, err := New(srv.URL).SearchJobs(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 {
		t.Errorf("bare array length should be the total, got %d", page.Total)
	}
}

func TestSearchJobsForwardsQuery(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"jobs": [], "total": 0}`))
	}))
	defer srv.Close()

	query := url.Values{}
	query.Set("q", "go engineer")
	query.Add("locations", "Berlin")
	query.Add("locations", "Remote")
	query.Set("skip", "50")
	query.Set("limit", "50")

	if _, err := New(srv.URL).SearchJobs(context.Background(), query); err != nil {
		t.Fatal(err)
	}

	if gotQuery.Get("q") != "go engineer" {
		t.Errorf("expected q, got %q", gotQuery.Get("q"))
	}
	if locs := gotQuery["locations"]; len(locs) != 2 {
		t.Errorf("expected repeated locations params, got %v", locs)
	}
	if gotQuery.Get("skip") != "50" || gotQuery.Get("limit") != "50" {
		t.Errorf("expected pagination params, got %v", gotQuery)
	}
}

func TestBearerTokenInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken(func() string { return "tok123" }))
	if _, err := c.Favorites(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestErrorDetailExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "a@example.com", "nope")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Detail != "Invalid credentials" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestMeUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Token expired"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithToken(func() string { return "stale" })).Me(context.Background())
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("expected 401 status error, got %v", err)
	}
}

func TestAdminFeedbacksPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("limit") != "10" {
			t.Errorf("unexpected query %v", r.URL.Query())
		}
		w.Write([]byte(`{"feedbacks": [{"_id": "f1", "content": "hi", "created_at": "2026-01-02T10:00:00Z"}], "total": 13}`))
	}))
	defer srv.Close()

	fp, err := New(srv.URL).AdminFeedbacks(context.Background(), 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if fp.Total != 13 || len(fp.Feedbacks) != 1 {
		t.Errorf("unexpected page: %+v", fp)
	}
}
