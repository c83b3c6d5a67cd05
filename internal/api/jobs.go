package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/benlang/jobdetector/internal/models"
)

// SearchJobs fetches one page of jobs for the given backend query
// parameters. The backend has shipped two response shapes for this endpoint,
// a {jobs, total} envelope and a bare array; both are accepted, and a bare
// array's length stands in for the total.
func (c *Client) SearchJobs(ctx context.Context, query url.Values) (models.JobPage, error) {
	data, err := c.get(ctx, "/api/jobs", query, false)
	if err != nil {
		return models.JobPage{}, err
	}

	root := gjson.ParseBytes(data)

	jobsJSON := root
	total := -1
	if root.IsObject() {
		jobsJSON = root.Get("jobs")
		if t := root.Get("total"); t.Exists() {
			total = int(t.Int())
		}
	}
	if !jobsJSON.IsArray() {
		return models.JobPage{}, fmt.Errorf("unexpected jobs response shape")
	}

	var jobs []models.Job
	if err := json.Unmarshal([]byte(jobsJSON.Raw), &jobs); err != nil {
		return models.JobPage{}, fmt.Errorf("decode jobs: %w", err)
	}
	if total < 0 {
		total = len(jobs)
	}
	return models.JobPage{Jobs: jobs, Total: total}, nil
}

// Companies fetches company profiles, optionally filtered by a free-text
// query.
func (c *Client) Companies(ctx context.Context, q string) ([]models.Company, error) {
	var query url.Values
	if q != "" {
		query = url.Values{"q": {q}}
	}
	data, err := c.get(ctx, "/api/companies", query, false)
	if err != nil {
		return nil, err
	}

	var companies []models.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}
	return companies, nil
}

// CompanyJobs fetches the open positions of a single company.
func (c *Client) CompanyJobs(ctx context.Context, name string) ([]models.Job, error) {
	data, err := c.get(ctx, "/api/companies/"+url.PathEscape(name)+"/jobs", nil, false)
	if err != nil {
		return nil, err
	}

	var jobs []models.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("decode company jobs: %w", err)
	}
	return jobs, nil
}

// Stats fetches the site-wide counters.
func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	data, err := c.get(ctx, "/api/stats", nil, false)
	if err != nil {
		return models.Stats{}, err
	}

	var stats models.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return models.Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}

// RecordVisit bumps the site visit counter and returns the new count.
func (c *Client) RecordVisit(ctx context.Context) (int64, error) {
	data, err := c.send(ctx, "POST", "/api/stats/visit", nil, false)
	if err != nil {
		return 0, err
	}

	var vc models.VisitCount
	if err := json.Unmarshal(data, &vc); err != nil {
		return 0, fmt.Errorf("decode visit count: %w", err)
	}
	return vc.Visits, nil
}
