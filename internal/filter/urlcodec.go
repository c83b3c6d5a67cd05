package filter

import (
	"net/url"
	"strings"
)

// Extra carries the navigation side-band that rides along the shareable
// query string but is not filter state: the initial view switch, a deep link
// to a job, and one-shot notification flags appended by the backend after
// email verification or a password reset. The caller decides what to do with
// it; decoding itself stays side-effect free.
type Extra struct {
	View          string
	JobID         string
	Verified      bool
	PasswordReset bool
}

// Encode serializes the state into query parameters. A parameter is emitted
// only when its value is non-empty and non-default. Locations and keywords
// are comma-joined into a single parameter each; the companies list uses
// repeated parameters, matching what Decode accepts.
func Encode(s State) url.Values {
	params := url.Values{}
	if s.Query != "" {
		params.Set("q", s.Query)
	}
	if s.Category != "" {
		params.Set("category", s.Category)
	}
	if len(s.Locations) > 0 {
		params.Set("locations", strings.Join(s.Locations, ","))
	}
	if len(s.Keywords) > 0 {
		params.Set("keywords", strings.Join(s.Keywords, ","))
	}
	if s.RecencyDays != "" {
		params.Set("days", s.RecencyDays)
	}
	if s.JobType != "" {
		params.Set("job_type", s.JobType)
	}
	if s.RemoteOnly {
		params.Set("remote_only", "true")
	}
	if s.Company != "" {
		params.Set("company", s.Company)
	}
	for _, c := range s.Companies {
		params.Add("companies", c)
	}
	if s.FavoritesOnly {
		params.Set("favorites", "true")
	}
	return params
}

// EncodeQuery returns the encoded state as a raw query string.
func EncodeQuery(s State) string {
	return Encode(s).Encode()
}

// Decode parses a query string (with or without a leading "?") back into
// filter state. Multi-valued fields accept two legacy encodings, a single
// comma-joined parameter and repeated same-named parameters; both forms are
// merged in encounter order, comma form first, deduplicated by exact match.
func Decode(query string) (State, Extra, error) {
	query = strings.TrimPrefix(query, "?")
	params, err := url.ParseQuery(query)
	if err != nil {
		return State{}, Extra{}, err
	}

	var s State
	s.Query = params.Get("q")
	s.Category = params.Get("category")
	s.Locations = decodeTagSet(params["locations"])
	s.Keywords = decodeTagSet(params["keywords"])
	s.RecencyDays = params.Get("days")
	s.JobType = params.Get("job_type")
	s.RemoteOnly = params.Get("remote_only") == "true"
	s.Company = params.Get("company")
	s.Companies = append(s.Companies, params["companies"]...)
	s.FavoritesOnly = params.Get("favorites") == "true"

	extra := Extra{
		View:          params.Get("view"),
		JobID:         params.Get("jobId"),
		Verified:      params.Get("verified") == "true",
		PasswordReset: params.Get("reset") == "success",
	}
	return s, extra, nil
}

// decodeTagSet merges the comma-joined first value with any repeated values.
// Repeated values are only folded in when the parameter actually occurred
// more than once, mirroring how older shared links were parsed.
func decodeTagSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	var tags []string
	for _, part := range strings.Split(values[0], ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = appendUnique(tags, part)
		}
	}
	if len(values) > 1 {
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v != "" {
				tags = appendUnique(tags, v)
			}
		}
	}
	return tags
}
