// Package filter holds the client's active search criteria and its two
// serializations: the shareable query string and the backend request form.
package filter

import "strings"

// State is the single source of truth for all active filter criteria.
// Locations, Keywords and Companies keep insertion order and contain no
// duplicates. The zero value is an empty filter.
type State struct {
	Query         string
	JobType       string
	RemoteOnly    bool
	Category      string
	Locations     []string
	Keywords      []string
	RecencyDays   string
	Company       string
	Companies     []string
	FavoritesOnly bool
}

// Set assigns a scalar field by its wire name. Values are passed through
// unvalidated; the backend treats unrecognized filter values as no-match.
// Unknown names are ignored.
func (s *State) Set(name, value string) {
	switch name {
	case "q":
		s.Query = value
	case "job_type":
		s.JobType = value
	case "remote_only":
		s.RemoteOnly = value == "true"
	case "category":
		s.Category = value
	case "days":
		s.RecencyDays = value
	case "company":
		s.Company = value
	}
}

// AddLocation appends a location tag. Adding is idempotent: an exact
// duplicate is a no-op.
func (s *State) AddLocation(loc string) {
	s.Locations = appendUnique(s.Locations, loc)
}

// RemoveLocation drops a location tag, matching case-insensitively.
func (s *State) RemoveLocation(loc string) {
	kept := s.Locations[:0]
	for _, l := range s.Locations {
		if !strings.EqualFold(l, loc) {
			kept = append(kept, l)
		}
	}
	s.Locations = kept
}

// AddKeyword appends a keyword tag. Adding is idempotent.
func (s *State) AddKeyword(kw string) {
	s.Keywords = appendUnique(s.Keywords, kw)
}

// RemoveKeyword drops a keyword tag. Unlike locations, keywords are matched
// case-sensitively.
func (s *State) RemoveKeyword(kw string) {
	kept := s.Keywords[:0]
	for _, k := range s.Keywords {
		if k != kw {
			kept = append(kept, k)
		}
	}
	s.Keywords = kept
}

// AddCompany appends a company to the companies list filter.
func (s *State) AddCompany(name string) {
	s.Companies = appendUnique(s.Companies, name)
}

// Reset clears every field back to its empty default.
func (s *State) Reset() {
	*s = State{}
}

// IsZero reports whether no filter criteria are active.
func (s *State) IsZero() bool {
	return s.Query == "" && s.JobType == "" && !s.RemoteOnly &&
		s.Category == "" && len(s.Locations) == 0 && len(s.Keywords) == 0 &&
		s.RecencyDays == "" && s.Company == "" && len(s.Companies) == 0 &&
		!s.FavoritesOnly
}

// SearchTerm combines the keyword tags with the live query into the single
// search term sent to the backend. The query is appended only when non-empty
// and not already present as a keyword.
func (s *State) SearchTerm() string {
	terms := make([]string, len(s.Keywords))
	copy(terms, s.Keywords)
	if s.Query != "" && !contains(terms, s.Query) {
		terms = append(terms, s.Query)
	}
	return strings.Join(terms, " ")
}

func appendUnique(set []string, v string) []string {
	if contains(set, v) {
		return set
	}
	return append(set, v)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
