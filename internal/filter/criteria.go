package filter

import "fmt"

// Criteria snapshots the state as the wire-named map stored in a saved
// search.
func (s State) Criteria() map[string]any {
	return map[string]any{
		"q":              s.Query,
		"job_type":       s.JobType,
		"remote_only":    s.RemoteOnly,
		"category":       s.Category,
		"locations":      append([]string(nil), s.Locations...),
		"keywords":       append([]string(nil), s.Keywords...),
		"days":           s.RecencyDays,
		"company":        s.Company,
		"companies":      append([]string(nil), s.Companies...),
		"favorites_only": s.FavoritesOnly,
	}
}

// FromCriteria rebuilds filter state from a saved search's criteria map.
// Saved searches predating the multi-location migration carry a singular
// "location" string; it is folded into the locations set.
func FromCriteria(criteria map[string]any) State {
	var s State
	s.Query = stringValue(criteria["q"])
	s.JobType = stringValue(criteria["job_type"])
	s.RemoteOnly = boolValue(criteria["remote_only"])
	s.Category = stringValue(criteria["category"])
	s.RecencyDays = stringValue(criteria["days"])
	s.Company = stringValue(criteria["company"])

	for _, loc := range stringSlice(criteria["locations"]) {
		s.AddLocation(loc)
	}
	if legacy := stringValue(criteria["location"]); legacy != "" {
		s.AddLocation(legacy)
	}
	for _, kw := range stringSlice(criteria["keywords"]) {
		s.AddKeyword(kw)
	}
	for _, c := range stringSlice(criteria["companies"]) {
		s.AddCompany(c)
	}
	s.FavoritesOnly = boolValue(criteria["favorites_only"])
	return s
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// Numeric criteria values (e.g. days stored as a number).
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true"
	default:
		return false
	}
}

func stringSlice(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
