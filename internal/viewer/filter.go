package viewer

import (
	"sort"
	"strings"
)

// Filter holds the table filter predicates. All predicates AND
// together; zero values match everything.
type Filter struct {
	Search        string `json:"search"`
	Manufacturer  string `json:"manufacturer"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	FavoritesOnly bool   `json:"favorites_only"`
}

// Match reports whether a merged record passes every predicate.
func (f Filter) Match(v *MergedShipView) bool {
	if term := strings.ToLower(f.Search); term != "" {
		if !strings.Contains(strings.ToLower(v.Name), term) &&
			!strings.Contains(strings.ToLower(v.Manufacturer.Name), term) &&
			!strings.Contains(strings.ToLower(v.Type), term) &&
			!strings.Contains(strings.ToLower(v.Focus), term) {
			return false
		}
	}
	if f.Manufacturer != "" && v.Manufacturer.Name != f.Manufacturer {
		return false
	}
	if f.Type != "" && v.Type != f.Type {
		return false
	}
	if f.Status != "" && v.ProductionStatus != f.Status {
		return false
	}
	if f.FavoritesOnly && !v.Favorite {
		return false
	}
	return true
}

// Apply returns the views passing the filter, preserving input order.
func (f Filter) Apply(views []MergedShipView) []MergedShipView {
	filtered := make([]MergedShipView, 0, len(views))
	for i := range views {
		if f.Match(&views[i]) {
			filtered = append(filtered, views[i])
		}
	}
	return filtered
}

// FilterOptions lists the distinct values offered by the exact-match
// dropdowns.
type FilterOptions struct {
	Manufacturers []string `json:"manufacturers"`
	Types         []string `json:"types"`
	Statuses      []string `json:"statuses"`
}

// Options collects sorted unique dropdown values from the views.
func Options(views []MergedShipView) FilterOptions {
	manufacturers := make(map[string]struct{})
	types := make(map[string]struct{})
	statuses := make(map[string]struct{})

	for i := range views {
		if v := views[i].Manufacturer.Name; v != "" {
			manufacturers[v] = struct{}{}
		}
		if v := views[i].Type; v != "" {
			types[v] = struct{}{}
		}
		if v := views[i].ProductionStatus; v != "" {
			statuses[v] = struct{}{}
		}
	}

	return FilterOptions{
		Manufacturers: sortedKeys(manufacturers),
		Types:         sortedKeys(types),
		Statuses:      sortedKeys(statuses),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
