package vaults

import (
	"sort"
	"strings"
)

// Filter returns the vaults whose category matches (case-insensitive, empty
// matches all) and whose name, display name or token symbol contains
// query. The input order is kept.
func Filter(in []Vault, query, category string) []Vault {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.TrimSpace(category)

	out := make([]Vault, 0, len(in))
	for _, v := range in {
		if category != "" && !strings.EqualFold(v.Category, category) {
			continue
		}
		if query != "" {
			haystack := strings.ToLower(v.Name + " " + v.DisplayName + " " + v.Token.Symbol)
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		out = append(out, v)
	}
	return out
}

// Categories lists the distinct non-empty categories, sorted.
func Categories(in []Vault) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, v := range in {
		c := strings.TrimSpace(v.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
