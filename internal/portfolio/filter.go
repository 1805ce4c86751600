package portfolio

import "strings"

// Filter is a conjunction of optional criteria. Empty strings and a nil
// IncludeExpired impose no constraint.
type Filter struct {
	Platform       string `json:"platform,omitempty"`
	Category       string `json:"category,omitempty"`
	Search         string `json:"search,omitempty"`
	IncludeExpired *bool  `json:"includeExpired,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.Platform == "" && f.Category == "" && f.Search == "" && f.IncludeExpired == nil
}

// FilterCertificates returns the views matching every supplied criterion,
// in their original relative order.
func FilterCertificates(views []View, f Filter) []View {
	search := strings.ToLower(f.Search)
	out := make([]View, 0, len(views))
	for _, v := range views {
		if f.Platform != "" && !strings.EqualFold(v.Platform, f.Platform) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(v.Category, f.Category) {
			continue
		}
		if f.IncludeExpired != nil && !*f.IncludeExpired && v.IsExpired {
			continue
		}
		if search != "" && !matchesCertificate(v, search) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// matchesCertificate reports whether the lowercase needle occurs in any
// searchable field of v.
func matchesCertificate(v View, needle string) bool {
	for _, field := range []string{v.CourseName, v.Institution, v.Platform, v.Description, v.Category} {
		if containsFold(field, needle) {
			return true
		}
	}
	return skillMatches(v.Skills, needle)
}

func skillMatches(skills []string, needle string) bool {
	for _, s := range skills {
		if containsFold(s, needle) {
			return true
		}
	}
	return false
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
