package portfolio

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names a certificate ordering.
type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortOldest   SortKey = "oldest"
	SortPlatform SortKey = "platform"
	SortName     SortKey = "name"
	SortGrade    SortKey = "grade"
	SortHours    SortKey = "hours"
	SortCategory SortKey = "category"
	SortExpiry   SortKey = "expiry"
)

// SortCertificates returns a new slice ordered by key. The sort is stable and
// an unrecognized key leaves the order unchanged.
func SortCertificates(views []View, key SortKey) []View {
	out := slices.Clone(views)
	if out == nil {
		out = []View{}
	}

	var less func(a, b View) int
	switch key {
	case SortNewest:
		less = func(a, b View) int { return b.completed.Compare(a.completed) }
	case SortOldest:
		less = func(a, b View) int { return a.completed.Compare(b.completed) }
	case SortPlatform, SortName, SortCategory:
		// collators keep scratch buffers, so each sort gets its own
		col := collate.New(language.English)
		field := textField(key)
		less = func(a, b View) int { return col.CompareString(field(a), field(b)) }
	case SortGrade:
		less = func(a, b View) int { return cmp.Compare(gradeKey(b), gradeKey(a)) }
	case SortHours:
		less = func(a, b View) int { return cmp.Compare(b.Hours, a.Hours) }
	case SortExpiry:
		less = compareExpiry
	default:
		return out
	}

	slices.SortStableFunc(out, less)
	return out
}

func textField(key SortKey) func(View) string {
	switch key {
	case SortPlatform:
		return func(v View) string { return v.Platform }
	case SortCategory:
		return func(v View) string { return v.Category }
	default:
		return func(v View) string { return v.CourseName }
	}
}

// gradeKey treats an absent or non-numeric grade as zero.
func gradeKey(v View) float64 {
	g, ok := v.Grade.Value()
	if !ok {
		return 0
	}
	return g
}

// compareExpiry orders by expiry date ascending with undated views last.
func compareExpiry(a, b View) int {
	switch {
	case a.expires == nil && b.expires == nil:
		return 0
	case a.expires == nil:
		return 1
	case b.expires == nil:
		return -1
	}
	return a.expires.Compare(*b.expires)
}
