package portfolio

import (
	"math"

	"cert-portfolio/internal/domain"
)

// MonthKeyLayout formats a completion date into its histogram bucket, YYYY-MM.
const MonthKeyLayout = "2006-01"

// Statistics aggregates a user's whole certificate collection.
type Statistics struct {
	TotalCertificates int            `json:"totalCertificates"`
	TotalHours        float64        `json:"totalHours"`
	TotalCredits      float64        `json:"totalCredits"`
	Platforms         []string       `json:"platforms"`
	Categories        []string       `json:"categories"`
	Verified          int            `json:"verified"`
	Pending           int            `json:"pending"`
	Expired           int            `json:"expired"`
	AverageGrade      *float64       `json:"averageGrade"`
	Recent            int            `json:"recentCertificates"`
	ExpiringSoon      int            `json:"expiringSoon"`
	UniqueSkills      int            `json:"uniqueSkills"`
	ByMonth           map[string]int `json:"certificatesByMonth"`
}

// ComputeStatistics aggregates views in a single pass. Platforms and
// categories are listed in first-seen order.
func ComputeStatistics(views []View) Statistics {
	stats := Statistics{
		TotalCertificates: len(views),
		Platforms:         []string{},
		Categories:        []string{},
		ByMonth:           make(map[string]int),
	}

	platforms := newOrderedSet()
	categories := newOrderedSet()
	skills := make(map[string]struct{})
	var gradeSum float64
	var gradeCount int

	for _, v := range views {
		stats.TotalHours += v.Hours
		if v.CreditsEarned != nil {
			stats.TotalCredits += *v.CreditsEarned
		}
		platforms.add(v.Platform)
		categories.add(v.Category)

		switch v.VerificationStatus {
		case domain.VerificationVerified:
			stats.Verified++
		case domain.VerificationPending:
			stats.Pending++
		}
		if v.IsExpired {
			stats.Expired++
		}
		if g, ok := v.Grade.Value(); ok {
			gradeSum += g
			gradeCount++
		}
		if v.IsRecent {
			stats.Recent++
		}
		if v.DaysUntilExpiry != nil && *v.DaysUntilExpiry > 0 && *v.DaysUntilExpiry <= ExpiringSoonDays {
			stats.ExpiringSoon++
		}
		for _, s := range v.Skills {
			skills[s] = struct{}{}
		}
		stats.ByMonth[v.completed.Format(MonthKeyLayout)]++
	}

	stats.Platforms = platforms.values
	stats.Categories = categories.values
	stats.UniqueSkills = len(skills)
	stats.AverageGrade = mean(gradeSum, gradeCount, 2)
	return stats
}

// mean returns sum/count rounded to places decimals, or nil for an empty set.
func mean(sum float64, count, places int) *float64 {
	if count == 0 {
		return nil
	}
	v := round(sum/float64(count), places)
	return &v
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), values: []string{}}
}

func (s *orderedSet) add(v string) bool {
	if v == "" {
		return false
	}
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}
