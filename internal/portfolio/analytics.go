package portfolio

import (
	"cmp"
	"math"
	"slices"
	"time"
)

const (
	topSkillsLimit      = 10
	emergingSkillsLimit = 5
	monthLength         = 30 * day

	milestoneHoursTarget     = 100
	milestonePlatformsTarget = 3
)

// Analytics holds insights derived from a user's whole certificate collection.
type Analytics struct {
	LearningVelocity     LearningVelocity           `json:"learningVelocity"`
	AverageHoursPerCert  *float64                   `json:"averageHoursPerCertificate"`
	TopSkills            []SkillCount               `json:"topSkills"`
	EmergingSkills       []string                   `json:"emergingSkills"`
	PlatformDistribution []PlatformShare            `json:"platformDistribution"`
	MonthlyProgress      map[string]MonthlyProgress `json:"monthlyProgress"`
	Badges               []Badge                    `json:"achievementBadges"`
	Milestones           []Milestone                `json:"milestones"`
}

// LearningVelocity is the average monthly pace since the user joined.
type LearningVelocity struct {
	MonthsActive         int     `json:"monthsActive"`
	CertificatesPerMonth float64 `json:"certificatesPerMonth"`
	HoursPerMonth        float64 `json:"hoursPerMonth"`
}

// SkillCount is how many certificates list a skill.
type SkillCount struct {
	Skill      string  `json:"skill"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PlatformShare is one platform's slice of a collection.
type PlatformShare struct {
	Platform   string  `json:"platform"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Hours      float64 `json:"hours"`
}

// MonthlyProgress totals the certificates completed in one month.
type MonthlyProgress struct {
	Count int     `json:"count"`
	Hours float64 `json:"hours"`
}

// Badge is an achievement earned by the collection.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Milestone tracks progress toward a certificate or hours target.
type Milestone struct {
	Name     string   `json:"name"`
	Achieved bool     `json:"achieved"`
	Date     *string  `json:"date,omitempty"`
	Progress *float64 `json:"progress,omitempty"`
	Target   *float64 `json:"target,omitempty"`
}

// badgeRules are evaluated independently; any subset may be awarded.
var badgeRules = []struct {
	badge Badge
	earn  func(certs int, hours float64, platforms int) bool
}{
	{
		badge: Badge{ID: "learner", Name: "Learner", Description: "Earned 5 or more certificates"},
		earn:  func(certs int, _ float64, _ int) bool { return certs >= 5 },
	},
	{
		badge: Badge{ID: "dedicated-student", Name: "Dedicated Student", Description: "Earned 10 or more certificates"},
		earn:  func(certs int, _ float64, _ int) bool { return certs >= 10 },
	},
	{
		badge: Badge{ID: "century-club", Name: "Century Club", Description: "Completed 100 or more learning hours"},
		earn:  func(_ int, hours float64, _ int) bool { return hours >= 100 },
	},
	{
		badge: Badge{ID: "platform-explorer", Name: "Platform Explorer", Description: "Learned on 3 or more platforms"},
		earn:  func(_ int, _ float64, platforms int) bool { return platforms >= 3 },
	},
}

// ComputeAnalytics derives learning insights for views of a user who joined
// at joinDate, as seen at now.
func ComputeAnalytics(views []View, joinDate, now time.Time) Analytics {
	var totalHours float64
	skillCounts := make(map[string]int)
	skillOrder := newOrderedSet()
	emerging := newOrderedSet()
	monthly := make(map[string]MonthlyProgress)
	var earliest *View

	for i := range views {
		v := &views[i]
		totalHours += v.Hours

		for _, s := range v.Skills {
			skillCounts[s]++
			skillOrder.add(s)
			if v.AgeInDays <= EmergingWindowDays {
				emerging.add(s)
			}
		}

		month := v.completed.Format(MonthKeyLayout)
		m := monthly[month]
		m.Count++
		m.Hours += v.Hours
		monthly[month] = m

		if earliest == nil || v.completed.Before(earliest.completed) {
			earliest = v
		}
	}

	total := len(views)
	months := monthsBetween(joinDate, now)

	topSkills := make([]SkillCount, 0, len(skillOrder.values))
	for _, s := range skillOrder.values {
		topSkills = append(topSkills, SkillCount{
			Skill:      s,
			Count:      skillCounts[s],
			Percentage: percentage(skillCounts[s], total),
		})
	}
	slices.SortStableFunc(topSkills, func(a, b SkillCount) int { return cmp.Compare(b.Count, a.Count) })
	if len(topSkills) > topSkillsLimit {
		topSkills = topSkills[:topSkillsLimit]
	}

	emergingSkills := emerging.values
	if len(emergingSkills) > emergingSkillsLimit {
		emergingSkills = emergingSkills[:emergingSkillsLimit]
	}

	platforms := PlatformDistribution(views)

	badges := []Badge{}
	for _, rule := range badgeRules {
		if rule.earn(total, totalHours, len(platforms)) {
			badges = append(badges, rule.badge)
		}
	}

	return Analytics{
		LearningVelocity: LearningVelocity{
			MonthsActive:         months,
			CertificatesPerMonth: round(float64(total)/float64(months), 2),
			HoursPerMonth:        round(totalHours/float64(months), 2),
		},
		AverageHoursPerCert:  mean(totalHours, total, 1),
		TopSkills:            topSkills,
		EmergingSkills:       emergingSkills,
		PlatformDistribution: platforms,
		MonthlyProgress:      monthly,
		Badges:               badges,
		Milestones:           milestones(earliest, totalHours, len(platforms)),
	}
}

// PlatformDistribution counts certificates and hours per platform, ordered by
// descending count with ties in first-seen order.
func PlatformDistribution(views []View) []PlatformShare {
	index := make(map[string]int)
	platforms := []PlatformShare{}
	for _, v := range views {
		if v.Platform == "" {
			continue
		}
		idx, ok := index[v.Platform]
		if !ok {
			idx = len(platforms)
			index[v.Platform] = idx
			platforms = append(platforms, PlatformShare{Platform: v.Platform})
		}
		platforms[idx].Count++
		platforms[idx].Hours += v.Hours
	}

	for i := range platforms {
		platforms[i].Percentage = percentage(platforms[i].Count, len(views))
	}
	slices.SortStableFunc(platforms, func(a, b PlatformShare) int { return cmp.Compare(b.Count, a.Count) })
	return platforms
}

func milestones(earliest *View, hours float64, platforms int) []Milestone {
	first := Milestone{Name: "First Certificate", Achieved: earliest != nil}
	if earliest != nil {
		date := earliest.completed.Format("2006-01-02")
		first.Date = &date
	}

	hoursProgress := math.Min(milestoneHoursTarget, hours)
	platformProgress := float64(platforms)

	return []Milestone{
		first,
		{
			Name:     "100 Learning Hours",
			Achieved: hours >= milestoneHoursTarget,
			Progress: &hoursProgress,
			Target:   ptr(float64(milestoneHoursTarget)),
		},
		{
			Name:     "Multi-Platform Learner",
			Achieved: platforms >= milestonePlatformsTarget,
			Progress: &platformProgress,
			Target:   ptr(float64(milestonePlatformsTarget)),
		},
	}
}

// monthsBetween counts started 30-day months from join to now, at least one.
func monthsBetween(join, now time.Time) int {
	months := int(math.Ceil(float64(now.Sub(join)) / float64(monthLength)))
	return max(1, months)
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round(float64(part)*100/float64(whole), 1)
}

func ptr[T any](v T) *T { return &v }
