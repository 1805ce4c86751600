package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cert-portfolio/internal/domain"
)

var refNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) string {
	return refNow.AddDate(0, 0, -n).Format("2006-01-02")
}

func daysAhead(n int) string {
	return refNow.AddDate(0, 0, n).Format("2006-01-02")
}

type certOption func(*domain.Certificate)

func withPlatform(p string) certOption { return func(c *domain.Certificate) { c.Platform = p } }
func withCategory(cat string) certOption { return func(c *domain.Certificate) { c.Category = cat } }
func withName(n string) certOption { return func(c *domain.Certificate) { c.CourseName = n } }
func withHours(h float64) certOption { return func(c *domain.Certificate) { c.Hours = h } }
func withGrade(g *domain.Grade) certOption {
	return func(c *domain.Certificate) { c.Grade = g }
}
func withCompleted(d string) certOption { return func(c *domain.Certificate) { c.CompletionDate = d } }
func withExpiry(d string) certOption { return func(c *domain.Certificate) { c.ExpiryDate = d } }
func withSkills(s ...string) certOption { return func(c *domain.Certificate) { c.Skills = s } }
func withStatus(s domain.VerificationStatus) certOption {
	return func(c *domain.Certificate) { c.VerificationStatus = s }
}
func withCredits(v float64) certOption { return func(c *domain.Certificate) { c.CreditsEarned = &v } }

func newCert(id string, opts ...certOption) domain.Certificate {
	c := domain.Certificate{
		ID:                 id,
		UserID:             "jane",
		CourseName:         "Course " + id,
		Institution:        "Institute",
		Platform:           "Coursera",
		Category:           "Programming",
		CompletionDate:     daysAgo(100),
		Hours:              10,
		VerificationStatus: domain.VerificationVerified,
		Skills:             []string{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func mustViews(t *testing.T, certs ...domain.Certificate) []View {
	t.Helper()
	views, err := DeriveViews(certs, refNow)
	require.NoError(t, err)
	return views
}

func ids(views []View) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}
