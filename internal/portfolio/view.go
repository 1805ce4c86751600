// Package portfolio implements the query and aggregation engine over a user's
// certificates: derived time-relative fields, filtering, sorting, pagination,
// statistics, analytics and cross-entity search.
//
// Every function here is pure. The reference time is always passed in by the
// caller, and inputs are never modified.
package portfolio

import (
	"fmt"
	"math"
	"strings"
	"time"

	"cert-portfolio/internal/domain"
)

const (
	day = 24 * time.Hour

	// RecentWindowDays bounds the age of a certificate counted as recent.
	RecentWindowDays = 30
	// ExpiringSoonDays bounds the remaining validity counted as expiring soon.
	ExpiringSoonDays = 30
	// EmergingWindowDays bounds the age of certificates contributing emerging skills.
	EmergingWindowDays = 90
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a dataset date. Date-only values are taken as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date: %w", domain.ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: %w", s, domain.ErrInvalidDate)
}

// View is a certificate augmented with fields computed against a reference time.
type View struct {
	domain.Certificate
	IsExpired       bool `json:"isExpired"`
	DaysUntilExpiry *int `json:"daysUntilExpiry"`
	AgeInDays       int  `json:"ageInDays"`
	IsRecent        bool `json:"isRecent"`

	completed time.Time
	expires   *time.Time
}

// Completed returns the parsed completion date.
func (v View) Completed() time.Time { return v.completed }

// Expires returns the parsed expiry date, or nil when the certificate never expires.
func (v View) Expires() *time.Time { return v.expires }

// DeriveView computes the derived fields of cert as seen at now.
func DeriveView(cert domain.Certificate, now time.Time) (View, error) {
	completed, err := ParseDate(cert.CompletionDate)
	if err != nil {
		return View{}, fmt.Errorf("certificate %q completion date: %w", cert.ID, err)
	}

	view := View{
		Certificate: cert,
		completed:   completed,
		AgeInDays:   int(math.Floor(float64(now.Sub(completed)) / float64(day))),
	}
	view.IsRecent = view.AgeInDays <= RecentWindowDays

	if strings.TrimSpace(cert.ExpiryDate) != "" {
		expires, err := ParseDate(cert.ExpiryDate)
		if err != nil {
			return View{}, fmt.Errorf("certificate %q expiry date: %w", cert.ID, err)
		}
		days := int(math.Ceil(float64(expires.Sub(now)) / float64(day)))
		view.expires = &expires
		view.DaysUntilExpiry = &days
		view.IsExpired = expires.Before(now)
	}

	return view, nil
}

// DeriveViews derives every certificate in order. The first failure aborts.
func DeriveViews(certs []domain.Certificate, now time.Time) ([]View, error) {
	views := make([]View, 0, len(certs))
	for i := range certs {
		view, err := DeriveView(certs[i], now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
