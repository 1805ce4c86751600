package portfolio

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"cert-portfolio/internal/domain"
)

// Scope restricts which record kinds a search visits.
type Scope string

const (
	ScopeAll          Scope = "all"
	ScopeUsers        Scope = "users"
	ScopeCertificates Scope = "certificates"
)

// ResultType tells which record a SearchResult carries.
type ResultType string

const (
	ResultUser        ResultType = "user"
	ResultCertificate ResultType = "certificate"
)

const (
	userMatchScore       = 0.9
	certificateBaseScore = 0.5
	courseNameMatchBonus = 0.3
	skillMatchBonus      = 0.2
	maxRelevanceScore    = 1.0
)

// SearchResult is one ranked match. Exactly one of User and Certificate is set.
type SearchResult struct {
	Type        ResultType        `json:"type"`
	Score       float64           `json:"relevanceScore"`
	User        *UserMatch        `json:"user,omitempty"`
	Certificate *CertificateMatch `json:"certificate,omitempty"`
}

// UserMatch is the public summary of a matching user.
type UserMatch struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Bio               string `json:"bio,omitempty"`
	Location          string `json:"location,omitempty"`
	ProfileImage      string `json:"profileImage,omitempty"`
	TotalCertificates int    `json:"totalCertificates"`
}

// CertificateMatch is a matching certificate with its owner's name.
type CertificateMatch struct {
	domain.Certificate
	UserName string `json:"userName"`
}

// Search ranks users and certificates matching query. Results are ordered by
// descending score, ties in discovery order, and truncated to limit when
// limit is positive.
func Search(users []domain.User, query string, scope Scope, limit int) ([]SearchResult, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, fmt.Errorf("search query is required: %w", domain.ErrInvalidQuery)
	}
	if scope == "" {
		scope = ScopeAll
	}
	if scope != ScopeAll && scope != ScopeUsers && scope != ScopeCertificates {
		return nil, fmt.Errorf("unknown search scope %q: %w", scope, domain.ErrInvalidQuery)
	}

	results := []SearchResult{}

	if scope != ScopeCertificates {
		for i := range users {
			u := &users[i]
			if !containsFold(u.Name, needle) && !containsFold(u.Email, needle) && !containsFold(u.Bio, needle) {
				continue
			}
			results = append(results, SearchResult{
				Type:  ResultUser,
				Score: userMatchScore,
				User: &UserMatch{
					ID:                u.ID,
					Name:              u.Name,
					Email:             u.Email,
					Bio:               u.Bio,
					Location:          u.Location,
					ProfileImage:      u.ProfileImage,
					TotalCertificates: len(u.Certificates),
				},
			})
		}
	}

	if scope != ScopeUsers {
		for i := range users {
			u := &users[i]
			for _, cert := range u.Certificates {
				if !matchesCertificate(View{Certificate: cert}, needle) {
					continue
				}
				results = append(results, SearchResult{
					Type:        ResultCertificate,
					Score:       certificateScore(cert, needle),
					Certificate: &CertificateMatch{Certificate: cert, UserName: u.Name},
				})
			}
		}
	}

	slices.SortStableFunc(results, func(a, b SearchResult) int { return cmp.Compare(b.Score, a.Score) })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func certificateScore(cert domain.Certificate, needle string) float64 {
	score := certificateBaseScore
	if containsFold(cert.CourseName, needle) {
		score += courseNameMatchBonus
	}
	if skillMatches(cert.Skills, needle) {
		score += skillMatchBonus
	}
	return round(min(score, maxRelevanceScore), 2)
}
