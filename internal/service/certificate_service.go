package service

import (
	"context"
	"fmt"
	"time"

	"cert-portfolio/internal/portfolio"
	"cert-portfolio/internal/repository"
)

// CertificateQuery selects, orders and pages a user's certificates.
type CertificateQuery struct {
	Filter portfolio.Filter
	Sort   portfolio.SortKey
	Offset int
	Limit  int
}

// CertificatePage is one page of a user's certificates. Statistics always
// cover the user's whole collection regardless of the filter.
type CertificatePage struct {
	UserID       string
	Certificates []portfolio.View
	Pagination   portfolio.PageMeta
	Filters      portfolio.Filter
	Sort         portfolio.SortKey
	Statistics   portfolio.Statistics
	GeneratedAt  time.Time
}

// CertificateService exposes the query engine over a user's certificates.
type CertificateService interface {
	ListCertificates(ctx context.Context, userID string, query CertificateQuery) (*CertificatePage, error)
	GetCertificate(ctx context.Context, userID, certificateID string) (*portfolio.View, error)
	Statistics(ctx context.Context, userID string) (*portfolio.Statistics, error)
	Analytics(ctx context.Context, userID string) (*portfolio.Analytics, error)
	Platforms(ctx context.Context, userID string) ([]portfolio.PlatformShare, error)
}

type certificateService struct {
	reader datasetReader
}

func NewCertificateService(dataset repository.DatasetProvider, clock Clock) CertificateService {
	return &certificateService{reader: newDatasetReader(dataset, clock)}
}

func (s *certificateService) ListCertificates(ctx context.Context, userID string, query CertificateQuery) (*CertificatePage, error) {
	user, views, now, err := s.reader.userViews(ctx, userID)
	if err != nil {
		return nil, err
	}

	if query.Sort == "" {
		query.Sort = portfolio.SortNewest
	}

	matched := portfolio.FilterCertificates(views, query.Filter)
	sorted := portfolio.SortCertificates(matched, query.Sort)
	page, meta := portfolio.Paginate(sorted, query.Offset, query.Limit)

	return &CertificatePage{
		UserID:       user.ID,
		Certificates: page,
		Pagination:   meta,
		Filters:      query.Filter,
		Sort:         query.Sort,
		Statistics:   portfolio.ComputeStatistics(views),
		GeneratedAt:  now,
	}, nil
}

func (s *certificateService) GetCertificate(ctx context.Context, userID, certificateID string) (*portfolio.View, error) {
	user, err := s.reader.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	cert, err := user.Certificate(certificateID)
	if err != nil {
		return nil, err
	}
	view, err := portfolio.DeriveView(*cert, s.reader.now())
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *certificateService) Statistics(ctx context.Context, userID string) (*portfolio.Statistics, error) {
	_, views, _, err := s.reader.userViews(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := portfolio.ComputeStatistics(views)
	return &stats, nil
}

func (s *certificateService) Analytics(ctx context.Context, userID string) (*portfolio.Analytics, error) {
	user, views, now, err := s.reader.userViews(ctx, userID)
	if err != nil {
		return nil, err
	}
	joined, err := portfolio.ParseDate(user.JoinDate)
	if err != nil {
		return nil, fmt.Errorf("user %q join date: %w", user.ID, err)
	}
	analytics := portfolio.ComputeAnalytics(views, joined, now)
	return &analytics, nil
}

func (s *certificateService) Platforms(ctx context.Context, userID string) ([]portfolio.PlatformShare, error) {
	_, views, _, err := s.reader.userViews(ctx, userID)
	if err != nil {
		return nil, err
	}
	return portfolio.PlatformDistribution(views), nil
}
