package service

import (
	"context"

	"cert-portfolio/internal/portfolio"
	"cert-portfolio/internal/repository"
)

// SearchService runs free-text search across every user and certificate.
type SearchService interface {
	Search(ctx context.Context, query string, scope portfolio.Scope, limit int) ([]portfolio.SearchResult, error)
}

type searchService struct {
	reader datasetReader
}

func NewSearchService(dataset repository.DatasetProvider) SearchService {
	return &searchService{reader: newDatasetReader(dataset, nil)}
}

func (s *searchService) Search(ctx context.Context, query string, scope portfolio.Scope, limit int) ([]portfolio.SearchResult, error) {
	ds, err := s.reader.load(ctx)
	if err != nil {
		return nil, err
	}
	return portfolio.Search(ds.Users(), query, scope, limit)
}
