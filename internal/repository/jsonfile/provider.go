package jsonfile

import (
	"context"
	"fmt"
	"os"

	"cert-portfolio/internal/domain"
	"cert-portfolio/internal/repository"
)

// Provider reads the dataset file from disk on every Load.
type Provider struct {
	path string
}

func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

func (p *Provider) Path() string {
	return p.path
}

func (p *Provider) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	dataset, err := repository.DecodeDataset(file)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", p.path, err)
	}
	return dataset, nil
}

var _ repository.DatasetProvider = (*Provider)(nil)
