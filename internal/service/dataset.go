package service

import (
	"context"
	"fmt"
	"time"

	"cert-portfolio/internal/domain"
	"cert-portfolio/internal/portfolio"
	"cert-portfolio/internal/repository"
)

// Clock supplies the reference time for a request.
type Clock func() time.Time

// datasetReader resolves users and their derived certificate views from a
// freshly loaded dataset snapshot.
type datasetReader struct {
	dataset repository.DatasetProvider
	now     Clock
}

func newDatasetReader(dataset repository.DatasetProvider, clock Clock) datasetReader {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return datasetReader{dataset: dataset, now: clock}
}

func (r datasetReader) load(ctx context.Context) (*domain.Dataset, error) {
	ds, err := r.dataset.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}

func (r datasetReader) user(ctx context.Context, userID string) (*domain.User, error) {
	ds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return ds.User(userID)
}

// userViews returns the user, the derived views of all their certificates in
// stored order, and the reference time they were derived at.
func (r datasetReader) userViews(ctx context.Context, userID string) (*domain.User, []portfolio.View, time.Time, error) {
	user, err := r.user(ctx, userID)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	now := r.now()
	views, err := portfolio.DeriveViews(user.Certificates, now)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("user %q: %w", user.ID, err)
	}
	return user, views, now, nil
}
