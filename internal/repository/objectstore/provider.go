package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"cert-portfolio/internal/domain"
	"cert-portfolio/internal/repository"
	"cert-portfolio/internal/storage"
)

// Provider loads the dataset document from object storage. Every Load checks
// the object's ETag and only downloads and decodes it again when it changed.
type Provider struct {
	store  storage.Service
	bucket string
	key    string
	logger *logrus.Logger

	mu      sync.Mutex
	etag    string
	dataset *domain.Dataset
}

func NewProvider(store storage.Service, bucket, key string, logger *logrus.Logger) *Provider {
	if logger == nil {
		logger = logrus.New()
	}
	return &Provider{
		store:  store,
		bucket: bucket,
		key:    key,
		logger: logger,
	}
}

func (p *Provider) Load(ctx context.Context) (*domain.Dataset, error) {
	info, err := p.store.Stat(ctx, p.bucket, p.key)
	if err != nil {
		return nil, fmt.Errorf("stat dataset object: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dataset != nil && info.ETag != "" && info.ETag == p.etag {
		return p.dataset, nil
	}

	body, err := p.store.Download(ctx, p.bucket, p.key)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset object: %w", err)
	}
	dataset, err := repository.DecodeDataset(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("dataset s3://%s/%s: %w", p.bucket, p.key, err)
	}

	p.logger.WithFields(logrus.Fields{
		"bucket": p.bucket,
		"key":    p.key,
		"etag":   info.ETag,
		"users":  dataset.Len(),
	}).Info("dataset object loaded")

	p.etag = info.ETag
	p.dataset = dataset
	return dataset, nil
}

var _ repository.DatasetProvider = (*Provider)(nil)
