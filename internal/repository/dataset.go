package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"cert-portfolio/internal/domain"
)

// DatasetProvider hands out read-only snapshots of the certificate dataset.
// Implementations must never mutate a dataset after returning it.
type DatasetProvider interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// DatasetImporter replaces the whole stored dataset.
type DatasetImporter interface {
	Import(ctx context.Context, dataset *domain.Dataset) error
}

// StaticProvider serves a dataset that was loaded ahead of time.
type StaticProvider struct {
	Dataset *domain.Dataset
}

func (p StaticProvider) Load(context.Context) (*domain.Dataset, error) {
	if p.Dataset == nil {
		return domain.NewDataset(nil), nil
	}
	return p.Dataset, nil
}

// DecodeDataset decodes a JSON object mapping user keys to users, keeping the
// order of keys as they appear in the document. A user without an id takes
// its key; certificates without an owner take the user's id.
func DecodeDataset(r io.Reader) (*domain.Dataset, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("dataset must be a JSON object keyed by user id")
	}

	var users []domain.User
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read user key: %w", err)
		}
		key, _ := tok.(string)

		var user domain.User
		if err := dec.Decode(&user); err != nil {
			return nil, fmt.Errorf("decode user %q: %w", key, err)
		}
		if strings.TrimSpace(user.ID) == "" {
			user.ID = key
		}
		for i := range user.Certificates {
			if user.Certificates[i].UserID == "" {
				user.Certificates[i].UserID = user.ID
			}
		}
		users = append(users, user)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read dataset end: %w", err)
	}

	return domain.NewDataset(users), nil
}
