package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cert-portfolio/internal/domain"
	"cert-portfolio/internal/repository"
)

func newRepo(t *testing.T) *DatasetRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewDatasetRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func fixture(t *testing.T) *domain.Dataset {
	t.Helper()
	f, err := os.Open("../testdata/dataset.json")
	require.NoError(t, err)
	defer f.Close()
	ds, err := repository.DecodeDataset(f)
	require.NoError(t, err)
	return ds
}

func TestDatasetRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	want := fixture(t)

	require.NoError(t, repo.Import(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want.Len(), got.Len())

	for i, u := range want.Users() {
		g := got.Users()[i]
		assert.Equal(t, u.ID, g.ID)
		assert.Equal(t, u.Name, g.Name)
		assert.Equal(t, u.SocialLinks, g.SocialLinks)
		require.Len(t, g.Certificates, len(u.Certificates))
		for j := range u.Certificates {
			assert.Equal(t, u.Certificates[j], g.Certificates[j])
		}
	}
}

func TestDatasetRepository_ImportReplaces(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Import(ctx, fixture(t)))
	require.NoError(t, repo.Import(ctx, domain.NewDataset([]domain.User{{ID: "solo", Name: "Solo"}})))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	solo, err := got.User("SOLO")
	require.NoError(t, err)
	assert.Empty(t, solo.Certificates)
}

func TestDatasetRepository_EmptyDatabase(t *testing.T) {
	got, err := newRepo(t).Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

// generation builds a dataset whose every record is tagged with gen, so a
// load mixing two imports is detectable.
func generation(gen int) *domain.Dataset {
	tag := fmt.Sprintf("gen%d", gen)
	var users []domain.User
	for _, id := range []string{"ann", "ben"} {
		user := domain.User{ID: id, Name: id, Bio: tag, TotalCertificates: gen}
		for j := range gen {
			user.Certificates = append(user.Certificates, domain.Certificate{
				ID:             fmt.Sprintf("%s-%s-%d", tag, id, j),
				UserID:         id,
				CompletionDate: "2024-01-01",
			})
		}
		users = append(users, user)
	}
	return domain.NewDataset(users)
}

func TestDatasetRepository_LoadSeesWholeImports(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.Import(ctx, generation(1)))

	var wg sync.WaitGroup
	importErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 60 {
			if err := repo.Import(ctx, generation(1+i%3)); err != nil {
				importErr <- err
				return
			}
		}
	}()

	for range 60 {
		ds, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, ds.Len())

		tag := ds.Users()[0].Bio
		for _, u := range ds.Users() {
			assert.Equal(t, tag, u.Bio)
			assert.Len(t, u.Certificates, u.TotalCertificates)
			for _, c := range u.Certificates {
				assert.True(t, strings.HasPrefix(c.ID, tag+"-"), "certificate %s loaded with %s", c.ID, tag)
			}
		}
	}

	wg.Wait()
	close(importErr)
	require.NoError(t, <-importErr)
}
