package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_LoadsFreshOnEveryCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": {"name": "A", "certificates": []}}`), 0o644))

	p := NewProvider(path)
	ds, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	require.NoError(t, os.WriteFile(path, []byte(`{"a": {"name": "A"}, "b": {"name": "B"}}`), 0o644))
	ds, err = p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestProvider_Errors(t *testing.T) {
	_, err := NewProvider(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewProvider("unused").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
