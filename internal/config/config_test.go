package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "public", cfg.Server.StaticDir)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "*", cfg.CORS.AllowOrigin)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, SourceFile, cfg.Dataset.Source)
	assert.Equal(t, "data/certificates.json", cfg.Dataset.Path)
	assert.False(t, cfg.Dataset.Watch)
	assert.Equal(t, "certificates.json", cfg.Storage.Key)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CERTFOLIO_SERVER_ADDR", ":9000")
	t.Setenv("CERTFOLIO_DATASET_WATCH", "true")
	t.Setenv("CERTFOLIO_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.True(t, cfg.Dataset.Watch)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"# comment\nCERTFOLIO_DATASET_PATH=\"/srv/data.json\"\nexport CERTFOLIO_SERVER_ADDR=:7000\nbroken line\n",
	), 0o644))
	t.Setenv("CERTFOLIO_SERVER_ADDR", ":9000")
	// unset after the test so later tests do not inherit the .env value
	t.Setenv("CERTFOLIO_DATASET_PATH", "")
	os.Unsetenv("CERTFOLIO_DATASET_PATH")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/data.json", cfg.Dataset.Path)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Dataset.Source = SourceFile
		c.Dataset.Path = "data.json"
		c.Log.Format = "text"
		return c
	}

	require.NoError(t, valid().Validate())

	c := valid()
	c.Dataset.Source = "ftp"
	assert.Error(t, c.Validate())

	c = valid()
	c.Dataset.Source = SourceS3
	assert.Error(t, c.Validate(), "bucket required")
	c.Storage.Bucket = "certs"
	assert.NoError(t, c.Validate())
	c.Dataset.Watch = true
	assert.Error(t, c.Validate())

	c = valid()
	c.Log.Format = "xml"
	assert.Error(t, c.Validate())
}
