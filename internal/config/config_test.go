package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = "data/ledger.db"
	cfg.Export.Dir = "exports"
	cfg.Ledger.DuplicatePolicy = PolicyReuse

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "debts.db", cfg.Database.Path)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, PolicyReject, cfg.Ledger.DuplicatePolicy)
	assert.False(t, cfg.ReuseExisting())
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault_Missing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("export:\n  dir: out\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Export.Dir)
	assert.Equal(t, "debts.db", cfg.Database.Path)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("database: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "path: debts.db")
	assert.Contains(t, contents, "level: info")
	assert.Contains(t, contents, "duplicate_policy: reject")
}

func TestApplyEnv(t *testing.T) {
	testChdir(t, t.TempDir()) // no stray .env
	t.Setenv(EnvDBPath, "/tmp/other.db")
	t.Setenv(EnvExportDir, "")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDuplicatePolicy, " Reuse ")

	cfg := Default()
	ApplyEnv(cfg)

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, ".", cfg.Export.Dir, "empty variables are ignored")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.ReuseExisting())
}

func TestApplyEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv(EnvExportDir, "")
	require.NoError(t, os.Unsetenv(EnvExportDir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvExportDir+"=from-dotenv\n"), 0o644))

	cfg := Default()
	ApplyEnv(cfg)
	assert.Equal(t, "from-dotenv", cfg.Export.Dir)
	require.NoError(t, os.Unsetenv(EnvExportDir))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty db path", func(c *Config) { c.Database.Path = " " }, "database.path"},
		{"empty export dir", func(c *Config) { c.Export.Dir = "" }, "export.dir"},
		{"unknown policy", func(c *Config) { c.Ledger.DuplicatePolicy = "merge" }, "duplicate_policy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
