package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
	assert.Empty(t, b.rest)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies that earlier configs take priority over
// later ones and that later configs only fill empty fields.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Blob: Blob{Bucket: "from-env"}},
		&StructuredConfig{Blob: Blob{Bucket: "from-flags", Backend: BlobBackendMinIO}},
		&StructuredConfig{Vault: Vault{Dir: "/from/json"}, Blob: Blob{Backend: BlobBackendSupabase}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Blob.Bucket)
	assert.Equal(t, BlobBackendMinIO, cfg.Blob.Backend)
	assert.Equal(t, "/from/json", cfg.Vault.Dir)
}

func TestBuild_RejectsUnknownBackend(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Blob: Blob{Backend: "ftp"}})

	_, err := b.build()
	require.ErrorIs(t, err, ErrInvalidBlobConfigs)
}

func TestWithFlags_KeepsRemainingArgs(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-bucket", "vaults", "list", "-u", "alice"})
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "vaults", b.configs[0].Blob.Bucket)
	assert.Equal(t, []string{"list", "-u", "alice"}, b.rest)
}

func TestWithFlags_CollectsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-a", "bad"})
	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithJSON_LoadsPathFromEarlierSource(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"blob": map[string]any{"bucket": "json-bucket"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b = b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-bucket", b.configs[1].Blob.Bucket)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: filepath.Join(t.TempDir(), "nope.json")})
	b = b.withJSON()
	require.Error(t, b.err)
	assert.Contains(t, b.err.Error(), "json config")
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b = b.withJSON()

	require.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestGetClientConfig(t *testing.T) {
	setEnvVars(t, map[string]string{
		"VAULT_DIR":              "/tmp/yapm",
		"DIRECTORY_DATABASE_URI": "postgres://localhost/yapm",
		"BLOB_SUPABASE_API_KEY":  "anon",
	})
	path := writeTempJSONConfig(t, map[string]any{
		"blob": map[string]any{"bucket": "from-json", "supabase": map[string]any{"url": "https://xyz.supabase.co/"}},
	})

	cfg, rest, err := GetClientConfig([]string{"-c", path, "-sync-interval", "1m", "login"})
	require.NoError(t, err)
	assert.Equal(t, []string{"login"}, rest)

	assert.Equal(t, "/tmp/yapm", cfg.Vault.Dir)
	assert.Equal(t, filepath.Join("/tmp/yapm", DefaultLocalDirectoryFile), cfg.Directory.LocalPath)
	assert.Equal(t, "postgres://localhost/yapm", cfg.Directory.RemoteDSN)
	assert.Equal(t, BlobBackendSupabase, cfg.Blob.Backend)
	assert.Equal(t, "from-json", cfg.Blob.Bucket)
	assert.Equal(t, "https://xyz.supabase.co/", cfg.Blob.SupabaseURL)
	assert.Equal(t, "anon", cfg.Blob.SupabaseAPIKey)
	assert.Equal(t, DefaultBlobRequestTimeout, cfg.Blob.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() *ClientConfig {
		return &ClientConfig{
			Vault:     ClientVault{Dir: "/tmp/yapm"},
			Directory: ClientDirectory{LocalPath: "/tmp/yapm/accounts.db", RemoteDSN: "postgres://localhost/yapm"},
			Blob: ClientBlob{
				Backend:        BlobBackendSupabase,
				Bucket:         "vaults",
				RequestTimeout: time.Second,
				SupabaseURL:    "https://xyz.supabase.co/",
				SupabaseAPIKey: "anon",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(cfg *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*ClientConfig) {}},
		{name: "no vault dir", mutate: func(c *ClientConfig) { c.Vault.Dir = "" }, wantErr: ErrInvalidVaultConfigs},
		{name: "no remote dsn", mutate: func(c *ClientConfig) { c.Directory.RemoteDSN = "" }, wantErr: ErrInvalidDirectoryConfigs},
		{name: "in-memory local", mutate: func(c *ClientConfig) { c.Directory.LocalPath = ":memory:" }, wantErr: ErrInvalidDirectoryConfigs},
		{name: "no bucket", mutate: func(c *ClientConfig) { c.Blob.Bucket = "" }, wantErr: ErrInvalidBlobConfigs},
		{name: "no supabase key", mutate: func(c *ClientConfig) { c.Blob.SupabaseAPIKey = "" }, wantErr: ErrInvalidBlobConfigs},
		{name: "minio without endpoint", mutate: func(c *ClientConfig) { c.Blob.Backend = BlobBackendMinIO }, wantErr: ErrInvalidBlobConfigs},
		{
			name: "minio complete",
			mutate: func(c *ClientConfig) {
				c.Blob.Backend = BlobBackendMinIO
				c.Blob.MinIOEndpoint, c.Blob.MinIOAccessKey, c.Blob.MinIOSecretKey = "localhost:9000", "a", "s"
			},
		},
		{name: "negative interval", mutate: func(c *ClientConfig) { c.Workers.SyncInterval = -time.Second }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetServerConfig(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_TOKEN_SIGN_KEY": "secret"})

	cfg, rest, err := GetServerConfig([]string{"-storage-dir", "/srv/blobs", "token", "-role", "anon"})
	require.NoError(t, err)
	assert.Equal(t, []string{"token", "-role", "anon"}, rest)
	assert.Equal(t, DefaultServerAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultServerRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, "/srv/blobs", cfg.Server.StorageDir)
	assert.Equal(t, "secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, DefaultTokenIssuer, cfg.Auth.TokenIssuer)
}

func TestGetServerConfig_MissingSignKey(t *testing.T) {
	setEnvVars(t, nil)

	_, _, err := GetServerConfig(nil)
	require.ErrorIs(t, err, ErrInvalidAppConfigs)
}
