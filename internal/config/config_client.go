package config

import (
	"fmt"
	"time"
)

// ClientVault holds local vault settings.
type ClientVault struct {
	// Dir is the directory holding vault files and the client log.
	Dir string
}

// ClientDirectory holds the account directory locations.
type ClientDirectory struct {
	// LocalPath is the SQLite file of the local directory.
	LocalPath string
	// RemoteDSN is the Postgres URL or SQLite path of the remote directory.
	RemoteDSN string
}

// ClientBlob holds remote blob storage settings.
type ClientBlob struct {
	Backend        string
	Bucket         string
	RequestTimeout time.Duration

	SupabaseURL    string
	SupabaseAPIKey string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync runs. Zero
	// disables it.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Vault     ClientVault
	Directory ClientDirectory
	Blob      ClientBlob
	Workers   ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration. args are the command line arguments
// without the program name; the returned slice holds the arguments left after
// the global flags.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg, rest, err := GetStructuredConfig(args)
	if err != nil {
		return nil, nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Vault: ClientVault{Dir: cfg.Vault.Dir},
		Directory: ClientDirectory{
			LocalPath: cfg.Directory.LocalPath,
			RemoteDSN: cfg.Directory.DSN,
		},
		Blob: ClientBlob{
			Backend:        cfg.Blob.Backend,
			Bucket:         cfg.Blob.Bucket,
			RequestTimeout: cfg.Blob.RequestTimeout,
			SupabaseURL:    cfg.Blob.Supabase.URL,
			SupabaseAPIKey: cfg.Blob.Supabase.APIKey,
			MinIOEndpoint:  cfg.Blob.MinIO.Endpoint,
			MinIOAccessKey: cfg.Blob.MinIO.AccessKey,
			MinIOSecretKey: cfg.Blob.MinIO.SecretKey,
			MinIOUseSSL:    cfg.Blob.MinIO.UseSSL,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}

	return clientCfg, rest, clientCfg.validate()
}
