package config

import (
	"fmt"
	"time"
)

// ServerHTTP holds the relay server listener and blob storage settings.
type ServerHTTP struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	StorageDir     string
}

// ServerAuth holds the API key signing settings.
type ServerAuth struct {
	TokenSignKey string
	TokenIssuer  string
}

// ServerConfig is the blob relay server view of [StructuredConfig].
type ServerConfig struct {
	Server ServerHTTP
	Auth   ServerAuth
}

// GetServerConfig builds and validates the relay server configuration. Like
// [GetClientConfig] it returns the arguments left after the global flags.
func GetServerConfig(args []string) (*ServerConfig, []string, error) {
	cfg, rest, err := GetStructuredConfig(args)
	if err != nil {
		return nil, nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		Server: ServerHTTP{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
			StorageDir:     cfg.Server.StorageDir,
		},
		Auth: ServerAuth{
			TokenSignKey: cfg.App.TokenSignKey,
			TokenIssuer:  cfg.App.TokenIssuer,
		},
	}

	return serverCfg, rest, serverCfg.validate()
}
