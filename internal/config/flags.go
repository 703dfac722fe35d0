package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the global configuration flags from args and returns the
// remaining positional arguments.
//
// Flags:
//
//	-c/-config json file path with configs
//	-vault-dir directory with vault files
//	-local-directory local account directory SQLite path
//	-d remote account directory DSN
//	-blob-backend supabase or minio
//	-bucket blob bucket name
//	-supabase-url Supabase project (or relay server) URL
//	-supabase-key Supabase API key
//	-minio-endpoint MinIO endpoint host:port
//	-minio-access-key MinIO access key
//	-minio-secret-key MinIO secret key
//	-minio-ssl use TLS for MinIO
//	-blob-timeout blob request timeout (e.g., "30s")
//	-a relay server address in format [host]:[port]
//	-request-timeout relay server request timeout (e.g., "30s", "1m")
//	-storage-dir relay server blob directory
//	-token-sign-key API key signing secret
//	-token-issuer API key issuer name
//	-sync-interval background sync period (e.g., "5m"), 0 disables
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var (
		serverAddress  NetAddress
		jsonConfigPath string
		cfg            StructuredConfig
	)

	fs := flag.NewFlagSet("yapm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.Vault.Dir, "vault-dir", "", "Vault directory")
	fs.StringVar(&cfg.Directory.LocalPath, "local-directory", "", "Local account directory path")
	fs.StringVar(&cfg.Directory.DSN, "d", "", "Remote account directory DSN")
	fs.StringVar(&cfg.Blob.Backend, "blob-backend", "", "Blob backend: supabase or minio")
	fs.StringVar(&cfg.Blob.Bucket, "bucket", "", "Blob bucket")
	fs.StringVar(&cfg.Blob.Supabase.URL, "supabase-url", "", "Supabase URL")
	fs.StringVar(&cfg.Blob.Supabase.APIKey, "supabase-key", "", "Supabase API key")
	fs.StringVar(&cfg.Blob.MinIO.Endpoint, "minio-endpoint", "", "MinIO endpoint")
	fs.StringVar(&cfg.Blob.MinIO.AccessKey, "minio-access-key", "", "MinIO access key")
	fs.StringVar(&cfg.Blob.MinIO.SecretKey, "minio-secret-key", "", "MinIO secret key")
	fs.BoolVar(&cfg.Blob.MinIO.UseSSL, "minio-ssl", false, "Use TLS for MinIO")
	fs.DurationVar(&cfg.Blob.RequestTimeout, "blob-timeout", 0, "Blob request timeout (e.g., 30s)")
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Server.StorageDir, "storage-dir", "", "Relay server blob directory")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.JSONFilePath = jsonConfigPath

	return &cfg, fs.Args(), nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
