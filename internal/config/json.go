package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
	} `json:"app,omitempty"`

	Vault struct {
		Dir string `json:"dir"`
	} `json:"vault,omitempty"`

	Directory struct {
		LocalPath string `json:"local_path"`
		DSN       string `json:"dsn"`
	} `json:"directory,omitempty"`

	Blob struct {
		Backend        string   `json:"backend"`
		Bucket         string   `json:"bucket"`
		RequestTimeout Duration `json:"request_timeout"`
		Supabase       struct {
			URL    string `json:"url"`
			APIKey string `json:"api_key"`
		} `json:"supabase,omitempty"`
		MinIO struct {
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			UseSSL    bool   `json:"use_ssl"`
		} `json:"minio,omitempty"`
	} `json:"blob,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		StorageDir     string   `json:"storage_dir"`
	} `json:"server,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
		},
		Vault: Vault{Dir: jsonCfg.Vault.Dir},
		Directory: Directory{
			LocalPath: jsonCfg.Directory.LocalPath,
			DSN:       jsonCfg.Directory.DSN,
		},
		Blob: Blob{
			Backend:        jsonCfg.Blob.Backend,
			Bucket:         jsonCfg.Blob.Bucket,
			RequestTimeout: time.Duration(jsonCfg.Blob.RequestTimeout),
			Supabase: Supabase{
				URL:    jsonCfg.Blob.Supabase.URL,
				APIKey: jsonCfg.Blob.Supabase.APIKey,
			},
			MinIO: MinIO{
				Endpoint:  jsonCfg.Blob.MinIO.Endpoint,
				AccessKey: jsonCfg.Blob.MinIO.AccessKey,
				SecretKey: jsonCfg.Blob.MinIO.SecretKey,
				UseSSL:    jsonCfg.Blob.MinIO.UseSSL,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			StorageDir:     jsonCfg.Server.StorageDir,
		},
		Workers: Workers{SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval)},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
