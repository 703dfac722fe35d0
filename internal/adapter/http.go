package adapter

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/YabaiTech/YAPM/internal/config"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/utils"
)

// Supabase storage API paths. The relay server serves the same routes.
const (
	uploadPathFormat   = "/storage/v1/object/%s/%s"
	downloadPathFormat = "/storage/v1/object/public/%s/%s"
)

// maxErrorBody bounds how much of an error response body is kept in the
// returned error.
const maxErrorBody = 4 << 10

type httpBlobTransfer struct {
	client *utils.HTTPClient

	bucket string

	logger *logger.Logger
}

// NewHTTPBlobTransfer constructs a [BlobTransfer] for the Supabase storage
// API. It normalises and validates the base URL from cfg.SupabaseURL and
// configures the underlying HTTP client with the resolved base URL, request
// timeout and the API key headers sent with every request.
//
// Returns an error if the URL is empty or cannot be parsed, or if the bucket
// or API key is missing.
func NewHTTPBlobTransfer(cfg config.ClientBlob, logger *logger.Logger) (BlobTransfer, error) {
	baseURL, err := normalizeBaseURL(cfg.SupabaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid supabase url: %w", ErrInvalidConfig, err)
	}
	if cfg.Bucket == "" || cfg.SupabaseAPIKey == "" {
		return nil, fmt.Errorf("%w: bucket and api key are required", ErrInvalidConfig)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("apikey", cfg.SupabaseAPIKey).
		SetAuthToken(cfg.SupabaseAPIKey)

	return &httpBlobTransfer{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Upload implements [BlobTransfer]. It POSTs the file bytes to
// POST /storage/v1/object/{bucket}/{name} with x-upsert so an existing blob
// is overwritten.
func (h *httpBlobTransfer) Upload(ctx context.Context, localPath, remoteName string) error {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLocalFile, err)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetHeader("x-upsert", "true").
		SetBody(data).
		Post(h.objectPath(uploadPathFormat, remoteName))
	if err != nil {
		h.logger.Err(err).Str("func", "*httpBlobTransfer.Upload").Str("name", remoteName).Msg("upload request failed")
		return fmt.Errorf("%w: upload request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).Str("func", "*httpBlobTransfer.Upload").Str("name", remoteName).Int("status", resp.StatusCode()).Msg("upload rejected")
		return err
	}

	h.logger.Debug().Str("func", "*httpBlobTransfer.Upload").Str("name", remoteName).Int("bytes", len(data)).Msg("vault uploaded")
	return nil
}

// Download implements [BlobTransfer]. It GETs
// GET /storage/v1/object/public/{bucket}/{name} and streams the body into a
// temporary file that is renamed over localDestPath on success.
func (h *httpBlobTransfer) Download(ctx context.Context, remoteName, localDestPath string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(h.objectPath(downloadPathFormat, remoteName))
	if err != nil {
		h.logger.Err(err).Str("func", "*httpBlobTransfer.Download").Str("name", remoteName).Msg("download request failed")
		return fmt.Errorf("%w: download request: %w", ErrTransport, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		msg, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		err = mapHTTPStatus(resp.StatusCode(), string(msg))
		h.logger.Err(err).Str("func", "*httpBlobTransfer.Download").Str("name", remoteName).Int("status", resp.StatusCode()).Msg("download rejected")
		return err
	}

	if err = writeFileAtomic(localDestPath, body); err != nil {
		h.logger.Err(err).Str("func", "*httpBlobTransfer.Download").Str("name", remoteName).Msg("error writing downloaded vault")
		return err
	}

	return nil
}

func (h *httpBlobTransfer) objectPath(format, name string) string {
	return fmt.Sprintf(format, url.PathEscape(h.bucket), url.PathEscape(name))
}
