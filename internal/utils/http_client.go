package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	userAgent     = "yapm"
	retryCount    = 2
	retryWaitTime = 200 * time.Millisecond
	retryMaxWait  = 2 * time.Second
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client that identifies itself as yapm and repeats
// a request a couple of times when it fails before any response arrives.
// Responses with an error status are never retried.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err == nil {
				return false
			}
			return resp == nil || resp.Request == nil || resp.Request.Context().Err() == nil
		})

	return &HTTPClient{Client: client}
}
