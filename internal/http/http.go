// Package http provides a wrapper around the retryablehttp.Client
// for making HTTP requests with retry capabilities.
package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const maxErrorBody = 4 << 10

type HTTPDoer interface {
	Do(*retryablehttp.Request) (*http.Response, error)
}

type HTTP struct {
	*retryablehttp.Client
}

var _ HTTPDoer = (*retryablehttp.Client)(nil)

// Config tunes the retrying client.
type Config struct {
	Logger   *slog.Logger
	RetryMax int
	Timeout  time.Duration
}

func DefaultConfig() Config {
	return Config{
		RetryMax: 3,
		Timeout:  15 * time.Second,
	}
}

func New(config Config) *HTTP {
	client := retryablehttp.NewClient()
	client.RetryMax = config.RetryMax
	client.HTTPClient.Timeout = config.Timeout
	// hand the last response to the caller instead of a generic error
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	// a typed nil would defeat retryablehttp's nil check
	client.Logger = nil
	if config.Logger != nil {
		client.Logger = config.Logger
	}
	return &HTTP{
		Client: client,
	}
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// ExpectStatus2xx closes the body and returns a *StatusError when the
// response is not successful.
func ExpectStatus2xx(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}
