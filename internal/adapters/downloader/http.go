package downloader

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"mediarelay/internal/core/ports"
)

// StatusError is returned when the remote answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status code %d", e.URL, e.StatusCode)
}

// HTTPDownloader implements ports.Downloader using standard HTTP.
// It sets no client timeout: bodies are streamed for as long as the
// caller's context allows.
type HTTPDownloader struct {
	client *http.Client
}

// NewHTTPDownloader creates a new HTTPDownloader. A nil client uses a
// fresh client with no timeout.
func NewHTTPDownloader(client *http.Client) *HTTPDownloader {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPDownloader{client: client}
}

// Download opens a streaming GET to rawURL.
func (d *HTTPDownloader) Download(ctx context.Context, rawURL string) (*ports.Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", rawURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	return &ports.Media{Body: resp.Body, Length: resp.ContentLength}, nil
}
