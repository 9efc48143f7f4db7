package scraper

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"mediarelay/internal/adapters/downloader"
)

// DefaultUserAgent is sent to the upstream site unless configured otherwise.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Transport sets a fixed browser User-Agent on every request that does not
// carry one. It does not retry.
type Transport struct {
	Base      http.RoundTripper
	UserAgent string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if req.Header.Get("User-Agent") != "" || t.UserAgent == "" {
		return base.RoundTrip(req)
	}

	// Clone so the caller's request is left untouched.
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.UserAgent)
	return base.RoundTrip(r)
}

// PageScraper implements ports.PageFetcher.
type PageScraper struct {
	client *http.Client
}

// NewPageScraper builds a fetcher that presents itself as userAgent.
func NewPageScraper(userAgent string) *PageScraper {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &PageScraper{
		client: &http.Client{
			Transport: &Transport{Base: http.DefaultTransport, UserAgent: userAgent},
		},
	}
}

// FetchPage returns the raw HTML of pageURL.
func (s *PageScraper) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", pageURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &downloader.StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", pageURL)
	}
	return body, nil
}
