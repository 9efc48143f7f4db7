package service

import (
	"context"
	"net/url"
	"path"

	"github.com/sirupsen/logrus"

	"mediarelay/internal/core/domain"
	"mediarelay/internal/core/ports"
	"mediarelay/internal/token"
)

// Stream is an upstream body ready to be relayed as an attachment.
type Stream struct {
	*ports.Media
	URL      string
	Filename string
}

// Proxy opens the real resource behind a token.
type Proxy struct {
	downloader ports.Downloader
	logger     logrus.FieldLogger
}

// NewProxy creates a new Proxy.
func NewProxy(downloader ports.Downloader, logger logrus.FieldLogger) *Proxy {
	return &Proxy{downloader: downloader, logger: logger}
}

// Open decodes tok and opens a streaming GET to the decoded URL.
// Malformed tokens are not rejected here; they fail when fetched.
func (p *Proxy) Open(ctx context.Context, tok string) (*Stream, error) {
	target := token.Decode(tok)

	media, err := p.downloader.Download(ctx, target)
	if err != nil {
		p.logger.WithError(err).Warn("proxy upstream failed")
		return nil, domain.ProxyError(err, "Proxy error")
	}

	return &Stream{Media: media, URL: target, Filename: AttachmentName(target)}, nil
}

// AttachmentName is the last path element of rawURL.
func AttachmentName(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	name := path.Base(p)
	if name == "/" || name == "." {
		return "download"
	}
	return name
}
