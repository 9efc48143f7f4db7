package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"mediarelay/internal/core/domain"
	"mediarelay/internal/core/ports"
	"mediarelay/internal/token"
)

// mediaURLPattern matches a direct https link ending in .mp4 or .mkv.
// The run is greedy so a ".mp4" inside the host or path does not end the match.
// Keep the character class as is: callers rely on the exact first match.
var mediaURLPattern = regexp.MustCompile(`https://[^\s"'<>]+\.(?:mp4|mkv)`)

// Resolver finds a direct media link on the upstream site for a movie id.
type Resolver struct {
	pages        ports.PageFetcher
	pageTemplate string
	logger       logrus.FieldLogger
}

// NewResolver creates a new Resolver. pageTemplate must contain "{id}".
func NewResolver(pages ports.PageFetcher, pageTemplate string, logger logrus.FieldLogger) *Resolver {
	return &Resolver{pages: pages, pageTemplate: pageTemplate, logger: logger}
}

// PageURL returns the upstream page for id.
func (r *Resolver) PageURL(id string) string {
	return strings.ReplaceAll(r.pageTemplate, domain.IDPlaceholder, id)
}

// Resolve fetches the page for id and returns the first media link with its token.
func (r *Resolver) Resolve(ctx context.Context, id string) (*domain.DownloadLink, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ValidationError("Missing id")
	}

	pageURL := r.PageURL(id)
	log := r.logger.WithField("page", pageURL)

	html, err := r.pages.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, domain.InternalError(errors.Wrap(err, "fetch upstream page"), "Failed to fetch download page")
	}

	mediaURL := ExtractMediaURL(html)
	if mediaURL == "" {
		log.Info("no media link found")
		return nil, domain.NotFoundError("Download link not found")
	}
	log.WithField("media", mediaURL).Debug("media link found")

	return &domain.DownloadLink{
		ID:       id,
		PageURL:  pageURL,
		MediaURL: mediaURL,
		Token:    token.Encode(mediaURL),
	}, nil
}

// ExtractMediaURL returns the first media link in html, or "".
func ExtractMediaURL(html []byte) string {
	return string(mediaURLPattern.Find(html))
}
