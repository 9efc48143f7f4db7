package service

import (
	"context"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"mediarelay/internal/adapters/ffmpeg"
	"mediarelay/internal/core/domain"
	"mediarelay/internal/core/ports"
)

// Converter turns a still image into a short looping video.
type Converter struct {
	downloader ports.Downloader
	storage    ports.Storage
	transcoder ports.Transcoder
	logger     logrus.FieldLogger
	now        func() time.Time
}

// NewConverter creates a new Converter.
func NewConverter(
	downloader ports.Downloader,
	storage ports.Storage,
	transcoder ports.Transcoder,
	logger logrus.FieldLogger,
) *Converter {
	return &Converter{
		downloader: downloader,
		storage:    storage,
		transcoder: transcoder,
		logger:     logger,
		now:        time.Now,
	}
}

// ConvertURL fetches the image at imageURL, stores it and transcodes it.
// It returns the stored name of the produced video.
func (c *Converter) ConvertURL(ctx context.Context, imageURL string) (string, error) {
	if strings.TrimSpace(imageURL) == "" {
		return "", domain.ValidationError("Missing url parameter")
	}

	now := c.now()
	log := c.logger.WithField("source_url", imageURL)

	log.Debug("fetching source image")
	media, err := c.downloader.Download(ctx, imageURL)
	if err != nil {
		return "", domain.InternalError(errors.Wrap(err, "fetch source image"), "Failed to fetch image")
	}
	defer media.Body.Close()

	source, err := c.storage.Save(ctx, domain.RemoteSourceName(now, sourceExt(imageURL)), media.Body)
	if err != nil {
		return "", domain.InternalError(errors.Wrap(err, "store source image"), "Failed to fetch image")
	}
	log.WithField("bytes", source.Size).Debugf("stored source image as %s", source.Name)

	return c.ConvertStored(ctx, source.Name)
}

// ConvertStored transcodes an image that is already in storage.
// The source must be a regular file inside the upload directory.
func (c *Converter) ConvertStored(ctx context.Context, sourceName string) (string, error) {
	if sourceName == "" {
		return "", domain.ValidationError("Missing source file")
	}

	file, err := c.storage.Open(ctx, sourceName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.NotFoundError("Source file not found")
		}
		return "", domain.InternalError(errors.Wrap(err, "open source image"), "Video generation failed")
	}
	file.Close()

	now := c.now()
	outName := domain.VideoName(now)
	job := domain.ConversionJob{
		ID:         uuid.New().String(),
		InputPath:  c.storage.Path(sourceName),
		OutputPath: c.storage.Path(outName),
		OutputName: outName,
		Params:     domain.StillVideo,
		CreatedAt:  now.UTC(),
	}

	log := c.logger.WithField("job", job.ID)
	log.Infof("transcoding %s -> %s", sourceName, outName)

	start := time.Now()
	if err := c.transcoder.Transcode(ctx, job); err != nil {
		entry := log.WithError(err)
		var exitErr *ffmpeg.ExitError
		if errors.As(err, &exitErr) {
			entry = entry.WithField("stderr", exitErr.Stderr)
		}
		entry.Error("transcode failed")
		return "", domain.ConversionError(err, "Video generation failed")
	}

	log.WithField("elapsed", time.Since(start).String()).Info("transcode finished")
	return outName, nil
}

// sourceExt returns the extension of the URL path, ignoring the query.
func sourceExt(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return path.Ext(u.Path)
	}
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		rawURL = rawURL[:i]
	}
	return path.Ext(rawURL)
}
