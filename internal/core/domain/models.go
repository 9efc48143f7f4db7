package domain

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// IDPlaceholder is replaced by the movie id in the upstream page template.
const IDPlaceholder = "{id}"

// StoredFile is a file persisted in the upload directory.
type StoredFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// VideoParams is the fixed encoding profile used for still-image videos.
type VideoParams struct {
	Duration    time.Duration
	FrameRate   int
	Width       int
	Height      int
	PixelFormat string
}

// StillVideo is the only profile the converter produces.
var StillVideo = VideoParams{
	Duration:    2 * time.Second,
	FrameRate:   30,
	Width:       1280,
	Height:      720,
	PixelFormat: "yuv420p",
}

// ConversionJob describes a single transcode. It lives for one request.
type ConversionJob struct {
	ID         string      `json:"job_id"`
	InputPath  string      `json:"input_path"`
	OutputPath string      `json:"output_path"`
	OutputName string      `json:"output_name"`
	Params     VideoParams `json:"-"`
	CreatedAt  time.Time   `json:"created_at"`
}

// DownloadLink is a media URL found on an upstream page.
type DownloadLink struct {
	ID       string
	PageURL  string
	MediaURL string
	Token    string
}

// UploadName builds "<millis>_<original>". An empty original name gets a
// random suffix; directories in the original are dropped.
func UploadName(now time.Time, original string) string {
	base := filepath.Base(filepath.Clean("/" + original))
	if base == "/" || base == "." || base == "" {
		base = uuid.New().String()
	}
	return fmt.Sprintf("%d_%s", now.UnixMilli(), base)
}

// RemoteSourceName is the name a fetched source image is stored under.
func RemoteSourceName(now time.Time, ext string) string {
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("remote_%d%s", now.UnixMilli(), ext)
}

// VideoName is the name of a transcoded video.
func VideoName(now time.Time) string {
	return fmt.Sprintf("video_%d.mp4", now.UnixMilli())
}
