package ports

import (
	"context"
	"io"
	"io/fs"

	"mediarelay/internal/core/domain"
)

// Media is an open upstream response body.
type Media struct {
	Body io.ReadCloser
	// Length is -1 when the upstream did not announce it.
	Length int64
}

// Downloader defines the contract for fetching remote resources.
type Downloader interface {
	// Download opens a streaming GET to the given URL.
	// The caller must close the returned body.
	Download(ctx context.Context, rawURL string) (*Media, error)
}

// PageFetcher defines the contract for fetching upstream HTML pages.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) ([]byte, error)
}

// File is a stored file opened for reading.
type File interface {
	io.ReadSeekCloser
	Stat() (fs.FileInfo, error)
}

// Storage defines the contract for persisting uploads and outputs.
type Storage interface {
	// Init creates the storage directory if it does not exist.
	Init(ctx context.Context) error

	// Save writes reader to the given name and reports the stored file.
	Save(ctx context.Context, name string, reader io.Reader) (*domain.StoredFile, error)

	// Open opens a stored file by name.
	Open(ctx context.Context, name string) (File, error)

	// Path returns the filesystem path for a stored name.
	Path(name string) string
}

// Transcoder defines the contract for the external media conversion.
type Transcoder interface {
	Transcode(ctx context.Context, job domain.ConversionJob) error
}
