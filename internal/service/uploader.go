package service

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"mediarelay/internal/core/domain"
	"mediarelay/internal/core/ports"
)

// Uploader stores client uploads verbatim.
type Uploader struct {
	storage ports.Storage
	now     func() time.Time
}

// NewUploader creates a new Uploader.
func NewUploader(storage ports.Storage) *Uploader {
	return &Uploader{storage: storage, now: time.Now}
}

// Upload stores reader under "<millis>_<originalName>". No type, size or
// content check is made.
func (u *Uploader) Upload(ctx context.Context, originalName string, reader io.Reader) (*domain.StoredFile, error) {
	name := domain.UploadName(u.now(), originalName)
	file, err := u.storage.Save(ctx, name, reader)
	if err != nil {
		return nil, domain.InternalError(errors.Wrap(err, "save upload"), "Upload failed")
	}
	return file, nil
}
