package localstorage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"mediarelay/internal/core/domain"
	"mediarelay/internal/core/ports"
)

// LocalStorage implements ports.Storage on top of an afero filesystem.
type LocalStorage struct {
	fs      afero.Fs
	BaseDir string
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(fs afero.Fs, baseDir string) *LocalStorage {
	return &LocalStorage{fs: fs, BaseDir: baseDir}
}

// NewOSStorage stores files on the real disk under baseDir.
func NewOSStorage(baseDir string) (*LocalStorage, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve upload directory %s", baseDir)
	}
	return NewLocalStorage(afero.NewOsFs(), abs), nil
}

// Init creates the upload directory. Safe to call more than once.
func (s *LocalStorage) Init(ctx context.Context) error {
	if err := s.fs.MkdirAll(s.BaseDir, 0755); err != nil {
		return errors.Wrapf(err, "create upload directory %s", s.BaseDir)
	}
	return nil
}

// Save writes the reader under name.
func (s *LocalStorage) Save(ctx context.Context, name string, reader io.Reader) (*domain.StoredFile, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	path := s.Path(name)
	file, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "create file %s", path)
	}
	defer file.Close()

	n, err := io.Copy(file, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "write file %s", path)
	}
	return &domain.StoredFile{Name: name, Size: n}, nil
}

// Open opens a stored file. Missing files and directories report os.ErrNotExist.
func (s *LocalStorage) Open(ctx context.Context, name string) (ports.File, error) {
	if err := checkName(name); err != nil {
		return nil, os.ErrNotExist
	}

	file, err := s.fs.Open(s.Path(name))
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

// Path returns the path of a stored name.
func (s *LocalStorage) Path(name string) string {
	return filepath.Join(s.BaseDir, name)
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Errorf("invalid file name %q", name)
	}
	return nil
}
