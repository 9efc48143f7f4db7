package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/adapters/localstorage"
	"mediarelay/internal/core/domain"
	"mediarelay/internal/core/ports"
	"mediarelay/internal/logging"
)

var fixedNow = func() time.Time { return time.UnixMilli(1700000000123) }

type fakeDownloader struct {
	bodies map[string]string
	err    error
	calls  []string
}

func (d *fakeDownloader) Download(ctx context.Context, rawURL string) (*ports.Media, error) {
	d.calls = append(d.calls, rawURL)
	if d.err != nil {
		return nil, d.err
	}
	body, ok := d.bodies[rawURL]
	if !ok {
		return nil, errors.Errorf("dial %s: connection refused", rawURL)
	}
	return &ports.Media{Body: io.NopCloser(strings.NewReader(body)), Length: int64(len(body))}, nil
}

type fakePages struct {
	html  string
	err   error
	calls []string
}

func (p *fakePages) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	p.calls = append(p.calls, pageURL)
	if p.err != nil {
		return nil, p.err
	}
	return []byte(p.html), nil
}

// fakeTranscoder writes a placeholder video instead of running ffmpeg.
type fakeTranscoder struct {
	fs  afero.Fs
	err error

	mu   sync.Mutex
	jobs []domain.ConversionJob
}

func (f *fakeTranscoder) Transcode(ctx context.Context, job domain.ConversionJob) error {
	f.mu.Lock()
	f.jobs = append(f.jobs, job)
	f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	return afero.WriteFile(f.fs, job.OutputPath, []byte("fake-mp4"), 0644)
}

func newMemStorage(t *testing.T) (*localstorage.LocalStorage, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s := localstorage.NewLocalStorage(fs, "/uploads")
	require.NoError(t, s.Init(context.Background()))
	return s, fs
}

var discard = logging.Discard()
