package downloader

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload_StreamsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "5")
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	media, err := NewHTTPDownloader(srv.Client()).Download(context.Background(), srv.URL+"/img.png")
	require.NoError(t, err)
	defer media.Body.Close()

	assert.EqualValues(t, 5, media.Length)
	body, err := io.ReadAll(media.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestDownload_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewHTTPDownloader(nil).Download(context.Background(), srv.URL)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestDownload_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPDownloader(nil).Download(context.Background(), url)
	assert.Error(t, err)
}

func TestDownload_BadURL(t *testing.T) {
	_, err := NewHTTPDownloader(nil).Download(context.Background(), "\x00garbage")
	assert.Error(t, err)
}
