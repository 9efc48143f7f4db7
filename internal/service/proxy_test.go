package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/core/domain"
	"mediarelay/internal/token"
)

func TestProxyOpen(t *testing.T) {
	target := "https://files.test/movies/Big.Movie.2024.mkv?sig=abc"
	dl := &fakeDownloader{bodies: map[string]string{target: "MKVBYTES"}}
	p := NewProxy(dl, discard)

	stream, err := p.Open(context.Background(), token.Encode(target))
	require.NoError(t, err)
	defer stream.Body.Close()

	assert.Equal(t, target, stream.URL)
	assert.Equal(t, "Big.Movie.2024.mkv", stream.Filename)
	body, err := io.ReadAll(stream.Body)
	require.NoError(t, err)
	assert.Equal(t, "MKVBYTES", string(body))
}

func TestProxyOpen_GarbageTokenFailsOnFetch(t *testing.T) {
	dl := &fakeDownloader{bodies: map[string]string{}}
	p := NewProxy(dl, discard)

	_, err := p.Open(context.Background(), "%%%not-a-token%%%")
	require.Error(t, err)
	assert.Equal(t, domain.KindProxy, domain.KindOf(err))
	assert.Len(t, dl.calls, 1)
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "a.mp4", AttachmentName("https://h.test/x/a.mp4"))
	assert.Equal(t, "a.mp4", AttachmentName("https://h.test/x/a.mp4?q=1"))
	assert.Equal(t, "download", AttachmentName("https://h.test/"))
	assert.Equal(t, "download", AttachmentName(""))
}
