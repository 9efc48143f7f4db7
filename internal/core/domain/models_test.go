package domain

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var fixed = time.UnixMilli(1700000000123)

func TestUploadName(t *testing.T) {
	assert.Equal(t, "1700000000123_a.txt", UploadName(fixed, "a.txt"))
	assert.Equal(t, "1700000000123_passwd", UploadName(fixed, "../../etc/passwd"))
	assert.Equal(t, "1700000000123_x.png", UploadName(fixed, "dir/x.png"))
	assert.Regexp(t, `^1700000000123_[0-9a-f-]{36}$`, UploadName(fixed, ""))
}

func TestGeneratedNames(t *testing.T) {
	assert.Equal(t, "remote_1700000000123.png", RemoteSourceName(fixed, ".png"))
	assert.Equal(t, "remote_1700000000123.jpg", RemoteSourceName(fixed, ""))
	assert.Equal(t, "video_1700000000123.mp4", VideoName(fixed))
}

func TestStillVideoHasEvenDimensions(t *testing.T) {
	assert.Equal(t, 2*time.Second, StillVideo.Duration)
	assert.Zero(t, StillVideo.Width%2)
	assert.Zero(t, StillVideo.Height%2)
}

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, KindValidation, KindOf(ValidationError("bad")))
	assert.Equal(t, KindNotFound, KindOf(errors.Wrap(NotFoundError("nope"), "resolve")))
	assert.Equal(t, KindConversion, KindOf(ConversionError(cause, "failed")))
	assert.Equal(t, KindProxy, KindOf(ProxyError(cause, "proxy")))
	assert.Equal(t, KindInternal, KindOf(cause))

	assert.Equal(t, "failed", MessageOf(ConversionError(cause, "failed")))
	assert.Equal(t, "Internal Server Error", MessageOf(cause))
	assert.True(t, errors.Is(ProxyError(cause, "proxy"), cause))
}
