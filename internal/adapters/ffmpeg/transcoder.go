package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"mediarelay/internal/core/domain"
)

// ExitError is returned when the transcoder fails. Stderr holds the
// diagnostic output and must not be shown to clients.
type ExitError struct {
	Err    error
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("ffmpeg failed: %v", e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Transcoder uses the local ffmpeg binary to render still-image videos.
type Transcoder struct {
	binaryPath string
}

// NewTranscoder creates a new transcoder. An empty path means "ffmpeg" on PATH.
func NewTranscoder(binaryPath string) *Transcoder {
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}
	return &Transcoder{binaryPath: binaryPath}
}

// Available reports whether the binary can be found.
func (t *Transcoder) Available() bool {
	_, err := exec.LookPath(t.binaryPath)
	return err == nil
}

// Transcode runs ffmpeg for job and blocks until it exits.
// The process is killed when ctx is cancelled.
func (t *Transcoder) Transcode(ctx context.Context, job domain.ConversionJob) error {
	cmd := exec.CommandContext(ctx, t.binaryPath, Args(job)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ExitError{Err: err, Stderr: stderr.String()}
	}
	return nil
}

// Args builds the argument list for job:
// loop one image, fixed duration and rate, scaled, overwrite output.
func Args(job domain.ConversionJob) []string {
	p := job.Params
	return []string{
		"-y",
		"-loop", "1",
		"-i", job.InputPath,
		"-t", strconv.FormatFloat(p.Duration.Seconds(), 'f', -1, 64),
		"-r", strconv.Itoa(p.FrameRate),
		"-s", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-pix_fmt", p.PixelFormat,
		job.OutputPath,
	}
}
