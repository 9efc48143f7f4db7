package localstorage

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) (*LocalStorage, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s := NewLocalStorage(fs, "/data/uploads")
	require.NoError(t, s.Init(context.Background()))
	return s, fs
}

func TestInit_Idempotent(t *testing.T) {
	s, fs := newStorage(t)
	require.NoError(t, s.Init(context.Background()))

	ok, err := afero.DirExists(fs, "/data/uploads")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSaveOpen_RoundTrip(t *testing.T) {
	s, _ := newStorage(t)
	ctx := context.Background()

	stored, err := s.Save(ctx, "1_a.txt", strings.NewReader("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, "1_a.txt", stored.Name)
	assert.EqualValues(t, 10, stored.Size)

	f, err := s.Open(ctx, "1_a.txt")
	require.NoError(t, err)
	defer f.Close()

	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(body))
}

func TestSave_Overwrites(t *testing.T) {
	s, fs := newStorage(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "x.bin", strings.NewReader("long content"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "x.bin", strings.NewReader("short"))
	require.NoError(t, err)

	body, err := afero.ReadFile(fs, s.Path("x.bin"))
	require.NoError(t, err)
	assert.Equal(t, "short", string(body))
}

func TestOpen_MissingAndInvalid(t *testing.T) {
	s, fs := newStorage(t)
	ctx := context.Background()
	require.NoError(t, fs.MkdirAll(s.Path("sub"), 0755))

	for _, name := range []string{"missing.txt", "sub", "../secret", "", ".."} {
		_, err := s.Open(ctx, name)
		assert.ErrorIs(t, err, os.ErrNotExist, "name %q", name)
	}
}

func TestSave_RejectsPathNames(t *testing.T) {
	s, _ := newStorage(t)
	_, err := s.Save(context.Background(), "../escape.txt", strings.NewReader("x"))
	assert.Error(t, err)
}
