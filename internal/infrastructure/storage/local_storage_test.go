package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	file, err := s.Save("X-Ray.PNG", []byte("data"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Filename, ".png"))
	assert.Equal(t, URLPrefix+file.Filename, file.URL)

	content, err := os.ReadFile(filepath.Join(dir, file.Filename))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	require.NoError(t, s.Delete(file.Filename))
	_, err = os.Stat(filepath.Join(dir, file.Filename))
	assert.True(t, os.IsNotExist(err))

	// second delete is a no-op
	assert.NoError(t, s.Delete(file.Filename))
}

func TestLocalStorage_DeleteRejectsPaths(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete("../etc/passwd"), ErrInvalidFilename)
	assert.ErrorIs(t, s.Delete(""), ErrInvalidFilename)
}
