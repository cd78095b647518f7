package service

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeImage(t *testing.T, width, height int, format imaging.Format) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 20, G: 120, B: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri, prefix string) []byte {
	t.Helper()
	require.True(t, strings.HasPrefix(uri, prefix), uri[:min(len(uri), 40)])
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	return raw
}

func TestProcessLogo_ShrinksLargeImages(t *testing.T) {
	uri, err := ProcessLogo(encodeImage(t, 1024, 600, imaging.PNG))
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(decodeDataURI(t, uri, "data:image/png;base64,")))
	require.NoError(t, err)
	assert.Equal(t, LogoMaxSize, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestProcessLogo_KeepsSmallImages(t *testing.T) {
	uri, err := ProcessLogo(encodeImage(t, 64, 32, imaging.JPEG))
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(decodeDataURI(t, uri, "data:image/jpeg;base64,")))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestProcessLogo_RejectsOtherTypes(t *testing.T) {
	_, err := ProcessLogo([]byte("%PDF-1.4 not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	// right magic bytes, broken body
	_, err = ProcessLogo([]byte("\x89PNG\r\n\x1a\ngarbage"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
