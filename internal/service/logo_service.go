package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// LogoMaxSize bounds both sides of a stored clinic logo.
const LogoMaxSize = 512

var ErrUnsupportedImage = errors.New("unsupported image type, use PNG, JPEG or GIF")

// ProcessLogo shrinks an uploaded image to fit LogoMaxSize x LogoMaxSize
// and returns it as a data URI. Smaller images keep their size.
func ProcessLogo(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	var format imaging.Format
	switch {
	case mtype.Is("image/png"):
		format = imaging.PNG
	case mtype.Is("image/jpeg"):
		format = imaging.JPEG
	case mtype.Is("image/gif"):
		format = imaging.GIF
	default:
		return "", ErrUnsupportedImage
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	var resized image.Image = img
	bounds := img.Bounds()
	if bounds.Dx() > LogoMaxSize || bounds.Dy() > LogoMaxSize {
		resized = imaging.Fit(img, LogoMaxSize, LogoMaxSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return "", fmt.Errorf("failed to encode logo: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return "data:" + mtype.String() + ";base64," + encoded, nil
}
