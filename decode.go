package main

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// readEntry returns the encoded bytes of a plain file or an archive member
func readEntry(p ImagePath) ([]byte, error) {
	if p.ArchivePath == "" {
		return os.ReadFile(p.Path)
	}
	return readArchiveEntry(p.ArchivePath, p.EntryPath)
}

// decodeEntry decodes an entry and classifies failures as PathNotFound,
// UnsupportedFormat or DecodeFailure.
func decodeEntry(p ImagePath) (image.Image, error) {
	data, err := readEntry(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newViewerError(PathNotFound, p.Path, err)
		}
		return nil, newViewerError(DecodeFailure, p.Path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, newViewerError(UnsupportedFormat, p.Path, err)
		}
		return nil, newViewerError(DecodeFailure, p.Path, err)
	}
	return img, nil
}

// toRGBA converts any decoded image to RGBA with its origin at (0, 0)
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// loadEntry decodes an entry into the pixel format uploaded as a texture
func loadEntry(p ImagePath) (*image.RGBA, error) {
	img, err := decodeEntry(p)
	if err != nil {
		return nil, err
	}
	return toRGBA(img), nil
}
