package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	fieldPhotoMaxWidth = 1280
	fieldPhotoQuality  = 80
)

// SaveFieldPhoto decodes an uploaded field photo, scales it down to a
// bounded width, re-encodes it as webp and stores it.
func (s *Storage) SaveFieldPhoto(
	ctx context.Context,
	file *multipart.FileHeader,
) (string, error) {

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	img = scaleDown(img, fieldPhotoMaxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: fieldPhotoQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	return s.SaveBytes(ctx, "fields", ".webp", "image/webp", buf.Bytes())
}

func scaleDown(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth {
		return img
	}

	nh := h * maxWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
