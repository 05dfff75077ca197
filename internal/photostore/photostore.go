package photostore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// PhotoStore uploads product photos and derives shareable links from the returned id.
type PhotoStore interface {
	Save(ctx context.Context, name, mimeType string, r io.Reader) (id string, err error)
	Link(id string) string
}

// MaxEdge bounds the longest side of an uploaded photo.
const MaxEdge = 1600

// PrepareJPEG decodes a camera image, applies its EXIF orientation, shrinks it
// to fit MaxEdge and re-encodes it as JPEG.
func PrepareJPEG(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > MaxEdge || b.Dy() > MaxEdge {
		img = imaging.Fit(img, MaxEdge, MaxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return buf.Bytes(), nil
}
