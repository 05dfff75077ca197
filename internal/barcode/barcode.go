// Package barcode extracts a single barcode payload from a camera image.
package barcode

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNoBarcode indicates the image decoded fine but held no readable symbol.
var ErrNoBarcode = errors.New("no barcode found")

// Decoder tries a fixed list of symbologies and returns the first payload.
// It is safe for concurrent use.
type Decoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

// NewDecoder builds a decoder for the symbologies found on warehouse labels.
func NewDecoder() *Decoder {
	return &Decoder{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// newReaders returns fresh readers for one decode; gozxing readers keep
// scratch buffers and must not be shared between goroutines.
func newReaders() []gozxing.Reader {
	return []gozxing.Reader{
		qrcode.NewQRCodeReader(),
		oned.NewCode128Reader(),
		oned.NewEAN13Reader(),
		oned.NewEAN8Reader(),
		oned.NewUPCAReader(),
		oned.NewCode39Reader(),
	}
}

// Decode reads an image and returns the payload of the first barcode found.
// Photos taken in portrait are retried rotated by 90 degrees.
func (d *Decoder) Decode(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	readers := newReaders()
	for _, candidate := range []image.Image{img, imaging.Rotate90(img)} {
		text, err := d.decodeImage(readers, candidate)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, ErrNoBarcode) {
			return "", err
		}
	}
	return "", ErrNoBarcode
}

func (d *Decoder) decodeImage(readers []gozxing.Reader, img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("binarize image: %w", err)
	}

	for _, reader := range readers {
		result, err := reader.Decode(bmp, d.hints)
		if err != nil {
			continue
		}
		if text := result.GetText(); text != "" {
			return text, nil
		}
	}
	return "", ErrNoBarcode
}
