package barcode

import (
	"bytes"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, writer gozxing.Writer, contents string, format gozxing.BarcodeFormat, w, h int) []byte {
	t.Helper()
	matrix, err := writer.Encode(contents, format, w, h, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, matrix))
	return buf.Bytes()
}

func TestDecodeCode128(t *testing.T) {
	img := encodePNG(t, oned.NewCode128Writer(), "LOC-R-01", gozxing.BarcodeFormat_CODE_128, 300, 80)

	text, err := NewDecoder().Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, "LOC-R-01", text)
}

func TestDecodeQRCode(t *testing.T) {
	img := encodePNG(t, qrcode.NewQRCodeWriter(), "885001", gozxing.BarcodeFormat_QR_CODE, 200, 200)

	text, err := NewDecoder().Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, "885001", text)
}

func TestDecodeBlankImage(t *testing.T) {
	blank := imaging.New(120, 120, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, blank))

	_, err := NewDecoder().Decode(&buf)
	assert.ErrorIs(t, err, ErrNoBarcode)
}

func TestDecodeNotAnImage(t *testing.T) {
	_, err := NewDecoder().Decode(bytes.NewReader([]byte("plain text")))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoBarcode)
}

func TestDecodeConcurrentCallsShareDecoder(t *testing.T) {
	img := encodePNG(t, oned.NewEAN13Writer(), "5901234123457", gozxing.BarcodeFormat_EAN_13, 300, 100)
	decoder := NewDecoder()

	const workers, rounds = 8, 10
	results := make(chan string, workers*rounds)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				text, err := decoder.Decode(bytes.NewReader(img))
				if err != nil {
					text = err.Error()
				}
				results <- text
			}
		}()
	}
	wg.Wait()
	close(results)

	for text := range results {
		assert.Equal(t, "5901234123457", text)
	}
}
