package photostore

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareJPEGShrinksLargePhotos(t *testing.T) {
	out, err := PrepareJPEG(bytes.NewReader(pngOf(t, 3200, 800)))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, MaxEdge, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestPrepareJPEGKeepsSmallPhotos(t *testing.T) {
	out, err := PrepareJPEG(bytes.NewReader(pngOf(t, 64, 48)))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestPrepareJPEGRejectsGarbage(t *testing.T) {
	_, err := PrepareJPEG(bytes.NewReader([]byte("%PDF-1.4")))
	assert.Error(t, err)
}
