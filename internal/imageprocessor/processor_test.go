package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFitLeavesSmallImagesAlone(t *testing.T) {
	p := NewProcessor(85, 100)
	data := pngBytes(t, 40, 80)

	out, resized, err := p.Fit(data)
	require.NoError(t, err)
	assert.False(t, resized)
	assert.Equal(t, data, out)
}

func TestFitDownscalesPNG(t *testing.T) {
	p := NewProcessor(85, 100)

	out, resized, err := p.Fit(pngBytes(t, 400, 200))
	require.NoError(t, err)
	assert.True(t, resized)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestFitKeepsJPEGFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 600))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	out, resized, err := NewProcessor(90, 150).Fit(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, resized)

	_, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestFitRejectsGarbage(t *testing.T) {
	_, _, err := NewProcessor(85, 100).Fit([]byte("not an image"))
	assert.Error(t, err)
	assert.False(t, IsValidImage(bytes.NewReader([]byte("nope"))))
}

func TestFitDisabled(t *testing.T) {
	out, resized, err := NewProcessor(85, 0).Fit([]byte("anything"))
	require.NoError(t, err)
	assert.False(t, resized)
	assert.Equal(t, []byte("anything"), out)
}
