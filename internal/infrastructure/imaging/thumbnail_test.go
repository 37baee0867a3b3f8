package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThumbnail_NonSquareJPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 200))
	for x := 0; x < 640; x++ {
		for y := 0; y < 200; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x % 255), G: 80, B: 160, A: 255})
		}
	}
	var in bytes.Buffer
	require.NoError(t, jpeg.Encode(&in, src, nil))

	out, err := Thumbnail(&in, ThumbnailSize)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 300, img.Bounds().Dx())
	require.Equal(t, 300, img.Bounds().Dy())
}

func TestThumbnail_SmallPNGIsUpscaled(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 40, 90))
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	out, err := Thumbnail(&in, 0)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, ThumbnailSize, cfg.Width)
	require.Equal(t, ThumbnailSize, cfg.Height)
}

func TestThumbnail_RejectsGarbage(t *testing.T) {
	_, err := Thumbnail(strings.NewReader("not an image"), 300)
	require.ErrorIs(t, err, ErrUnsupportedImage)
}
