package texture

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckerboardPattern(t *testing.T) {
	img := Checkerboard(4, 4, 2)

	light := img.RGBAAt(0, 0)
	dark := img.RGBAAt(2, 0)
	assert.NotEqual(t, light, dark)
	// Cells alternate in both directions.
	assert.Equal(t, light, img.RGBAAt(2, 2))
	assert.Equal(t, dark, img.RGBAAt(0, 2))
	assert.Equal(t, uint8(255), light.A)
}

func TestToRGBAFlip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	top := color.RGBA{R: 255, A: 255}
	bottom := color.RGBA{B: 255, A: 255}
	src.SetRGBA(0, 0, top)
	src.SetRGBA(1, 0, top)
	src.SetRGBA(0, 1, bottom)
	src.SetRGBA(1, 1, bottom)

	flipped := ToRGBA(src, true)
	assert.Equal(t, bottom, flipped.RGBAAt(0, 0))
	assert.Equal(t, top, flipped.RGBAAt(0, 1))

	unflipped := ToRGBA(src, false)
	assert.Equal(t, top, unflipped.RGBAAt(0, 0))
}

func TestToRGBAConvertsAnyImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	src.SetGray(1, 1, color.Gray{Y: 128})

	rgba := ToRGBA(src, false)
	require.Equal(t, src.Bounds(), rgba.Bounds())
	got := rgba.RGBAAt(1, 1)
	assert.Equal(t, got.R, got.G)
	assert.Equal(t, got.G, got.B)
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
