package capture

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderArgs(t *testing.T) {
	in, out := recorderArgs(640, 480, 30)

	assert.Equal(t, "rawvideo", in["f"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "640x480", in["s"])
	assert.Equal(t, 30, in["framerate"])

	assert.Equal(t, "libx264", out["c:v"])
	assert.Equal(t, "yuv420p", out["pix_fmt"])
	// GL frames are bottom-up; the encode must flip them.
	assert.Equal(t, "vflip", out["vf"])
}

func TestSavePNGRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SavePNG(path, img))
	assert.FileExists(t, path)
}

func TestSavePNGBadPath(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	err := SavePNG(filepath.Join(t.TempDir(), "no", "such", "dir", "out.png"), img)
	assert.Error(t, err)
}
