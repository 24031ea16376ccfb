// Package texture decodes images and uploads them as 2D GL textures.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	// Blank imports for image decoders so image.Decode can handle them.
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-gl/gl/v4.1-core/gl"

	graphics "github.com/glsteps/glsteps/graphics"
)

// Texture owns a 2D GL texture object.
type Texture struct {
	id            uint32
	width, height int32
}

// Decode reads and decodes an image file.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// ToRGBA converts any image to RGBA, optionally flipping it vertically.
// Image files store rows top-down while GL samples textures bottom-up, so
// textured exercises generally want flip=true.
func ToRGBA(img image.Image, flip bool) *image.RGBA {
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, image.Point{}, draw.Src)
	if flip {
		rgba = vflip(rgba)
	}
	return rgba
}

// vflip vertically flips the provided RGBA image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	// This is faster than calling At/Set for each pixel
	rowSize := bounds.Dx() * 4 // 4 bytes per pixel (RGBA)
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// Checkerboard builds a two-tone checkerboard so textured exercises work
// without shipping a binary image asset.
func Checkerboard(width, height, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	dark := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	light := color.RGBA{R: 220, G: 220, B: 220, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}

// New uploads an RGBA image as a repeat-wrapped, mipmapped 2D texture. The
// ctx argument pins the call to the context that must be current.
func New(_ graphics.Context, rgba *image.RGBA) *Texture {
	width := int32(rgba.Rect.Size().X)
	height := int32(rgba.Rect.Size().Y)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{id: id, width: width, height: height}
}

// Load is the convenience path the exercises use: decode the file at path,
// or fall back to a checkerboard when path is empty.
func Load(ctx graphics.Context, path string) (*Texture, error) {
	if path == "" {
		return New(ctx, Checkerboard(512, 512, 64)), nil
	}
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return New(ctx, ToRGBA(img, true)), nil
}

// Bind makes the texture current on the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete releases the GL texture object.
func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.id)
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int32, int32) {
	return t.width, t.height
}
