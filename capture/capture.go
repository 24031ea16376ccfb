// Package capture renders into an offscreen framebuffer and turns the
// result into PNG screenshots or an MP4 recording.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	graphics "github.com/glsteps/glsteps/graphics"
)

// Framebuffer is an offscreen render target with an RGBA8 color texture and
// a depth renderbuffer.
type Framebuffer struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
	width, height     int
}

// NewFramebuffer creates a complete offscreen FBO of the given size. The
// ctx argument pins the call to the context that must be current.
func NewFramebuffer(_ graphics.Context, width, height int) (*Framebuffer, error) {
	f := &Framebuffer{width: width, height: height}

	gl.GenFramebuffers(1, &f.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)

	gl.GenTextures(1, &f.textureID)
	gl.BindTexture(gl.TEXTURE_2D, f.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.textureID, 0)

	gl.GenRenderbuffers(1, &f.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, f.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, f.depthRenderbuffer)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return nil, fmt.Errorf("offscreen fbo is not complete")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	return f, nil
}

// Bind directs subsequent draws into the framebuffer and sets the viewport
// to cover it.
func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.width), int32(f.height))
}

// Unbind restores the default framebuffer.
func (f *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReadPixels returns the framebuffer contents as tightly packed RGBA bytes
// in GL row order, bottom row first.
func (f *Framebuffer) ReadPixels() []byte {
	pixels := make([]byte, f.width*f.height*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.ReadPixels(0, 0, int32(f.width), int32(f.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Image reads the framebuffer back as a top-down image.
func (f *Framebuffer) Image() *image.RGBA {
	pixels := f.ReadPixels()
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	rowSize := f.width * 4
	for y := 0; y < f.height; y++ {
		src := pixels[(f.height-1-y)*rowSize:]
		copy(img.Pix[y*img.Stride:], src[:rowSize])
	}
	return img
}

// Delete releases the FBO and its attachments.
func (f *Framebuffer) Delete() {
	gl.DeleteRenderbuffers(1, &f.depthRenderbuffer)
	gl.DeleteTextures(1, &f.textureID)
	gl.DeleteFramebuffers(1, &f.fbo)
}

// SavePNG writes an image to path as PNG.
func SavePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// Recorder pipes raw RGBA frames into an ffmpeg process encoding H.264.
type Recorder struct {
	pipeWriter *io.PipeWriter
	errc       chan error
	frameSize  int
}

// recorderArgs builds the ffmpeg input/output argument sets for a raw RGBA
// pipe of the given geometry. Frames arrive in GL order (bottom row first),
// so the output applies a vertical flip.
func recorderArgs(width, height, fps int) (inputArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}
	outputArgs = ffmpeg.KwArgs{
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
		"vf":      "vflip",
		"r":       fps,
	}
	return inputArgs, outputArgs
}

// NewRecorder starts ffmpeg reading raw frames from a pipe and writing
// outputFile. WriteFrame feeds it; Close finishes the encode.
func NewRecorder(width, height, fps int, outputFile string) *Recorder {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := recorderArgs(width, height, fps)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(outputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	errc := make(chan error, 1)
	go func() {
		errc <- ffmpegCmd.Run()
	}()

	return &Recorder{
		pipeWriter: pipeWriter,
		errc:       errc,
		frameSize:  width * height * 4,
	}
}

// WriteFrame sends one RGBA frame, sized exactly width*height*4, to the
// encoder.
func (r *Recorder) WriteFrame(pixels []byte) error {
	if len(pixels) != r.frameSize {
		return fmt.Errorf("frame is %d bytes, want %d", len(pixels), r.frameSize)
	}
	if _, err := r.pipeWriter.Write(pixels); err != nil {
		return fmt.Errorf("failed to write frame to ffmpeg: %w", err)
	}
	return nil
}

// Close signals end of input and waits for ffmpeg to finish, returning its
// error if the encode failed.
func (r *Recorder) Close() error {
	r.pipeWriter.Close()
	return <-r.errc
}
