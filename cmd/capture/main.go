// Exercise 7: render offscreen and capture the result, either as a single
// PNG screenshot or as an MP4 recording piped through ffmpeg.
package main

import (
	"flag"
	"log"
	"math"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glsteps/glsteps/capture"
	"github.com/glsteps/glsteps/geometry"
	"github.com/glsteps/glsteps/glfwcontext"
	"github.com/glsteps/glsteps/options"
	"github.com/glsteps/glsteps/shader"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.RegisterFlags("glsteps: capture")
	vertPath := flag.String("vert", "assets/shaders/uniform.vert", "Vertex shader file")
	fragPath := flag.String("frag", "assets/shaders/uniform.frag", "Fragment shader file")
	flag.Parse()

	output := *opts.Output
	if !*opts.Record && strings.HasSuffix(output, ".mp4") {
		output = strings.TrimSuffix(output, ".mp4") + ".png"
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	// The window stays hidden; it only provides the GL context.
	ctx, err := glfwcontext.New(opts, false)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer ctx.Shutdown()

	ctx.MakeCurrent()
	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	program, err := shader.Build(ctx, *vertPath, *fragPath)
	if err != nil {
		log.Fatalf("Failed to build shader program: %v", err)
	}
	defer program.Delete()

	vertices := []float32{
		-0.5, -0.5, 0.0,
		0.5, -0.5, 0.0,
		0.0, 0.5, 0.0,
	}
	mesh := geometry.NewMesh(ctx, vertices, []geometry.Attrib{{Index: 0, Size: 3}}, nil)
	defer mesh.Delete()

	fb, err := capture.NewFramebuffer(ctx, *opts.Width, *opts.Height)
	if err != nil {
		log.Fatalf("Failed to create offscreen framebuffer: %v", err)
	}
	defer fb.Delete()

	renderFrame := func(t float64) {
		fb.Bind()
		gl.ClearColor(0.2, 0.3, 0.3, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		program.Use()
		program.SetFloat("uGreen", float32(math.Sin(t))/2.0+0.5)
		mesh.Draw()
		fb.Unbind()
	}

	if *opts.Record {
		rec := capture.NewRecorder(*opts.Width, *opts.Height, *opts.FPS, output)
		frames := int(*opts.Duration * float64(*opts.FPS))
		log.Printf("Recording %d frames to %s", frames, output)
		for i := 0; i < frames; i++ {
			renderFrame(float64(i) / float64(*opts.FPS))
			if err := rec.WriteFrame(fb.ReadPixels()); err != nil {
				log.Fatalf("Failed to write frame %d: %v", i, err)
			}
		}
		if err := rec.Close(); err != nil {
			log.Fatalf("Encoding failed: %v", err)
		}
		log.Printf("Wrote %s", output)
		return
	}

	renderFrame(0)
	if err := capture.SavePNG(output, fb.Image()); err != nil {
		log.Fatalf("Failed to save screenshot: %v", err)
	}
	log.Printf("Wrote %s", output)
}
