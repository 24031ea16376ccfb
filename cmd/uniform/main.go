// Exercise 4: load shaders from disk and animate a color uniform.
package main

import (
	"flag"
	"log"
	"math"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glsteps/glsteps/geometry"
	"github.com/glsteps/glsteps/glfwcontext"
	"github.com/glsteps/glsteps/options"
	"github.com/glsteps/glsteps/shader"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.RegisterFlags("glsteps: uniform")
	vertPath := flag.String("vert", "assets/shaders/uniform.vert", "Vertex shader file")
	fragPath := flag.String("frag", "assets/shaders/uniform.frag", "Fragment shader file")
	flag.Parse()

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts, true)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
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

	for !ctx.ShouldClose() {
		gl.ClearColor(0.2, 0.3, 0.3, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		// Use before set: the uniform setters target whichever program
		// is currently bound.
		program.Use()
		green := float32(math.Sin(ctx.Time()))/2.0 + 0.5
		program.SetFloat("uGreen", green)
		mesh.Draw()

		ctx.EndFrame()
	}
}
