// Exercise 5: sample a texture on a quad. With no -image flag a procedural
// checkerboard is used, so the exercise runs without any asset files.
package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glsteps/glsteps/geometry"
	"github.com/glsteps/glsteps/glfwcontext"
	"github.com/glsteps/glsteps/options"
	"github.com/glsteps/glsteps/shader"
	"github.com/glsteps/glsteps/texture"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.RegisterFlags("glsteps: texture")
	vertPath := flag.String("vert", "assets/shaders/texture.vert", "Vertex shader file")
	fragPath := flag.String("frag", "assets/shaders/texture.frag", "Fragment shader file")
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

	tex, err := texture.Load(ctx, *opts.Image)
	if err != nil {
		log.Fatalf("Failed to load texture: %v", err)
	}
	defer tex.Delete()

	// x, y, z, u, v
	vertices := []float32{
		0.5, 0.5, 0.0, 1.0, 1.0, // top right
		0.5, -0.5, 0.0, 1.0, 0.0, // bottom right
		-0.5, -0.5, 0.0, 0.0, 0.0, // bottom left
		-0.5, 0.5, 0.0, 0.0, 1.0, // top left
	}
	indices := []uint32{
		0, 1, 3,
		1, 2, 3,
	}
	layout := []geometry.Attrib{{Index: 0, Size: 3}, {Index: 1, Size: 2}}
	mesh := geometry.NewMesh(ctx, vertices, layout, indices)
	defer mesh.Delete()

	for !ctx.ShouldClose() {
		gl.ClearColor(0.2, 0.3, 0.3, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		program.Use()
		tex.Bind(0)
		program.SetInt("uTexture", 0)
		mesh.Draw()

		ctx.EndFrame()
	}
}
