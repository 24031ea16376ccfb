// Exercise 3: draw a rectangle from four vertices through an index buffer.
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
)

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 aPos;
void main() {
    gl_Position = vec4(aPos, 1.0);
}
`

const fragmentShaderSource = `#version 410 core
out vec4 FragColor;
void main() {
    FragColor = vec4(1.0, 0.5, 0.2, 1.0);
}
`

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.RegisterFlags("glsteps: quad")
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

	program, err := shader.BuildSource(ctx, vertexShaderSource, fragmentShaderSource)
	if err != nil {
		log.Fatalf("Failed to build shader program: %v", err)
	}
	defer program.Delete()

	vertices := []float32{
		0.5, 0.5, 0.0, // top right
		0.5, -0.5, 0.0, // bottom right
		-0.5, -0.5, 0.0, // bottom left
		-0.5, 0.5, 0.0, // top left
	}
	indices := []uint32{
		0, 1, 3, // first triangle
		1, 2, 3, // second triangle
	}
	mesh := geometry.NewMesh(ctx, vertices, []geometry.Attrib{{Index: 0, Size: 3}}, indices)
	defer mesh.Delete()

	if *opts.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	for !ctx.ShouldClose() {
		gl.ClearColor(0.2, 0.3, 0.3, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		program.Use()
		mesh.Draw()

		ctx.EndFrame()
	}
}
