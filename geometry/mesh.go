// Package geometry uploads static vertex/index data and wraps the VAO
// bookkeeping the exercises share.
package geometry

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	graphics "github.com/glsteps/glsteps/graphics"
)

// Attrib describes one vertex attribute in a tightly packed float32 layout:
// the shader location and the number of floats.
type Attrib struct {
	Index uint32
	Size  int32
}

// Mesh owns a VAO plus its vertex buffer and, when indexed, its element
// buffer. The vertex data is uploaded once with STATIC_DRAW; a Mesh is not
// meant for streaming geometry.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
}

// NewMesh uploads vertices (interleaved float32, layout as given) and
// optional indices, and records the attribute pointers in a fresh VAO. Pass
// nil indices for a non-indexed mesh drawn with DrawArrays. The ctx
// argument pins the call to the context that must be current.
func NewMesh(_ graphics.Context, vertices []float32, layout []Attrib, indices []uint32) *Mesh {
	m := &Mesh{}

	var stride int32
	for _, a := range layout {
		stride += a.Size
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	if len(indices) > 0 {
		m.indexed = true
		m.count = int32(len(indices))
		gl.GenBuffers(1, &m.ebo)
		// The element buffer binding is recorded in the VAO, so it
		// must stay bound while the VAO is.
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	} else {
		m.count = int32(len(vertices)) / stride
	}

	var offset int32
	for _, a := range layout {
		gl.VertexAttribPointer(a.Index, a.Size, gl.FLOAT, false, stride*4, gl.PtrOffset(int(offset)*4))
		gl.EnableVertexAttribArray(a.Index)
		offset += a.Size
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return m
}

// Draw binds the VAO and issues the draw call for the whole mesh.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// Delete releases the VAO and its buffers.
func (m *Mesh) Delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	if m.indexed {
		gl.DeleteBuffers(1, &m.ebo)
	}
}

// fullscreenQuadVertices covers clip space with two triangles.
var fullscreenQuadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// NewFullscreenQuad returns a mesh covering the whole viewport with a
// single vec2 position attribute at location 0.
func NewFullscreenQuad(ctx graphics.Context) *Mesh {
	return NewMesh(ctx, fullscreenQuadVertices, []Attrib{{Index: 0, Size: 2}}, nil)
}
