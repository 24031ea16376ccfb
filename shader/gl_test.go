package shader_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsteps/glsteps/capture"
	"github.com/glsteps/glsteps/geometry"
	"github.com/glsteps/glsteps/glfwcontext"
	"github.com/glsteps/glsteps/options"
	"github.com/glsteps/glsteps/shader"
)

// These tests need a real GL context; they skip on machines without a
// display (headless CI).

var (
	glfwOnce sync.Once
	glfwErr  error
)

func newTestContext(t *testing.T) *glfwcontext.Context {
	t.Helper()
	runtime.LockOSThread()

	glfwOnce.Do(func() {
		glfwErr = glfw.Init()
	})
	if glfwErr != nil {
		t.Skipf("no display available: %v", glfwErr)
	}

	width, height, title := 64, 64, "shader test"
	opts := &options.Options{Width: &width, Height: &height, Title: &title}
	ctx, err := glfwcontext.New(opts, false)
	if err != nil {
		t.Skipf("cannot create GL context: %v", err)
	}
	ctx.MakeCurrent()
	if err := gl.Init(); err != nil {
		ctx.Shutdown()
		t.Skipf("cannot load GL: %v", err)
	}
	t.Cleanup(func() {
		glfw.DetachCurrentContext()
		ctx.Shutdown()
	})
	return ctx
}

const passthroughVertex = `#version 410 core
layout (location = 0) in vec2 aPos;
void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const redFragment = `#version 410 core
out vec4 FragColor;
void main() {
    FragColor = vec4(1.0, 0.0, 0.0, 1.0);
}
`

const brokenVertex = `#version 410 core
layout (location = 0) in vec2 aPos;
void main() {
    gl_Position = vec4(aPos, 0.0, 1.0)  // missing semicolon
}
`

func TestBuildSourceValidPair(t *testing.T) {
	ctx := newTestContext(t)

	program, err := shader.BuildSource(ctx, passthroughVertex, redFragment)
	require.NoError(t, err, "valid pair must build without diagnostics")
	defer program.Delete()

	program.Use()
	assert.NotZero(t, program.Handle())
}

func TestBuildBrokenVertexAttribution(t *testing.T) {
	ctx := newTestContext(t)

	program, err := shader.BuildSource(ctx, brokenVertex, redFragment)
	assert.Nil(t, program, "a failed build must not yield a usable handle")
	require.Error(t, err)

	var buildErr *shader.BuildError
	require.True(t, errors.As(err, &buildErr))

	compiles := 0
	for _, d := range buildErr.Diagnostics {
		if d.Kind == shader.DiagCompile {
			compiles++
			assert.Equal(t, shader.StageVertex, d.Stage,
				"compile diagnostic must be tagged with the failing stage")
			assert.NotEmpty(t, d.Log)
		}
	}
	assert.Equal(t, 1, compiles, "exactly one stage failed to compile")

	// Swapping in the corrected source must build cleanly, proving the
	// fragment stage was never the problem.
	fixed, err := shader.BuildSource(ctx, passthroughVertex, redFragment)
	require.NoError(t, err)
	fixed.Delete()
}

func TestBuildMissingFile(t *testing.T) {
	ctx := newTestContext(t)

	fragPath := filepath.Join(t.TempDir(), "red.frag")
	require.NoError(t, os.WriteFile(fragPath, []byte(redFragment), 0o644))

	program, err := shader.Build(ctx, filepath.Join(t.TempDir(), "missing.vert"), fragPath)
	assert.Nil(t, program)
	require.Error(t, err)

	var buildErr *shader.BuildError
	require.True(t, errors.As(err, &buildErr))

	require.NotEmpty(t, buildErr.Diagnostics)
	first := buildErr.Diagnostics[0]
	assert.Equal(t, shader.DiagFileRead, first.Kind)
	assert.Equal(t, shader.StageVertex, first.Stage)

	// The build carries on with empty source, so the read failure is
	// followed by at least one compile or link diagnostic.
	assert.Greater(t, len(buildErr.Diagnostics), 1)
}

func TestUniformReadback(t *testing.T) {
	ctx := newTestContext(t)

	frag := `#version 410 core
out vec4 FragColor;
uniform int uCount;
void main() {
    FragColor = vec4(float(uCount) / 10.0);
}
`
	program, err := shader.BuildSource(ctx, passthroughVertex, frag)
	require.NoError(t, err)
	defer program.Delete()

	program.Use()
	program.SetInt("uCount", 5)

	loc := gl.GetUniformLocation(program.Handle(), gl.Str("uCount\x00"))
	require.GreaterOrEqual(t, loc, int32(0))
	var got int32
	gl.GetUniformiv(program.Handle(), loc, &got)
	assert.Equal(t, int32(5), got)
}

func TestMissingUniformIsNoOp(t *testing.T) {
	ctx := newTestContext(t)

	program, err := shader.BuildSource(ctx, passthroughVertex, redFragment)
	require.NoError(t, err)
	defer program.Delete()

	program.Use()
	// Drain any stale error state before the call under test.
	for gl.GetError() != gl.NO_ERROR {
	}
	program.SetFloat("uDoesNotExist", 1.0)
	assert.Equal(t, uint32(gl.NO_ERROR), gl.GetError())
}

func TestRedQuadReadback(t *testing.T) {
	ctx := newTestContext(t)

	program, err := shader.BuildSource(ctx, passthroughVertex, redFragment)
	require.NoError(t, err)
	defer program.Delete()

	quad := geometry.NewFullscreenQuad(ctx)
	defer quad.Delete()

	fb, err := capture.NewFramebuffer(ctx, 64, 64)
	require.NoError(t, err)
	defer fb.Delete()

	fb.Bind()
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	program.Use()
	quad.Draw()
	fb.Unbind()

	img := fb.Image()
	c := img.RGBAAt(32, 32)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(255), c.A)
}
