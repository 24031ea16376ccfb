// Package shader builds linked GL programs from vertex/fragment source
// pairs and exposes the uniform setters the exercises need.
package shader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	graphics "github.com/glsteps/glsteps/graphics"
)

// Stage identifies a shader pipeline stage.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
)

func (s Stage) glType() uint32 {
	if s == StageVertex {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

// DiagKind classifies a build diagnostic.
type DiagKind int

const (
	// DiagFileRead means a shader source file could not be read. The
	// build continues with an empty source for that stage, so a
	// DiagCompile for the same stage usually follows.
	DiagFileRead DiagKind = iota
	// DiagCompile means a stage failed to compile.
	DiagCompile
	// DiagLink means the program failed to link.
	DiagLink
)

func (k DiagKind) String() string {
	switch k {
	case DiagFileRead:
		return "file-read"
	case DiagCompile:
		return "compile"
	default:
		return "link"
	}
}

// Diagnostic is one reported build failure. Stage is empty for link
// diagnostics, Path is set only for file-read diagnostics.
type Diagnostic struct {
	Stage Stage
	Kind  DiagKind
	Path  string
	Log   string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagFileRead:
		return fmt.Sprintf("%s shader %s: %s", d.Stage, d.Kind, d.Log)
	case DiagCompile:
		return fmt.Sprintf("%s shader %s: %s", d.Stage, d.Kind, d.Log)
	default:
		return fmt.Sprintf("program %s: %s", d.Kind, d.Log)
	}
}

// BuildError aggregates every diagnostic from one build run. The build does
// not stop at the first failure: a broken vertex stage still lets the
// fragment stage compile and the link be attempted, so a single run reports
// all independent failures at once.
type BuildError struct {
	Diagnostics []Diagnostic
}

func (e *BuildError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.String()
	}
	return "shader build failed: " + strings.Join(msgs, "; ")
}

// Program owns a linked GL program object. A Program is only ever returned
// for a build in which both stages compiled and the link succeeded.
type Program struct {
	handle uint32
}

// Build reads, compiles and links a vertex/fragment pair from the given
// file paths. An unreadable file is reported and the stage compiled as
// empty source; compile and link failures are collected rather than
// aborting, and the returned *BuildError carries every diagnostic from the
// run. The ctx argument pins the call to the rendering context the caller
// owns; it must be current on the calling thread.
func Build(ctx graphics.Context, vertexPath, fragmentPath string) (*Program, error) {
	var diags []Diagnostic

	vertexSrc := loadSource(vertexPath, StageVertex, &diags)
	fragmentSrc := loadSource(fragmentPath, StageFragment, &diags)

	return buildProgram(ctx, vertexSrc, fragmentSrc, diags)
}

// BuildSource is Build for in-memory GLSL, as the early exercises inline
// their shaders instead of loading them from disk.
func BuildSource(ctx graphics.Context, vertexSrc, fragmentSrc string) (*Program, error) {
	return buildProgram(ctx, vertexSrc, fragmentSrc, nil)
}

func loadSource(path string, stage Stage, diags *[]Diagnostic) string {
	data, err := os.ReadFile(path)
	if err != nil {
		report(diags, Diagnostic{Stage: stage, Kind: DiagFileRead, Path: path, Log: err.Error()})
		return ""
	}
	return string(data)
}

func buildProgram(_ graphics.Context, vertexSrc, fragmentSrc string, diags []Diagnostic) (*Program, error) {
	vertexShader := compileStage(vertexSrc, StageVertex, &diags)
	fragmentShader := compileStage(fragmentSrc, StageFragment, &diags)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		report(&diags, Diagnostic{Kind: DiagLink, Log: trimLog(logText)})
	}

	// The stage objects are attached to the program now and no longer
	// needed on their own, whether or not the link succeeded.
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	if len(diags) > 0 {
		gl.DeleteProgram(program)
		return nil, &BuildError{Diagnostics: diags}
	}
	return &Program{handle: program}, nil
}

// compileStage always returns a shader object handle so the link can be
// attempted even after a compile failure, matching the collect-everything
// error policy.
func compileStage(source string, stage Stage, diags *[]Diagnostic) uint32 {
	shader := gl.CreateShader(stage.glType())
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		report(diags, Diagnostic{Stage: stage, Kind: DiagCompile, Log: trimLog(logText)})
	}
	return shader
}

func report(diags *[]Diagnostic, d Diagnostic) {
	log.Printf("%s", d)
	*diags = append(*diags, d)
}

func trimLog(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

// Use binds the program for subsequent draw calls.
func (p *Program) Use() {
	gl.UseProgram(p.handle)
}

// Delete releases the GL program object. The Program must not be used
// afterwards.
func (p *Program) Delete() {
	gl.DeleteProgram(p.handle)
}

// Handle returns the raw GL program object for calls the wrapper does not
// cover.
func (p *Program) Handle() uint32 {
	return p.handle
}

// location resolves a uniform name on every call; -1 means the name is not
// an active uniform and the write is dropped.
func (p *Program) location(name string) int32 {
	return gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
}

// SetBool sets a bool uniform. The program must be bound with Use first;
// the setters do not check which program is active. A name that is not an
// active uniform is silently ignored.
func (p *Program) SetBool(name string, value bool) {
	v := int32(0)
	if value {
		v = 1
	}
	p.SetInt(name, v)
}

// SetInt sets an int (or sampler) uniform. Same binding convention as
// SetBool.
func (p *Program) SetInt(name string, value int32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform1i(loc, value)
	}
}

// SetFloat sets a float uniform. Same binding convention as SetBool.
func (p *Program) SetFloat(name string, value float32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform1f(loc, value)
	}
}

// SetVec3 sets a vec3 uniform. Same binding convention as SetBool.
func (p *Program) SetVec3(name string, value mgl32.Vec3) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform3f(loc, value.X(), value.Y(), value.Z())
	}
}

// SetMat4 sets a mat4 uniform. Same binding convention as SetBool.
func (p *Program) SetMat4(name string, value mgl32.Mat4) {
	if loc := p.location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}
