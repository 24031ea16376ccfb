package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSourceMissingFile(t *testing.T) {
	var diags []Diagnostic
	src := loadSource(filepath.Join(t.TempDir(), "nope.vert"), StageVertex, &diags)

	assert.Equal(t, "", src, "unreadable file must yield empty source")
	require.Len(t, diags, 1)
	assert.Equal(t, DiagFileRead, diags[0].Kind)
	assert.Equal(t, StageVertex, diags[0].Stage)
	assert.NotEmpty(t, diags[0].Path)
	assert.NotEmpty(t, diags[0].Log)
}

func TestLoadSourceReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.frag")
	require.NoError(t, os.WriteFile(path, []byte("void main() {}"), 0o644))

	var diags []Diagnostic
	src := loadSource(path, StageFragment, &diags)

	assert.Equal(t, "void main() {}", src)
	assert.Empty(t, diags)
}

func TestDiagnosticString(t *testing.T) {
	assert.Equal(t,
		"vertex shader file-read: no such file",
		Diagnostic{Stage: StageVertex, Kind: DiagFileRead, Path: "a.vert", Log: "no such file"}.String())
	assert.Equal(t,
		"fragment shader compile: 0:1: syntax error",
		Diagnostic{Stage: StageFragment, Kind: DiagCompile, Log: "0:1: syntax error"}.String())
	assert.Equal(t,
		"program link: missing main",
		Diagnostic{Kind: DiagLink, Log: "missing main"}.String())
}

func TestBuildErrorAggregates(t *testing.T) {
	err := &BuildError{Diagnostics: []Diagnostic{
		{Stage: StageVertex, Kind: DiagCompile, Log: "bad vertex"},
		{Kind: DiagLink, Log: "bad link"},
	}}
	msg := err.Error()
	assert.Contains(t, msg, "vertex shader compile: bad vertex")
	assert.Contains(t, msg, "program link: bad link")
}

func TestTrimLog(t *testing.T) {
	assert.Equal(t, "error", trimLog("error\x00\x00"))
	assert.Equal(t, "error", trimLog("error\n\x00"))
	assert.Equal(t, "", trimLog("\x00"))
}

func TestStageGLType(t *testing.T) {
	assert.NotEqual(t, StageVertex.glType(), StageFragment.glType())
}
