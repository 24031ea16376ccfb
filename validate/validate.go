// Package validate checks shader source without a GPU by running the ANGLE
// shader translator. Input must be OpenGL ES 3.0 / WebGL2 source; a
// successful run also yields the equivalent desktop GLSL 4.10 text.
package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gst "github.com/richinsley/goshadertranslator"
)

var translator *gst.ShaderTranslator

// getTranslator lazily constructs the shared translator instance. It is not
// safe for concurrent use; the checker tool is single-threaded.
func getTranslator() (*gst.ShaderTranslator, error) {
	if translator == nil {
		var err error
		translator, err = gst.NewShaderTranslator(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to start shader translator: %w", err)
		}
	}
	return translator, nil
}

// CheckSource validates one shader stage ("vertex" or "fragment") and
// returns the translated desktop GLSL on success.
func CheckSource(source, stage string) (string, error) {
	tr, err := getTranslator()
	if err != nil {
		return "", err
	}
	shader, err := tr.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return "", fmt.Errorf("%s shader: %w", stage, err)
	}
	return shader.Code, nil
}

// StageForPath infers the shader stage from the file extension: .vert/.vs
// for vertex, .frag/.fs for fragment.
func StageForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".vs":
		return "vertex", nil
	case ".frag", ".fs":
		return "fragment", nil
	default:
		return "", fmt.Errorf("cannot infer shader stage from %q; use -stage", path)
	}
}

// CheckFile validates a shader file. When stage is empty it is inferred
// from the extension.
func CheckFile(path, stage string) (string, error) {
	if stage == "" {
		var err error
		stage, err = StageForPath(path)
		if err != nil {
			return "", err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return CheckSource(string(data), stage)
}
