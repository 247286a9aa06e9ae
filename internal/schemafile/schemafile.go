// Package schemafile loads a form schema document from disk.
package schemafile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/skemaform/cueschema"
	"github.com/reoring/skemaform/jsonschema"
)

// ErrNoExpr is returned for CUE input without an expression to select.
var ErrNoExpr = errors.New("schemafile: CUE input needs an expression such as #Person")

// Load reads path by extension: .json, .yaml and .yml are schema documents,
// .cue files and directories are CUE evaluated at expr.
func Load(path, expr string) (*jsonschema.Schema, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if info.IsDir() {
		if expr == "" {
			return nil, ErrNoExpr
		}
		return cueschema.Load(path, expr)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		s, err := jsonschema.Parse(b)
		if err != nil {
			return nil, fmt.Errorf("schemafile: %s: %w", path, err)
		}
		return s, nil
	case ".cue":
		if expr == "" {
			return nil, ErrNoExpr
		}
		return cueschema.Compile(b, expr)
	}
	return nil, fmt.Errorf("schemafile: unsupported extension %q", filepath.Ext(path))
}
