package schemafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skemaform/jsonschema"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_ByExtension(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		expr string
	}{
		{"json", "person.json", `{"type":"object","properties":{"name":{"type":"string"},"age":{"type":"number"}}}`, ""},
		{"yaml", "person.yaml", "type: object\nproperties:\n  name:\n    type: string\n  age:\n    type: number\n", ""},
		{"cue", "person.cue", "#Person: {\n\tname: string\n\tage: number\n}\n", "#Person"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(write(t, tt.file, tt.body), tt.expr)
			require.NoError(t, err)
			assert.Equal(t, "object", s.Type)
			assert.Equal(t, []string{"name", "age"}, s.Properties.Names())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(write(t, "person.cue", "#Person: {name: string}\n"), "")
	assert.ErrorIs(t, err, ErrNoExpr)

	_, err = Load(write(t, "person.txt", "x"), "")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.Error(t, err)

	_, err = Load(write(t, "bad.json", `{"properties": [1]}`), "")
	var issues jsonschema.Issues
	assert.ErrorAs(t, err, &issues)
}
