package jsonschema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes a schema document. JSON is valid YAML, so both encodings are
// accepted; property declaration order is preserved either way.
func Parse(data []byte) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error()}}
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, Issues{{Path: "/", Code: CodeParseError, Message: "empty document"}}
		}
		root = root.Content[0]
	}
	d := &decoder{}
	s := d.schema(root, "")
	if len(d.issues) > 0 {
		return nil, d.issues
	}
	return s, nil
}

// FromMap builds a schema from an already-decoded generic value, such as a
// lookup result. Go maps carry no order, so properties come out sorted by name.
func FromMap(m map[string]any) (*Schema, error) {
	b, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: encode map: %w", err)
	}
	return Parse(b)
}

type decoder struct {
	issues Issues
}

func (d *decoder) fail(path, code, msg string) {
	if path == "" {
		path = "/"
	}
	d.issues = append(d.issues, Issue{Path: path, Code: code, Message: msg})
}

func (d *decoder) schema(n *yaml.Node, path string) *Schema {
	n = deref(n)
	if n.Kind != yaml.MappingNode {
		d.fail(path, CodeInvalidType, "schema must be an object")
		return nil
	}
	s := &Schema{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := deref(n.Content[i+1])
		at := pointer(path, key)
		switch key {
		case "type":
			s.Type = d.typeName(val, at)
		case "title":
			s.Title = d.str(val, at)
		case "description":
			s.Description = d.str(val, at)
		case "$ref":
			s.Ref = d.str(val, at)
		case "x-display":
			s.Display = d.str(val, at)
		case "x-ref-type":
			s.RefType = d.str(val, at)
		case "x-primary-key":
			s.PrimaryKey = d.str(val, at)
		case "properties":
			s.Properties = d.properties(val, at)
		case "items":
			if val.Kind == yaml.SequenceNode {
				d.fail(at, CodeUnsupported, "tuple items are not supported")
				continue
			}
			s.Items = d.schema(val, at)
		case "enum":
			s.Enum = d.enum(val, at)
		case "definitions", "$defs":
			defs := d.definitions(val, at)
			if s.Definitions == nil {
				s.Definitions = defs
				continue
			}
			for k, v := range defs {
				if _, ok := s.Definitions[k]; !ok {
					s.Definitions[k] = v
				}
			}
		}
	}
	return s
}

func (d *decoder) str(n *yaml.Node, path string) string {
	if n.Kind != yaml.ScalarNode {
		d.fail(path, CodeInvalidType, "expected a string")
		return ""
	}
	return n.Value
}

// typeName accepts a single type or a type list; in a list the first
// non-null entry wins.
func (d *decoder) typeName(n *yaml.Node, path string) string {
	if n.Kind != yaml.SequenceNode {
		return d.str(n, path)
	}
	for _, c := range n.Content {
		c = deref(c)
		if c.Kind == yaml.ScalarNode && c.Value != "null" {
			return c.Value
		}
	}
	return ""
}

func (d *decoder) properties(n *yaml.Node, path string) *Properties {
	if n.Kind != yaml.MappingNode {
		d.fail(path, CodeInvalidType, "properties must be an object")
		return nil
	}
	props := NewProperties()
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		if child := d.schema(n.Content[i+1], pointer(path, name)); child != nil {
			props.Set(name, child)
		}
	}
	return props
}

func (d *decoder) definitions(n *yaml.Node, path string) map[string]*Schema {
	if n.Kind != yaml.MappingNode {
		d.fail(path, CodeInvalidType, "definitions must be an object")
		return nil
	}
	defs := make(map[string]*Schema, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		if child := d.schema(n.Content[i+1], pointer(path, name)); child != nil {
			defs[name] = child
		}
	}
	return defs
}

func (d *decoder) enum(n *yaml.Node, path string) []any {
	if n.Kind != yaml.SequenceNode {
		d.fail(path, CodeInvalidType, "enum must be an array")
		return nil
	}
	out := make([]any, 0, len(n.Content))
	for i, c := range n.Content {
		var v any
		if err := deref(c).Decode(&v); err != nil {
			d.fail(fmt.Sprintf("%s/%d", path, i), CodeParseError, err.Error())
			continue
		}
		out = append(out, Normalize(v))
	}
	return out
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// Normalize rewrites a YAML-decoded value into JSON shapes: integers become
// float64 and map keys become strings.
func Normalize(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	}
	return v
}
