package jsonschema

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
)

// MarshalJSON encodes the schema with properties in declaration order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	w := &objectWriter{}
	w.str("type", s.Type)
	w.str("title", s.Title)
	w.str("description", s.Description)
	w.str("$ref", s.Ref)
	if s.Properties.Len() > 0 {
		w.field("properties", s.Properties)
	}
	if s.Items != nil {
		w.field("items", s.Items)
	}
	if len(s.Enum) > 0 {
		w.field("enum", s.Enum)
	}
	w.str("x-display", s.Display)
	w.str("x-ref-type", s.RefType)
	w.str("x-primary-key", s.PrimaryKey)
	if len(s.Definitions) > 0 {
		keys := make([]string, 0, len(s.Definitions))
		for k := range s.Definitions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		defs := &objectWriter{}
		for _, k := range keys {
			defs.field(k, s.Definitions[k])
		}
		raw, err := defs.bytes()
		if err != nil {
			return nil, err
		}
		w.field("definitions", json.RawMessage(raw))
	}
	return w.bytes()
}

// MarshalJSON encodes the properties as an object in declaration order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	w := &objectWriter{}
	for _, name := range p.Names() {
		w.field(name, p.byName[name])
	}
	return w.bytes()
}

type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func (w *objectWriter) str(key, v string) {
	if v != "" {
		w.field(key, v)
	}
}

func (w *objectWriter) field(key string, v any) {
	if w.err != nil {
		return
	}
	k, err := json.Marshal(key)
	if err != nil {
		w.err = err
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		w.err = err
		return
	}
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.n++
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(b)
}

func (w *objectWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.n == 0 {
		return []byte("{}"), nil
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}
