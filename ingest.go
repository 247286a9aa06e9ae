package skemaform

import (
	"sort"

	"github.com/reoring/skemaform/jsonschema"
)

// binding is the runtime state of a reference: candidate options plus the
// working schema inferred from the lookup result.
type binding struct {
	loading bool
	options []Entry
	working Node
}

// ingest interprets a lookup result for ref. Lists become options, a schema
// with an enum yields options and a schema, any other map is a schema, and
// everything else yields nothing.
func (e *env) ingest(result any, ref *Reference) binding {
	switch t := normalizeValue(result).(type) {
	case []any:
		base := declaredObject(ref)
		pk := ref.PrimaryKey
		if pk == "" && base != nil {
			pk = base.PrimaryKey
		}
		if pk == "" {
			pk = e.opts.DefaultPrimaryKey
		}
		opts := make([]Entry, 0, len(t))
		for _, v := range t {
			if ent, ok := entryOf(v, pk); ok {
				opts = append(opts, ent)
			}
		}
		return binding{options: opts, working: inferObject(t, pk, base)}
	case map[string]any:
		working := compileMap(t)
		enum, ok := t["enum"].([]any)
		if !ok {
			return binding{working: working}
		}
		idKey, nameKey := e.opts.DefaultPrimaryKey, e.opts.DisplayKey
		opts := make([]Entry, 0, len(enum))
		for _, v := range enum {
			opts = append(opts, Entity(map[string]any{idKey: v, nameKey: v}, idKey))
		}
		return binding{options: opts, working: working}
	}
	return binding{}
}

// declaredObject compiles the record shape the document declares for ref's
// target. Nested references stay unresolved.
func declaredObject(ref *Reference) *Object {
	if ref.Definition == nil {
		return nil
	}
	o, _ := Compile(ref.Definition).(*Object)
	return o
}

// inferObject derives a record schema from the first record of a list,
// starting from the declared shape when there is one. Declared properties
// keep their order and titles; sampled attributes follow in sorted order.
func inferObject(list []any, pk string, base *Object) Node {
	o := &Object{PrimaryKey: pk}
	if base != nil {
		o.Title, o.Description = base.Title, base.Description
		o.Properties = append(o.Properties, base.Properties...)
	}
	if len(list) == 0 {
		return o
	}
	first := asMap(list[0])
	names := make([]string, 0, len(first))
	for k := range first {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if _, ok := o.Property(k); ok {
			continue
		}
		o.Properties = append(o.Properties, Property{Name: k, Schema: inferNode(first[k])})
	}
	return o
}

func inferNode(v any) Node {
	switch v.(type) {
	case string:
		return &Primitive{Type: TypeString}
	case float64:
		return &Primitive{Type: TypeNumber}
	case bool:
		return &Primitive{Type: TypeBoolean}
	}
	return &Object{}
}

func compileMap(m map[string]any) Node {
	s, err := jsonschema.FromMap(m)
	if err != nil {
		return nil
	}
	return Compile(s)
}
