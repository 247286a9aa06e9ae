// Package cueschema derives form schemas from CUE definitions.
//
// Fields map by kind: structs become objects (declaration order kept),
// lists become arrays, string disjunctions become enums. A field attribute
// adds the form extensions:
//
//	skills: [...string] @form(ref=skill, display=multiselect, pk=id)
//	address: {...}      @form(ref=address, mode=value, title="Address")
//
// Keys: title, description, ref, display, mode, pk. A ref turns the field
// into a $ref to #/definitions/<ref>; on a list the ref goes on the items.
// Doc comments fill in a missing description.
package cueschema

import (
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/reoring/skemaform/jsonschema"
)

// Compile evaluates CUE source and converts the value at expr, for example
// "#Person".
func Compile(src []byte, expr string) (*jsonschema.Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("cueschema: compile: %w", err)
	}
	return FromValue(v, expr)
}

// Load builds the CUE package in dir and converts the value at expr.
func Load(dir, expr string) (*jsonschema.Schema, error) {
	insts := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(insts) == 0 {
		return nil, errors.New("cueschema: no CUE instance found")
	}
	if err := insts[0].Err; err != nil {
		return nil, fmt.Errorf("cueschema: load %s: %w", dir, err)
	}
	v := cuecontext.New().BuildInstance(insts[0])
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("cueschema: build %s: %w", dir, err)
	}
	return FromValue(v, expr)
}

// FromValue converts the value at expr under root. Every definition of root
// is exported under definitions, keyed by its name without "#".
func FromValue(root cue.Value, expr string) (*jsonschema.Schema, error) {
	target := root.LookupPath(cue.ParsePath(expr))
	if err := target.Err(); err != nil {
		return nil, fmt.Errorf("cueschema: lookup %s: %w", expr, err)
	}
	s := convert(target)
	if s == nil {
		return nil, fmt.Errorf("cueschema: %s has no form representation", expr)
	}
	iter, err := root.Fields(cue.Definitions(true))
	if err != nil {
		return nil, fmt.Errorf("cueschema: definitions: %w", err)
	}
	for iter.Next() {
		if !iter.Selector().IsDefinition() {
			continue
		}
		def := convert(iter.Value())
		if def == nil {
			continue
		}
		if s.Definitions == nil {
			s.Definitions = map[string]*jsonschema.Schema{}
		}
		s.Definitions[strings.TrimPrefix(iter.Selector().String(), "#")] = def
	}
	return s, nil
}

func convert(v cue.Value) *jsonschema.Schema {
	a := attrsOf(v)
	var s *jsonschema.Schema
	if ref := a["ref"]; ref != "" {
		s = reference(v, ref, a)
	} else {
		s = shape(v)
	}
	if s == nil {
		return nil
	}
	s.Title = a["title"]
	s.Description = a["description"]
	if s.Description == "" {
		s.Description = docOf(v)
	}
	if d := a["display"]; d != "" {
		s.Display = d
	}
	return s
}

func reference(v cue.Value, ref string, a map[string]string) *jsonschema.Schema {
	target := &jsonschema.Schema{Ref: "#/definitions/" + ref}
	if a["mode"] != "" {
		target.RefType = a["mode"]
	}
	if !isList(v) {
		target.PrimaryKey = a["pk"]
		return target
	}
	// the mode travels with the field, the identity with the items
	items := &jsonschema.Schema{Ref: target.Ref, PrimaryKey: a["pk"]}
	return &jsonschema.Schema{Type: "array", Items: items, RefType: target.RefType}
}

func shape(v cue.Value) *jsonschema.Schema {
	if isList(v) {
		items := &jsonschema.Schema{Type: "string"}
		if elem := v.LookupPath(cue.MakePath(cue.AnyIndex)); elem.Err() == nil {
			if s := convert(elem); s != nil {
				items = s
			}
		}
		return &jsonschema.Schema{Type: "array", Items: items}
	}
	if isEnum(v) {
		vals := extractEnumValues(v)
		enum := make([]any, len(vals))
		for i, s := range vals {
			enum[i] = s
		}
		return &jsonschema.Schema{Type: "string", Enum: enum}
	}
	kind := v.IncompleteKind()
	if kind == cue.BottomKind {
		kind = inferKindFromExpr(v)
	}
	switch kind {
	case cue.StructKind:
		return object(v)
	case cue.StringKind:
		return &jsonschema.Schema{Type: "string"}
	case cue.IntKind:
		return &jsonschema.Schema{Type: "integer"}
	case cue.FloatKind, cue.NumberKind:
		return &jsonschema.Schema{Type: "number"}
	case cue.BoolKind:
		return &jsonschema.Schema{Type: "boolean"}
	}
	return nil
}

func object(v cue.Value) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		return s
	}
	for iter.Next() {
		label := strings.TrimSuffix(iter.Selector().String(), "?")
		if strings.HasPrefix(label, "_") {
			continue
		}
		if child := convert(iter.Value()); child != nil {
			s.Properties.Set(label, child)
		}
	}
	return s
}

func isList(v cue.Value) bool {
	return v.IncompleteKind() == cue.ListKind || inferKindFromExpr(v) == cue.ListKind
}

// attrsOf reads the @form(...) attribute keys of a field.
func attrsOf(v cue.Value) map[string]string {
	out := map[string]string{}
	a := v.Attribute("form")
	if a.Err() != nil {
		return out
	}
	for _, key := range []string{"title", "description", "ref", "display", "mode", "pk"} {
		val, found, err := a.Lookup(0, key)
		if err != nil || !found {
			continue
		}
		out[key] = strings.Trim(val, `"`)
	}
	return out
}

func docOf(v cue.Value) string {
	var parts []string
	for _, cg := range v.Doc() {
		if t := strings.TrimSpace(cg.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func isEnum(val cue.Value) bool {
	op, args := val.Expr()
	if op != cue.OrOp || len(args) < 2 {
		return false
	}
	for _, a := range args {
		check := a
		aOp, aArgs := a.Expr()
		if aOp == cue.SelectorOp && len(aArgs) > 0 {
			check = aArgs[0]
		}
		if check.IncompleteKind() != cue.StringKind {
			return false
		}
		if _, err := check.String(); err != nil {
			if d, ok := check.Default(); ok {
				if _, err := d.String(); err != nil {
					return false
				}
			} else {
				return false
			}
		}
	}
	return true
}

func extractEnumValues(val cue.Value) []string {
	op, args := val.Expr()
	if op != cue.OrOp {
		return nil
	}
	var values []string
	for _, arg := range args {
		if s, err := arg.String(); err == nil {
			values = append(values, s)
			continue
		}
		if d, ok := arg.Default(); ok {
			if s, err := d.String(); err == nil {
				values = append(values, s)
			}
		}
	}
	return values
}

func inferKindFromExpr(val cue.Value) cue.Kind {
	op, args := val.Expr()
	if op == cue.AndOp || op == cue.OrOp {
		for _, a := range args {
			if k := a.IncompleteKind(); k != cue.BottomKind {
				return k
			}
			if k := inferKindFromExpr(a); k != cue.BottomKind {
				return k
			}
		}
	}
	return cue.BottomKind
}
