package skemaform

import "github.com/reoring/skemaform/jsonschema"

// Class identifies the structural class of a schema node.
type Class int

const (
	ClassUnknown Class = iota
	ClassPrimitive
	ClassObject
	ClassArray
	ClassReference
)

func (c Class) String() string {
	switch c {
	case ClassPrimitive:
		return "primitive"
	case ClassObject:
		return "object"
	case ClassArray:
		return "array"
	case ClassReference:
		return "reference"
	}
	return "unknown"
}

// PrimitiveType is a scalar JSON Schema type.
type PrimitiveType string

const (
	TypeString  PrimitiveType = "string"
	TypeNumber  PrimitiveType = "number"
	TypeInteger PrimitiveType = "integer"
	TypeBoolean PrimitiveType = "boolean"
)

// Display is the presentation override carried by x-display.
type Display int

const (
	DisplayDefault Display = iota
	DisplayTable
	DisplayMultiSelect
)

// RefMode is the value mode of a reference, from x-ref-type.
type RefMode int

const (
	// ModeReference stores identifiers of the referenced records.
	ModeReference RefMode = iota
	// ModeValue stores the referenced record itself, edited inline.
	ModeValue
)

func (m RefMode) String() string {
	if m == ModeValue {
		return jsonschema.RefTypeValue
	}
	return jsonschema.RefTypeReference
}

// Node is a compiled schema node: *Primitive, *Object, *Array, *Reference or
// *Unknown.
type Node interface {
	Class() Class
	heading() string
}

// Primitive is a scalar leaf.
type Primitive struct {
	Type        PrimitiveType
	Title       string
	Description string
	Enum        []any
	PrimaryKey  string
}

func (p *Primitive) Class() Class    { return ClassPrimitive }
func (p *Primitive) heading() string { return p.Title }

// Object is a record with ordered properties.
type Object struct {
	Title       string
	Description string
	Properties  []Property
	PrimaryKey  string
}

func (o *Object) Class() Class    { return ClassObject }
func (o *Object) heading() string { return o.Title }

// Property returns the schema declared for name.
func (o *Object) Property(name string) (Node, bool) {
	for _, p := range o.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// Property is one named child of an Object.
type Property struct {
	Name   string
	Schema Node
}

// Array is a homogeneous sequence.
type Array struct {
	Title       string
	Description string
	Item        Node
	Display     Display
}

func (a *Array) Class() Class    { return ClassArray }
func (a *Array) heading() string { return a.Title }

// Reference points at a shape resolved at runtime by a Lookup.
type Reference struct {
	// Target is the lookup key derived from the $ref pointer.
	Target      string
	Title       string
	Description string
	Mode        RefMode
	Display     Display
	// PrimaryKey is the declared identity attribute; empty when undeclared.
	PrimaryKey string
	// Collection is set when the reference came from an array's items.
	Collection bool
	// Definition is the static shape declared in the document, if any.
	Definition *jsonschema.Schema
}

func (r *Reference) Class() Class    { return ClassReference }
func (r *Reference) heading() string { return r.Title }

// Unknown is a node the engine does not render.
type Unknown struct {
	Type  string
	Title string
}

func (u *Unknown) Class() Class    { return ClassUnknown }
func (u *Unknown) heading() string { return u.Title }

// isSimpleEnum reports whether n is a scalar enumeration whose options are the
// bare enum values.
func isSimpleEnum(n Node) bool {
	p, ok := n.(*Primitive)
	if !ok || len(p.Enum) == 0 {
		return false
	}
	switch p.Type {
	case TypeString, TypeNumber, TypeBoolean:
		return true
	}
	return false
}

// primaryKeyOf returns the identity attribute a node declares.
func primaryKeyOf(n Node) string {
	switch t := n.(type) {
	case *Object:
		return t.PrimaryKey
	case *Primitive:
		return t.PrimaryKey
	case *Reference:
		return t.PrimaryKey
	}
	return ""
}
