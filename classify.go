package skemaform

import "github.com/reoring/skemaform/jsonschema"

// Classify reports the class of a schema node without looking at any data.
// A $ref on the node or on its items wins over the type keyword.
func Classify(s *jsonschema.Schema) Class {
	if s == nil {
		return ClassUnknown
	}
	if ref, _ := s.EffectiveRef(); ref != "" {
		return ClassReference
	}
	switch s.Type {
	case "string", "number", "integer", "boolean":
		return ClassPrimitive
	case "object":
		return ClassObject
	case "array":
		return ClassArray
	}
	return ClassUnknown
}

// Compile converts a schema document into a node tree. References are not
// followed; the document's definitions only supply their static shape.
func Compile(doc *jsonschema.Schema) Node {
	c := compiler{root: doc}
	return c.node(doc)
}

type compiler struct {
	root *jsonschema.Schema
}

func (c *compiler) node(s *jsonschema.Schema) Node {
	switch Classify(s) {
	case ClassReference:
		return c.reference(s)
	case ClassPrimitive:
		return &Primitive{
			Type:        PrimitiveType(s.Type),
			Title:       s.Title,
			Description: s.Description,
			Enum:        s.Enum,
			PrimaryKey:  s.PrimaryKey,
		}
	case ClassObject:
		o := &Object{Title: s.Title, Description: s.Description, PrimaryKey: s.PrimaryKey}
		for _, name := range s.Properties.Names() {
			ps, _ := s.Properties.Get(name)
			o.Properties = append(o.Properties, Property{Name: name, Schema: c.node(ps)})
		}
		return o
	case ClassArray:
		return &Array{
			Title:       s.Title,
			Description: s.Description,
			Item:        c.node(s.Items),
			Display:     displayOf(s.Display),
		}
	}
	if s == nil {
		return &Unknown{}
	}
	return &Unknown{Type: s.Type, Title: s.Title}
}

func (c *compiler) reference(s *jsonschema.Schema) *Reference {
	ref, fromItems := s.EffectiveRef()
	pk := s.PrimaryKey
	if fromItems && s.Items.PrimaryKey != "" {
		pk = s.Items.PrimaryKey
	}
	target := jsonschema.RefKey(ref)
	def, _ := c.root.Definition(target)
	return &Reference{
		Target:      target,
		Title:       s.Title,
		Description: s.Description,
		Mode:        modeOf(s.RefType),
		Display:     displayOf(s.Display),
		PrimaryKey:  pk,
		Collection:  fromItems || s.Type == "array",
		Definition:  def,
	}
}

func displayOf(v string) Display {
	switch v {
	case jsonschema.DisplayTable:
		return DisplayTable
	case jsonschema.DisplayMultiSelect:
		return DisplayMultiSelect
	}
	return DisplayDefault
}

func modeOf(v string) RefMode {
	if v == jsonschema.RefTypeValue {
		return ModeValue
	}
	return ModeReference
}
