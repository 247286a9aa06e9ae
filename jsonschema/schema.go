package jsonschema

// Schema is the extended JSON Schema node consumed by the form engine.
// Only the keywords that drive field resolution are modelled; unknown
// keywords are ignored on parse.
type Schema struct {
	// Core
	Type        string
	Title       string
	Description string
	Ref         string // $ref

	// Object
	Properties *Properties

	// Array
	Items *Schema

	// Primitive
	Enum []any

	// Extensions
	Display    string // x-display
	RefType    string // x-ref-type
	PrimaryKey string // x-primary-key

	// Definitions holds reusable schemas declared under definitions or $defs.
	Definitions map[string]*Schema
}

// Extension values understood by the engine.
const (
	DisplayTable       = "table"
	DisplayMultiSelect = "multiselect"

	RefTypeReference = "reference"
	RefTypeValue     = "value"
)

// Properties is an ordered property map. Declaration order is the render
// order of an object's children.
type Properties struct {
	names  []string
	byName map[string]*Schema
}

// NewProperties returns an empty ordered property map.
func NewProperties() *Properties {
	return &Properties{byName: map[string]*Schema{}}
}

// Set adds name at the end, or replaces it in place when already present.
func (p *Properties) Set(name string, s *Schema) {
	if p.byName == nil {
		p.byName = map[string]*Schema{}
	}
	if _, ok := p.byName[name]; !ok {
		p.names = append(p.names, name)
	}
	p.byName[name] = s
}

// Get returns the schema declared for name.
func (p *Properties) Get(name string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.byName[name]
	return s, ok
}

// Names returns property names in declaration order.
func (p *Properties) Names() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.names...)
}

// Len reports the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}
