package skemaform

// ObjectField renders one child per declared property, in declaration order.
// A child edit replaces only that property.
type ObjectField struct {
	base
	schema   *Object
	value    map[string]any
	order    []string
	children map[string]node
}

func newObjectField(e *env, name string, ptr pointer, s *Object, value any, onChange func(any)) *ObjectField {
	f := &ObjectField{
		base:     newBase(e, name, ptr, s.Title, onChange),
		children: map[string]node{},
	}
	f.update(s, value)
	return f
}

func (f *ObjectField) Kind() FieldKind { return FieldObject }

// Schema returns the object schema being rendered.
func (f *ObjectField) Schema() *Object { return f.schema }

// Value returns the current record; nil when absent.
func (f *ObjectField) Value() map[string]any { return f.value }

// Fields returns the mounted children in property order. Properties whose
// schema renders nothing are skipped.
func (f *ObjectField) Fields() []Field {
	out := make([]Field, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.children[name])
	}
	return out
}

// Field returns the child mounted for property name.
func (f *ObjectField) Field(name string) (Field, bool) {
	c, ok := f.children[name]
	if !ok {
		return nil, false
	}
	return c, true
}

func (f *ObjectField) set(name string, v any) {
	f.emit(withKey(f.value, name, v))
}

func (f *ObjectField) update(schema Node, value any) {
	f.schema = schema.(*Object)
	f.value = asMap(value)
	f.retitle(f.schema.Title)

	seen := make(map[string]bool, len(f.schema.Properties))
	order := make([]string, 0, len(f.schema.Properties))
	for _, p := range f.schema.Properties {
		name := p.Name
		seen[name] = true
		child := f.env.reconcile(f.children[name], name, f.ptr.Field(name), p.Schema, f.value[name],
			func(v any) { f.set(name, v) })
		if child == nil {
			delete(f.children, name)
			continue
		}
		f.children[name] = child
		order = append(order, name)
	}
	for name, c := range f.children {
		if !seen[name] {
			c.unmount()
			delete(f.children, name)
		}
	}
	f.order = order
}

func (f *ObjectField) unmount() {
	for _, c := range f.children {
		c.unmount()
	}
}
