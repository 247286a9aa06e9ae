package skemaform

// ListField renders one child per element and edits the list by position.
type ListField struct {
	base
	schema *Array
	value  []any
	items  []node
}

func newListField(e *env, name string, ptr pointer, s *Array, value any, onChange func(any)) *ListField {
	f := &ListField{base: newBase(e, name, ptr, s.Title, onChange)}
	f.update(s, value)
	return f
}

func (f *ListField) Kind() FieldKind { return FieldList }

// Schema returns the array schema being rendered.
func (f *ListField) Schema() *Array { return f.schema }

// Value returns the current list.
func (f *ListField) Value() []any { return f.value }

// Len is the number of elements.
func (f *ListField) Len() int { return len(f.value) }

// Simple reports whether items are scalars edited inline.
func (f *ListField) Simple() bool { return f.schema.Item.Class() == ClassPrimitive }

// Items returns one field per element. An entry is nil when the item schema
// renders nothing.
func (f *ListField) Items() []Field {
	out := make([]Field, len(f.items))
	for i, it := range f.items {
		if it != nil {
			out[i] = it
		}
	}
	return out
}

// Item returns the field of element i.
func (f *ListField) Item(i int) (Field, bool) {
	if i < 0 || i >= len(f.items) || f.items[i] == nil {
		return nil, false
	}
	return f.items[i], true
}

// Add appends a blank element of the item's shape.
func (f *ListField) Add() {
	f.emit(appended(f.value, blankOf(f.schema.Item)))
}

// Remove drops element i.
func (f *ListField) Remove(i int) error {
	if i < 0 || i >= len(f.value) {
		return fieldErr("remove", f.Path(), ErrIndexOutOfRange)
	}
	f.emit(withoutIndex(f.value, i))
	return nil
}

func (f *ListField) setAt(i int, v any) {
	if i >= len(f.value) {
		return
	}
	f.emit(withIndex(f.value, i, v))
}

func (f *ListField) update(schema Node, value any) {
	f.schema = schema.(*Array)
	f.value = asList(value)
	f.retitle(f.schema.Title)

	items := make([]node, len(f.value))
	for i, v := range f.value {
		var old node
		if i < len(f.items) {
			old = f.items[i]
		}
		i := i
		items[i] = f.env.reconcile(old, itemName(f.name, i), f.ptr.Index(i), f.schema.Item, v,
			func(nv any) { f.setAt(i, nv) })
	}
	for j := len(f.value); j < len(f.items); j++ {
		if f.items[j] != nil {
			f.items[j].unmount()
		}
	}
	f.items = items
}

func (f *ListField) unmount() {
	for _, it := range f.items {
		if it != nil {
			it.unmount()
		}
	}
}

// blankOf is the value a new element starts with.
func blankOf(item Node) any {
	switch item.Class() {
	case ClassPrimitive:
		return ""
	case ClassArray:
		return []any{}
	}
	return map[string]any{}
}
