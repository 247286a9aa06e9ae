package skemaform

// FieldKind identifies the renderable a field resolved to.
type FieldKind int

const (
	FieldNone FieldKind = iota
	FieldText
	FieldNumber
	FieldToggle
	FieldObject
	FieldList
	FieldTable
	FieldReference
	FieldSelect
	FieldMultiSelect
)

func (k FieldKind) String() string {
	switch k {
	case FieldText:
		return "text"
	case FieldNumber:
		return "number"
	case FieldToggle:
		return "toggle"
	case FieldObject:
		return "object"
	case FieldList:
		return "list"
	case FieldTable:
		return "table"
	case FieldReference:
		return "reference"
	case FieldSelect:
		return "select"
	case FieldMultiSelect:
		return "multiselect"
	}
	return "none"
}

// Field is a mounted, renderable node of a form. Concrete types are
// *TextField, *NumberField, *ToggleField, *ObjectField, *ListField,
// *TableField, *ReferenceField, *SelectField and *MultiSelectField.
type Field interface {
	Kind() FieldKind
	// Name is the property name, or name[i] for list items.
	Name() string
	// Label is the schema title, falling back to the name.
	Label() string
	// Path is the JSON Pointer of the field's value.
	Path() string
}

// node is a field the form can re-render with new props and tear down.
type node interface {
	Field
	update(schema Node, value any)
	unmount()
}

type base struct {
	env      *env
	name     string
	label    string
	ptr      pointer
	onChange func(any)
}

func newBase(e *env, name string, ptr pointer, title string, onChange func(any)) base {
	b := base{env: e, name: name, ptr: ptr, onChange: onChange}
	b.retitle(title)
	return b
}

func (b *base) Name() string  { return b.name }
func (b *base) Label() string { return b.label }
func (b *base) Path() string  { return b.ptr.String() }

func (b *base) retitle(title string) {
	b.label = title
	if b.label == "" {
		b.label = b.name
	}
}

// emit reports a new value to the parent. Callers emit last.
func (b *base) emit(v any) {
	if b.onChange != nil {
		b.onChange(v)
	}
}

// kindOf is the field kind resolve mounts for schema.
func kindOf(schema Node) FieldKind {
	switch s := schema.(type) {
	case *Reference:
		return FieldReference
	case *Primitive:
		switch s.Type {
		case TypeString:
			return FieldText
		case TypeNumber, TypeInteger:
			return FieldNumber
		case TypeBoolean:
			return FieldToggle
		}
	case *Object:
		return FieldObject
	case *Array:
		if s.Display == DisplayTable {
			return FieldTable
		}
		return FieldList
	}
	return FieldNone
}

// resolve mounts the field for schema. Schemas without a renderable kind
// mount nothing.
func (e *env) resolve(name string, ptr pointer, schema Node, value any, onChange func(any)) node {
	switch s := schema.(type) {
	case *Reference:
		return newReferenceField(e, name, ptr, s, value, onChange)
	case *Primitive:
		switch s.Type {
		case TypeString:
			return newTextField(e, name, ptr, s, value, onChange)
		case TypeNumber, TypeInteger:
			return newNumberField(e, name, ptr, s, value, onChange)
		case TypeBoolean:
			return newToggleField(e, name, ptr, s, value, onChange)
		}
	case *Object:
		return newObjectField(e, name, ptr, s, value, onChange)
	case *Array:
		if s.Display == DisplayTable {
			return newTableField(e, name, ptr, s, value, onChange)
		}
		return newListField(e, name, ptr, s, value, onChange)
	}
	return nil
}

// reconcile re-renders old in place when schema still resolves to the same
// kind; otherwise old is unmounted and a fresh field mounted.
func (e *env) reconcile(old node, name string, ptr pointer, schema Node, value any, onChange func(any)) node {
	if old != nil {
		if old.Kind() == kindOf(schema) {
			old.update(schema, value)
			return old
		}
		old.unmount()
	}
	return e.resolve(name, ptr, schema, value, onChange)
}

// Walk visits f and its mounted descendants depth first until fn returns
// false.
func Walk(f Field, fn func(Field) bool) bool {
	if f == nil {
		return true
	}
	if !fn(f) {
		return false
	}
	for _, c := range children(f) {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

func children(f Field) []Field {
	switch t := f.(type) {
	case *ObjectField:
		return t.Fields()
	case *ListField:
		var out []Field
		for _, it := range t.Items() {
			if it != nil {
				out = append(out, it)
			}
		}
		return out
	case *TableField:
		if ed := t.Editor(); ed != nil {
			return []Field{ed}
		}
	case *ReferenceField:
		if p := t.Presentation(); p != nil {
			return []Field{p}
		}
	}
	return nil
}
