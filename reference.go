package skemaform

import "context"

// ReferenceField resolves a $ref through the form's Lookup and renders the
// result as a select, a multi select or an embedded object.
//
// Every (re)target bumps a generation counter; a completion is applied only
// when its generation is still current and the field is mounted.
type ReferenceField struct {
	base
	schema  *Reference
	value   any
	gen     uint64
	mounted bool
	cancel  context.CancelFunc
	bind    binding
	present node
}

func newReferenceField(e *env, name string, ptr pointer, s *Reference, value any, onChange func(any)) *ReferenceField {
	f := &ReferenceField{
		base:    newBase(e, name, ptr, s.Title, onChange),
		schema:  s,
		value:   value,
		mounted: true,
	}
	f.load()
	return f
}

func (f *ReferenceField) Kind() FieldKind { return FieldReference }

// Schema returns the reference schema being rendered.
func (f *ReferenceField) Schema() *Reference { return f.schema }

// Target is the lookup key.
func (f *ReferenceField) Target() string { return f.schema.Target }

// Value returns the stored value.
func (f *ReferenceField) Value() any { return f.value }

// Loading reports whether the current lookup is outstanding.
func (f *ReferenceField) Loading() bool { return f.bind.loading }

// Options returns the candidates of the last applied lookup.
func (f *ReferenceField) Options() []Entry { return append([]Entry(nil), f.bind.options...) }

// Working returns the schema inferred from the last applied lookup.
func (f *ReferenceField) Working() Node { return f.bind.working }

// Generation counts lookups started by this field.
func (f *ReferenceField) Generation() uint64 { return f.gen }

// Presentation is the field currently rendering the reference, nil while
// loading.
func (f *ReferenceField) Presentation() Field {
	if f.present == nil {
		return nil
	}
	return f.present
}

func (f *ReferenceField) update(schema Node, value any) {
	s := schema.(*Reference)
	retarget := s.Target != f.schema.Target
	f.schema = s
	f.value = value
	f.retitle(s.Title)
	if retarget {
		f.load()
		return
	}
	f.rerender()
}

func (f *ReferenceField) unmount() {
	f.mounted = false
	f.gen++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.drop()
}

func (f *ReferenceField) load() {
	f.gen++
	if f.cancel != nil {
		f.cancel()
	}
	f.bind = binding{loading: true}
	f.drop()
	gen, target := f.gen, f.schema.Target
	f.cancel = f.env.lookup(target, func(res any, err error) bool {
		return f.resolved(gen, res, err)
	})
}

func (f *ReferenceField) resolved(gen uint64, res any, err error) bool {
	if !f.mounted || gen != f.gen {
		return false
	}
	f.cancel = nil
	if err != nil {
		f.bind = binding{}
	} else {
		f.bind = f.env.ingest(res, f.schema)
	}
	f.rerender()
	return true
}

func (f *ReferenceField) drop() {
	if f.present != nil {
		f.present.unmount()
		f.present = nil
	}
}

// presentation picks the renderable for the current binding.
func (f *ReferenceField) presentation() FieldKind {
	switch {
	case f.bind.loading:
		return FieldNone
	case f.schema.Mode == ModeValue && f.bind.working != nil:
		return FieldObject
	case f.schema.Display == DisplayMultiSelect && f.schema.Collection && len(f.bind.options) > 0:
		return FieldMultiSelect
	}
	return FieldSelect
}

func (f *ReferenceField) rerender() {
	kind := f.presentation()
	if f.present != nil && f.present.Kind() != kind {
		f.drop()
	}
	switch kind {
	case FieldObject:
		obj := f.embedded()
		if f.present != nil {
			f.present.update(obj, f.value)
			return
		}
		f.present = newObjectField(f.env, f.name, f.ptr, obj, f.value, f.emit)
	case FieldMultiSelect:
		if f.present != nil {
			f.present.update(nil, f.value)
			return
		}
		f.present = newMultiSelectField(f)
	case FieldSelect:
		if f.present != nil {
			f.present.update(nil, f.value)
			return
		}
		f.present = newSelectField(f)
	}
}

// embedded is the working schema as an object, titled by the reference.
func (f *ReferenceField) embedded() *Object {
	obj := &Object{}
	if o, ok := f.bind.working.(*Object); ok {
		*obj = *o
	}
	if f.schema.Title != "" {
		obj.Title = f.schema.Title
	}
	if obj.Title == "" {
		obj.Title = f.label
	}
	return obj
}

// primaryKey is the identity attribute declared by the working schema.
func (f *ReferenceField) primaryKey() string { return primaryKeyOf(f.bind.working) }

// valueKey is the identity attribute used to compare entries.
func (f *ReferenceField) valueKey() string {
	if pk := f.primaryKey(); pk != "" {
		return pk
	}
	return f.env.opts.DefaultPrimaryKey
}

// projects reports whether selections store identifiers rather than records.
func (f *ReferenceField) projects() bool {
	return f.schema.Mode != ModeValue && f.primaryKey() != ""
}

func (f *ReferenceField) choose(id string) error {
	if isSimpleEnum(f.bind.working) {
		if _, i := findEntry(f.bind.options, id); i < 0 {
			return fieldErr("choose", f.Path(), ErrUnknownOption)
		}
		f.emit(convertByType(id, f.bind.working.(*Primitive).Type))
		return nil
	}
	opt, i := findEntry(f.bind.options, id)
	if i < 0 {
		return fieldErr("choose", f.Path(), ErrUnknownOption)
	}
	if f.projects() {
		if opt.IsEntity() {
			f.emit(opt.Attr(f.primaryKey()))
			return nil
		}
		f.emit(opt.ID())
		return nil
	}
	f.emit(opt.Value())
	return nil
}

func (f *ReferenceField) current() string {
	if isSimpleEnum(f.bind.working) || f.projects() {
		return keyString(f.value)
	}
	if m := asMap(f.value); m != nil {
		return keyString(m[f.valueKey()])
	}
	return keyString(f.value)
}

// multiChanged stores a new selection, projected to identifiers when the
// reference stores keys.
func (f *ReferenceField) multiChanged(selection []any) {
	if !f.projects() {
		f.emit(selection)
		return
	}
	pk := f.primaryKey()
	keys := make([]any, 0, len(selection))
	for _, v := range selection {
		e, ok := entryOf(v, pk)
		if !ok {
			continue
		}
		if k := e.ID(); k != nil && k != "" {
			keys = append(keys, k)
		}
	}
	f.emit(keys)
}

func convertByType(id string, t PrimitiveType) any {
	switch t {
	case TypeNumber:
		return parseNumber(id)
	case TypeBoolean:
		return id == "true"
	}
	return id
}
