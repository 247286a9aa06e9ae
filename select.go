package skemaform

import "github.com/reoring/skemaform/i18n"

// SelectField is the single choice presentation of a reference.
type SelectField struct {
	base
	ref *ReferenceField
}

func newSelectField(ref *ReferenceField) *SelectField {
	return &SelectField{base: ref.base, ref: ref}
}

func (f *SelectField) Kind() FieldKind { return FieldSelect }

// Choices lists the candidates with their labels.
func (f *SelectField) Choices() []Choice {
	return choicesOf(f.ref.bind.options, f.env.opts.DisplayKey)
}

// Current is the identifier of the chosen option, "" when none.
func (f *SelectField) Current() string { return f.ref.current() }

// Choose stores the option whose identifier is id.
func (f *SelectField) Choose(id string) error { return f.ref.choose(id) }

// Placeholder is the prompt shown before a choice is made.
func (f *SelectField) Placeholder() string {
	return f.env.message(i18n.CodeSelect, f.ref.label)
}

func (f *SelectField) update(_ Node, _ any) { f.base = f.ref.base }

func (f *SelectField) unmount() {}

// MultiSelectField is the multiple choice presentation of a reference.
type MultiSelectField struct {
	base
	ref   *ReferenceField
	state *MultiSelectState
}

func newMultiSelectField(ref *ReferenceField) *MultiSelectField {
	f := &MultiSelectField{base: ref.base, ref: ref}
	f.state = NewMultiSelectState(f.config(), ref.bind.options, ref.value)
	return f
}

func (f *MultiSelectField) Kind() FieldKind { return FieldMultiSelect }

// State exposes the selection model.
func (f *MultiSelectField) State() *MultiSelectState { return f.state }

// Filtered lists the candidates matching the search term.
func (f *MultiSelectField) Filtered() []Choice {
	return choicesOf(f.state.Filtered(), f.state.cfg.DisplayKey)
}

// Selected lists the selection with labels, in insertion order.
func (f *MultiSelectField) Selected() []Choice {
	sel := f.state.Selected()
	out := make([]Choice, len(sel))
	for i, e := range sel {
		out[i] = Choice{ID: e.Key(), Label: f.state.Label(e)}
	}
	return out
}

// Search records the filter term. Nothing is emitted.
func (f *MultiSelectField) Search(term string) { f.state.SetSearch(term) }

// Toggle flips membership of the option whose identifier is id.
func (f *MultiSelectField) Toggle(id string) error {
	opt, ok := f.state.Option(id)
	if !ok {
		return fieldErr("toggle", f.Path(), ErrUnknownOption)
	}
	f.ref.multiChanged(f.state.Toggle(opt))
	return nil
}

// Remove drops the selected entry whose identifier is id.
func (f *MultiSelectField) Remove(id string) error {
	e, i := findEntry(f.state.selected, id)
	if i < 0 {
		return fieldErr("remove", f.Path(), ErrUnknownOption)
	}
	f.ref.multiChanged(f.state.Remove(e))
	return nil
}

// Placeholder is the prompt shown while nothing is selected.
func (f *MultiSelectField) Placeholder() string {
	return f.env.message(i18n.CodeSelectMany, f.ref.label)
}

func (f *MultiSelectField) config() MultiSelectConfig {
	return MultiSelectConfig{
		DisplayKey: f.env.opts.DisplayKey,
		ValueKey:   f.ref.valueKey(),
		Simple:     isSimpleEnum(f.ref.bind.working),
	}
}

func (f *MultiSelectField) update(_ Node, value any) {
	f.base = f.ref.base
	search := f.state.search
	f.state = NewMultiSelectState(f.config(), f.ref.bind.options, value)
	f.state.search = search
}

func (f *MultiSelectField) unmount() {}
