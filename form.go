package skemaform

import (
	"context"

	"github.com/reoring/skemaform/jsonschema"
)

// SubmitFunc receives the form value on submit.
type SubmitFunc func(value any)

// Form is a rendered schema bound to a value. Edits flow up as whole new
// values; the form keeps the latest one and re-renders the tree from it.
//
// A Form is not safe for concurrent use. Lookups run on their own
// goroutines, but their results are applied only by Poll or Settle on the
// goroutine driving the form.
type Form struct {
	env      *env
	doc      *jsonschema.Schema
	schema   Node
	value    any
	root     node
	onSubmit SubmitFunc
}

// Render mounts doc with the initial value.
func Render(doc *jsonschema.Schema, value any, onSubmit SubmitFunc, opts Options) *Form {
	f := &Form{
		env:      &env{opts: opts.withDefaults(), loop: newLoop()},
		doc:      doc,
		schema:   Compile(doc),
		value:    value,
		onSubmit: onSubmit,
	}
	f.root = f.env.resolve("", pointer{}, f.schema, value, f.replace)
	return f
}

func (f *Form) replace(v any) {
	f.value = v
	f.root = f.env.reconcile(f.root, "", pointer{}, f.schema, v, f.replace)
}

// Root is the top field, nil when the root schema renders nothing.
func (f *Form) Root() Field {
	if f.root == nil {
		return nil
	}
	return f.root
}

// Document returns the schema document being rendered.
func (f *Form) Document() *jsonschema.Schema { return f.doc }

// Value is the current form value.
func (f *Form) Value() any { return f.value }

// SetValue replaces the value from outside, as a parent re-render would.
func (f *Form) SetValue(v any) { f.replace(v) }

// SetSchema swaps the document. Fields whose kind is unchanged keep their
// state; references whose target changed look up again.
func (f *Form) SetSchema(doc *jsonschema.Schema) {
	f.doc = doc
	f.schema = Compile(doc)
	f.root = f.env.reconcile(f.root, "", pointer{}, f.schema, f.value, f.replace)
}

// Submit hands the current value, unvalidated, to the submit handler and
// returns it.
func (f *Form) Submit() any {
	v := f.value
	if f.onSubmit != nil {
		f.onSubmit(v)
	}
	return v
}

// FieldAt returns the innermost field mounted at the JSON Pointer path.
func (f *Form) FieldAt(path string) (Field, bool) {
	var found Field
	Walk(f.Root(), func(fl Field) bool {
		if fl.Path() == path {
			found = fl
		}
		return true
	})
	return found, found != nil
}

// Poll applies completed lookups and returns how many were applied.
func (f *Form) Poll() int { return f.env.loop.drain() }

// Pending is the number of lookups not yet applied.
func (f *Form) Pending() int { return f.env.loop.pending }

// Notify signals that completions are waiting for Poll.
func (f *Form) Notify() <-chan struct{} { return f.env.loop.notify }

// Settle applies completions until no lookup is pending or ctx is done.
func (f *Form) Settle(ctx context.Context) error {
	for {
		f.Poll()
		if f.Pending() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.env.loop.notify:
		}
	}
}

// Close unmounts the tree and cancels outstanding lookups.
func (f *Form) Close() {
	if f.root != nil {
		f.root.unmount()
		f.root = nil
	}
	f.env.loop.cancel()
}
