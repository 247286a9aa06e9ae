// Package skemaform renders an extended JSON Schema into a headless tree of
// editable fields.
//
// Render compiles a schema document and mounts one Field per renderable
// node. Fields never hold the value themselves: every edit produces a new
// value that flows up to the Form, which stores it and re-renders the tree
// top down. Fields whose kind is unchanged keep their local state across
// re-renders (a table's edit buffer, a reference's options).
//
// Extensions understood on top of JSON Schema:
//
//   - x-display: "table" shows an array of records as rows edited through a
//     buffer; "multiselect" shows a reference list as a multiple choice.
//   - x-ref-type: "reference" (default) stores identifiers of referenced
//     records; "value" stores the record itself, edited inline.
//   - x-primary-key: the identity attribute of referenced records.
//
// References ($ref on a node or on its items) are resolved through a
// Lookup. Results arrive on other goroutines and are applied by Poll or
// Settle on the goroutine that drives the form, so field state is never
// shared. A failed lookup leaves the field with no options.
//
// Quick start:
//
//	doc, _ := jsonschema.Parse(data)
//	form := skemaform.Render(doc, nil, func(v any) { save(v) }, skemaform.Options{
//		Lookup: refsource.NewStatic(records),
//	})
//	defer form.Close()
//	_ = form.Settle(ctx)
//	view := skemaform.Describe(form.Root())
package skemaform
