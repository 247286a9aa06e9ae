package skemaform

import (
	json "github.com/goccy/go-json"
)

// NewRow is the edit index of a row being added.
const NewRow = -1

// Column is one table column: a property of the item schema.
type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// editBuffer isolates a row edit from the committed list until Save.
type editBuffer struct {
	index    int
	staged   any
	editor   node
	onChange func(any)
}

// TableField shows a list of records as rows and edits one row at a time
// through an edit buffer. Only Save and Delete emit.
type TableField struct {
	base
	schema  *Array
	value   []any
	columns []Column
	buf     *editBuffer
}

func newTableField(e *env, name string, ptr pointer, s *Array, value any, onChange func(any)) *TableField {
	f := &TableField{base: newBase(e, name, ptr, s.Title, onChange)}
	f.update(s, value)
	return f
}

func (f *TableField) Kind() FieldKind { return FieldTable }

// Schema returns the array schema being rendered.
func (f *TableField) Schema() *Array { return f.schema }

// Value returns the committed rows.
func (f *TableField) Value() []any { return f.value }

// Len is the number of committed rows.
func (f *TableField) Len() int { return len(f.value) }

// Columns returns the item schema properties with their titles.
func (f *TableField) Columns() []Column { return append([]Column(nil), f.columns...) }

// Rows renders each committed row as one cell per column.
func (f *TableField) Rows() [][]string {
	rows := make([][]string, len(f.value))
	for i, item := range f.value {
		rec := asMap(item)
		cells := make([]string, len(f.columns))
		for j, c := range f.columns {
			cells[j] = cellText(rec[c.Key])
		}
		rows[i] = cells
	}
	return rows
}

// Editing returns the index of the row being edited, NewRow for an add.
func (f *TableField) Editing() (int, bool) {
	if f.buf == nil {
		return 0, false
	}
	return f.buf.index, true
}

// Staged returns the buffered row value.
func (f *TableField) Staged() any {
	if f.buf == nil {
		return nil
	}
	return f.buf.staged
}

// Editor returns the field editing the staged row.
func (f *TableField) Editor() Field {
	if f.buf == nil || f.buf.editor == nil {
		return nil
	}
	return f.buf.editor
}

// Add opens the buffer on an empty new row.
func (f *TableField) Add() error {
	if f.buf != nil {
		return fieldErr("add", f.Path(), ErrEditInProgress)
	}
	f.open(NewRow, map[string]any{})
	return nil
}

// Edit opens the buffer on a copy of row i.
func (f *TableField) Edit(i int) error {
	if f.buf != nil {
		return fieldErr("edit", f.Path(), ErrEditInProgress)
	}
	if i < 0 || i >= len(f.value) {
		return fieldErr("edit", f.Path(), ErrIndexOutOfRange)
	}
	f.open(i, cloneValue(f.value[i]))
	return nil
}

// Save commits the staged row: appended for an add, replaced in place for an
// edit. The buffer is closed.
func (f *TableField) Save() error {
	b := f.buf
	if b == nil {
		return fieldErr("save", f.Path(), ErrNotEditing)
	}
	if b.index != NewRow && b.index >= len(f.value) {
		f.close()
		return fieldErr("save", f.Path(), ErrIndexOutOfRange)
	}
	f.close()
	if b.index == NewRow {
		f.emit(appended(f.value, b.staged))
		return nil
	}
	f.emit(withIndex(f.value, b.index, b.staged))
	return nil
}

// Cancel discards the staged row. Nothing is emitted.
func (f *TableField) Cancel() error {
	if f.buf == nil {
		return fieldErr("cancel", f.Path(), ErrNotEditing)
	}
	f.close()
	return nil
}

// Delete removes row i immediately. An open edit of a later row follows the
// shift; an open edit of row i itself is closed.
func (f *TableField) Delete(i int) error {
	if i < 0 || i >= len(f.value) {
		return fieldErr("delete", f.Path(), ErrIndexOutOfRange)
	}
	if b := f.buf; b != nil && b.index != NewRow {
		switch {
		case b.index == i:
			f.close()
		case b.index > i:
			b.index--
		}
	}
	f.emit(withoutIndex(f.value, i))
	return nil
}

func (f *TableField) open(index int, staged any) {
	b := &editBuffer{index: index, staged: staged}
	b.onChange = func(v any) { f.stage(b, v) }
	f.buf = b
	b.editor = f.env.resolve("", f.ptr.Field(editSegment), f.schema.Item, staged, b.onChange)
}

func (f *TableField) stage(b *editBuffer, v any) {
	if f.buf != b {
		return
	}
	b.staged = v
	b.editor = f.env.reconcile(b.editor, "", f.ptr.Field(editSegment), f.schema.Item, v, b.onChange)
}

func (f *TableField) close() {
	if f.buf.editor != nil {
		f.buf.editor.unmount()
	}
	f.buf = nil
}

func (f *TableField) update(schema Node, value any) {
	f.schema = schema.(*Array)
	f.value = asList(value)
	f.retitle(f.schema.Title)
	f.columns = columnsOf(f.schema.Item)
	if b := f.buf; b != nil {
		b.editor = f.env.reconcile(b.editor, "", f.ptr.Field(editSegment), f.schema.Item, b.staged, b.onChange)
	}
}

func (f *TableField) unmount() {
	if f.buf != nil {
		f.close()
	}
}

// columnsOf derives columns from an object item. Items of any other shape
// have no statically known attributes and get no columns.
func columnsOf(item Node) []Column {
	o, ok := item.(*Object)
	if !ok {
		return nil
	}
	cols := make([]Column, 0, len(o.Properties))
	for _, p := range o.Properties {
		cols = append(cols, Column{Key: p.Name, Title: titleOr(p.Schema.heading(), p.Name)})
	}
	return cols
}

func titleOr(title, name string) string {
	if title != "" {
		return title
	}
	return name
}

// cellText shows scalars as text and containers as compact JSON.
func cellText(v any) string {
	switch v.(type) {
	case nil:
		return ""
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
	return keyString(v)
}
