package skemaform

import (
	"math"

	"github.com/reoring/skemaform/i18n"
)

// View is a serialisable snapshot of a mounted field, for hosts that render
// elsewhere (a CLI, a browser over a socket).
type View struct {
	Kind        string            `json:"kind"`
	Name        string            `json:"name,omitempty"`
	Label       string            `json:"label,omitempty"`
	Path        string            `json:"path"`
	Placeholder string            `json:"placeholder,omitempty"`
	Value       any               `json:"value,omitempty"`
	Text        string            `json:"text,omitempty"`
	Loading     bool              `json:"loading,omitempty"`
	Target      string            `json:"target,omitempty"`
	Children    []*View           `json:"children,omitempty"`
	Choices     []Choice          `json:"choices,omitempty"`
	Selected    []Choice          `json:"selected,omitempty"`
	Current     string            `json:"current,omitempty"`
	Search      string            `json:"search,omitempty"`
	Columns     []Column          `json:"columns,omitempty"`
	Rows        [][]string        `json:"rows,omitempty"`
	Editing     *EditView         `json:"editing,omitempty"`
	Hints       map[string]string `json:"hints,omitempty"`
}

// EditView describes an open table edit buffer.
type EditView struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Form  *View  `json:"form,omitempty"`
}

// Describe snapshots f and its descendants. A nil field yields nil.
func Describe(f Field) *View {
	if f == nil {
		return nil
	}
	v := &View{Kind: f.Kind().String(), Name: f.Name(), Label: f.Label(), Path: f.Path()}
	switch t := f.(type) {
	case *TextField:
		v.Value = t.Value()
		v.Placeholder = t.Placeholder()
	case *NumberField:
		if n, ok := t.Value(); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
			v.Value = n
		}
		v.Text = t.Text()
		v.Placeholder = t.Placeholder()
	case *ToggleField:
		v.Value = t.Checked()
	case *ObjectField:
		for _, c := range t.Fields() {
			v.Children = append(v.Children, Describe(c))
		}
	case *ListField:
		for _, it := range t.Items() {
			if it != nil {
				v.Children = append(v.Children, Describe(it))
			}
		}
		v.Hints = map[string]string{"add": t.env.message(i18n.CodeAdd, t.label)}
		if t.Simple() {
			v.Hints["item"] = t.env.message(i18n.CodeEnterItem, t.label)
		}
	case *TableField:
		v.Columns = t.Columns()
		v.Rows = t.Rows()
		v.Hints = map[string]string{
			"add":     t.env.message(i18n.CodeAdd, t.label),
			"actions": t.env.message(i18n.CodeActions, t.label),
		}
		if t.Len() == 0 {
			v.Hints["empty"] = t.env.message(i18n.CodeEmptyTable, t.label)
		}
		if idx, ok := t.Editing(); ok {
			code := i18n.CodeEdit
			if idx == NewRow {
				code = i18n.CodeAdd
			}
			v.Editing = &EditView{Index: idx, Title: t.env.message(code, t.label), Form: Describe(t.Editor())}
			v.Hints["save"] = t.env.message(i18n.CodeSave, t.label)
			v.Hints["cancel"] = t.env.message(i18n.CodeCancel, t.label)
		}
	case *ReferenceField:
		v.Target = t.Target()
		v.Loading = t.Loading()
		if v.Loading {
			v.Hints = map[string]string{"loading": t.env.message(i18n.CodeLoading, t.label)}
		}
		if p := t.Presentation(); p != nil {
			v.Children = []*View{Describe(p)}
		}
	case *SelectField:
		v.Choices = t.Choices()
		v.Current = t.Current()
		v.Placeholder = t.Placeholder()
		if len(v.Choices) == 0 {
			v.Hints = map[string]string{"empty": t.env.message(i18n.CodeUnavailable, t.label)}
		}
	case *MultiSelectField:
		v.Choices = t.Filtered()
		v.Selected = t.Selected()
		v.Search = t.State().Search()
		v.Placeholder = t.Placeholder()
		v.Hints = map[string]string{"search": t.env.message(i18n.CodeSearch, t.label)}
		if len(v.Choices) == 0 {
			v.Hints["no_results"] = t.env.message(i18n.CodeNoResults, t.label)
		}
	}
	return v
}
