package wire

import (
	"errors"
	"fmt"

	"github.com/reoring/skemaform"
)

// Error codes sent in ErrorData.
const (
	CodeUnknownType   = "unknown_type"
	CodeInvalidData   = "invalid_data"
	CodeUnknownPath   = "unknown_path"
	CodeUnsupported   = "unsupported_action"
	CodeActionFailed  = "action_failed"
	CodeEditNotOpen   = "not_editing"
	CodeEditOpen      = "edit_in_progress"
	CodeUnknownOption = "unknown_option"
	CodeOutOfRange    = "index_out_of_range"
)

// ActionError is a rejected action.
type ActionError struct {
	Code string
	Err  error
}

func (e *ActionError) Error() string { return e.Code + ": " + e.Err.Error() }

func (e *ActionError) Unwrap() error { return e.Err }

func unsupported(typ string, f skemaform.Field) error {
	return &ActionError{Code: CodeUnsupported, Err: fmt.Errorf("%s on %s field at %s", typ, f.Kind(), f.Path())}
}

// Apply performs one client action on form.
func Apply(form *skemaform.Form, typ string, d ActionData) error {
	if typ == TypeSet && (d.Path == "" || d.Path == "/") {
		form.SetValue(d.Value)
		return nil
	}
	switch typ {
	case TypeSet, TypeAdd, TypeRemove, TypeEdit, TypeSave, TypeCancel, TypeDelete, TypeChoose, TypeToggle, TypeSearch:
	default:
		return &ActionError{Code: CodeUnknownType, Err: fmt.Errorf("unknown action %q", typ)}
	}
	f, ok := form.FieldAt(d.Path)
	if !ok {
		return &ActionError{Code: CodeUnknownPath, Err: fmt.Errorf("no field at %q", d.Path)}
	}
	return classify(apply(f, typ, d))
}

func apply(f skemaform.Field, typ string, d ActionData) error {
	switch typ {
	case TypeSet:
		return set(f, d.Value)
	case TypeAdd:
		switch t := f.(type) {
		case *skemaform.ListField:
			t.Add()
			return nil
		case *skemaform.TableField:
			return t.Add()
		}
	case TypeRemove:
		switch t := f.(type) {
		case *skemaform.ListField:
			return t.Remove(d.Index)
		case *skemaform.MultiSelectField:
			return t.Remove(d.ID)
		}
	case TypeEdit, TypeSave, TypeCancel, TypeDelete:
		t, ok := f.(*skemaform.TableField)
		if !ok {
			break
		}
		switch typ {
		case TypeEdit:
			return t.Edit(d.Index)
		case TypeSave:
			return t.Save()
		case TypeCancel:
			return t.Cancel()
		default:
			return t.Delete(d.Index)
		}
	case TypeChoose:
		if t, ok := f.(*skemaform.SelectField); ok {
			return t.Choose(d.ID)
		}
	case TypeToggle:
		if t, ok := f.(*skemaform.MultiSelectField); ok {
			return t.Toggle(d.ID)
		}
	case TypeSearch:
		if t, ok := f.(*skemaform.MultiSelectField); ok {
			t.Search(d.Term)
			return nil
		}
	}
	return unsupported(typ, f)
}

func set(f skemaform.Field, v any) error {
	bad := func() error {
		return &ActionError{Code: CodeInvalidData, Err: fmt.Errorf("%T is not a value for %s field at %s", v, f.Kind(), f.Path())}
	}
	switch t := f.(type) {
	case *skemaform.TextField:
		s, ok := v.(string)
		if !ok {
			return bad()
		}
		t.Set(s)
	case *skemaform.NumberField:
		switch n := v.(type) {
		case string:
			t.Set(n)
		case float64:
			t.SetNumber(n)
		default:
			return bad()
		}
	case *skemaform.ToggleField:
		b, ok := v.(bool)
		if !ok {
			return bad()
		}
		t.Set(b)
	default:
		return unsupported(TypeSet, f)
	}
	return nil
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	var ae *ActionError
	if errors.As(err, &ae) {
		return err
	}
	code := CodeActionFailed
	switch {
	case errors.Is(err, skemaform.ErrNotEditing):
		code = CodeEditNotOpen
	case errors.Is(err, skemaform.ErrEditInProgress):
		code = CodeEditOpen
	case errors.Is(err, skemaform.ErrUnknownOption):
		code = CodeUnknownOption
	case errors.Is(err, skemaform.ErrIndexOutOfRange):
		code = CodeOutOfRange
	}
	return &ActionError{Code: code, Err: err}
}
