package skemaform_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reoring/skemaform"
	"github.com/reoring/skemaform/jsonschema"
)

func mustParse(t *testing.T, doc string) *jsonschema.Schema {
	t.Helper()
	s, err := jsonschema.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return s
}

func settle(t *testing.T, f *skemaform.Form) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := f.Settle(ctx); err != nil {
		t.Fatalf("settle: %v", err)
	}
}

func fieldAt[T skemaform.Field](t *testing.T, f *skemaform.Form, path string) T {
	t.Helper()
	fl, ok := f.FieldAt(path)
	if !ok {
		t.Fatalf("no field at %s", path)
	}
	v, ok := fl.(T)
	if !ok {
		t.Fatalf("field at %s is %T", path, fl)
	}
	return v
}

// member returns the root object's field for name, which FieldAt would
// shadow with a reference's presentation.
func member[T skemaform.Field](t *testing.T, f *skemaform.Form, name string) T {
	t.Helper()
	obj, ok := f.Root().(*skemaform.ObjectField)
	if !ok {
		t.Fatalf("root is %T", f.Root())
	}
	fl, ok := obj.Field(name)
	if !ok {
		t.Fatalf("no member %s", name)
	}
	v, ok := fl.(T)
	if !ok {
		t.Fatalf("member %s is %T", name, fl)
	}
	return v
}

func staticLookup(results map[string]any) skemaform.Lookup {
	return skemaform.LookupFunc(func(ctx context.Context, target, id string) (any, error) {
		return results[target], nil
	})
}

const personDoc = `{
  "type": "object",
  "title": "Person",
  "properties": {
    "name": {"type": "string", "title": "Name", "description": "Full name"},
    "age": {"type": "number"},
    "active": {"type": "boolean"},
    "tags": {"type": "array", "title": "Tags", "items": {"type": "string"}}
  }
}`

func TestObject_ChildEditReplacesOnlyThatProperty(t *testing.T) {
	initial := map[string]any{"name": "Ada", "age": float64(36)}
	form := skemaform.Render(mustParse(t, personDoc), initial, nil, skemaform.Options{})
	defer form.Close()

	name := fieldAt[*skemaform.TextField](t, form, "/name")
	if name.Label() != "Name" || name.Placeholder() != "Full name" || name.Value() != "Ada" {
		t.Fatalf("unexpected name field: %q %q %q", name.Label(), name.Placeholder(), name.Value())
	}
	name.Set("Grace")

	want := map[string]any{"name": "Grace", "age": float64(36)}
	if !reflect.DeepEqual(form.Value(), want) {
		t.Fatalf("value: got %#v want %#v", form.Value(), want)
	}
	if initial["name"] != "Ada" {
		t.Fatalf("initial value was mutated: %#v", initial)
	}
	if got := fieldAt[*skemaform.TextField](t, form, "/name").Value(); got != "Grace" {
		t.Fatalf("re-rendered name: %q", got)
	}
}

func TestObject_LabelFallsBackToName(t *testing.T) {
	form := skemaform.Render(mustParse(t, personDoc), nil, nil, skemaform.Options{})
	defer form.Close()
	if got := fieldAt[*skemaform.NumberField](t, form, "/age").Label(); got != "age" {
		t.Fatalf("label: %q", got)
	}
	if fieldAt[*skemaform.ToggleField](t, form, "/active").Checked() {
		t.Fatalf("absent toggle should be unchecked")
	}
}

func TestNumber_ParsesLeniently(t *testing.T) {
	form := skemaform.Render(mustParse(t, personDoc), map[string]any{}, nil, skemaform.Options{})
	defer form.Close()

	age := fieldAt[*skemaform.NumberField](t, form, "/age")
	age.Set(" 42 ")
	if got := form.Value().(map[string]any)["age"]; got != float64(42) {
		t.Fatalf("age: %#v", got)
	}
	age.Set("")
	if got := form.Value().(map[string]any)["age"]; got != float64(0) {
		t.Fatalf("empty age: %#v", got)
	}
	age.Set("abc")
	if got := form.Value().(map[string]any)["age"].(float64); !math.IsNaN(got) {
		t.Fatalf("expected NaN, got %v", got)
	}
}

func TestList_AddAndRemove(t *testing.T) {
	form := skemaform.Render(mustParse(t, personDoc),
		map[string]any{"tags": []any{"a", "b", "c"}}, nil, skemaform.Options{})
	defer form.Close()

	tags := fieldAt[*skemaform.ListField](t, form, "/tags")
	if !tags.Simple() || tags.Len() != 3 {
		t.Fatalf("unexpected list: simple=%v len=%d", tags.Simple(), tags.Len())
	}
	if it, _ := tags.Item(1); it.Name() != "tags[1]" || it.Path() != "/tags/1" {
		t.Fatalf("item naming: %q %q", it.Name(), it.Path())
	}
	if err := tags.Remove(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := form.Value().(map[string]any)["tags"]; !reflect.DeepEqual(got, []any{"a", "c"}) {
		t.Fatalf("after remove: %#v", got)
	}
	tags.Add()
	if got := form.Value().(map[string]any)["tags"]; !reflect.DeepEqual(got, []any{"a", "c", ""}) {
		t.Fatalf("after add: %#v", got)
	}
	fieldAt[*skemaform.TextField](t, form, "/tags/2").Set("d")
	if got := form.Value().(map[string]any)["tags"]; !reflect.DeepEqual(got, []any{"a", "c", "d"}) {
		t.Fatalf("after item edit: %#v", got)
	}
	if err := tags.Remove(9); !errors.Is(err, skemaform.ErrIndexOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
}

const experienceDoc = `{
  "type": "object",
  "properties": {
    "experiences": {
      "type": "array",
      "title": "Experience",
      "x-display": "table",
      "items": {
        "type": "object",
        "properties": {
          "company": {"type": "string", "title": "Company"},
          "position": {"type": "string", "title": "Position"},
          "years": {"type": "number"}
        }
      }
    }
  }
}`

func TestTable_AddEditSaveDelete(t *testing.T) {
	form := skemaform.Render(mustParse(t, experienceDoc), map[string]any{}, nil, skemaform.Options{})
	defer form.Close()

	table := fieldAt[*skemaform.TableField](t, form, "/experiences")
	cols := table.Columns()
	if len(cols) != 3 || cols[0].Title != "Company" || cols[2].Title != "years" {
		t.Fatalf("columns: %+v", cols)
	}

	if err := table.Add(); err != nil {
		t.Fatalf("add: %v", err)
	}
	fieldAt[*skemaform.TextField](t, form, "/experiences/$edit/company").Set("Acme")
	if got := form.Value().(map[string]any)["experiences"]; got != nil {
		t.Fatalf("staged edit leaked into value: %#v", got)
	}
	if err := table.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := []any{map[string]any{"company": "Acme"}}
	if got := form.Value().(map[string]any)["experiences"]; !reflect.DeepEqual(got, want) {
		t.Fatalf("after add: %#v", got)
	}

	if err := table.Edit(0); err != nil {
		t.Fatalf("edit: %v", err)
	}
	fieldAt[*skemaform.TextField](t, form, "/experiences/$edit/company").Set("Acme Corp")
	if err := table.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	want = []any{map[string]any{"company": "Acme Corp"}}
	if got := form.Value().(map[string]any)["experiences"]; !reflect.DeepEqual(got, want) {
		t.Fatalf("after edit: %#v", got)
	}
	if rows := table.Rows(); len(rows) != 1 || rows[0][0] != "Acme Corp" || rows[0][1] != "" {
		t.Fatalf("rows: %#v", rows)
	}

	if err := table.Delete(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := form.Value().(map[string]any)["experiences"]; !reflect.DeepEqual(got, []any{}) {
		t.Fatalf("after delete: %#v", got)
	}
}

func TestTable_BufferRules(t *testing.T) {
	rows := []any{
		map[string]any{"company": "A"},
		map[string]any{"company": "B"},
		map[string]any{"company": "C"},
	}
	form := skemaform.Render(mustParse(t, experienceDoc), map[string]any{"experiences": rows}, nil, skemaform.Options{})
	defer form.Close()
	table := fieldAt[*skemaform.TableField](t, form, "/experiences")

	if err := table.Save(); !errors.Is(err, skemaform.ErrNotEditing) {
		t.Fatalf("save without edit: %v", err)
	}
	if err := table.Edit(2); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := table.Add(); !errors.Is(err, skemaform.ErrEditInProgress) {
		t.Fatalf("add during edit: %v", err)
	}
	fieldAt[*skemaform.TextField](t, form, "/experiences/$edit/company").Set("C2")

	// deleting an earlier row shifts the edit to the same record
	if err := table.Delete(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if idx, ok := table.Editing(); !ok || idx != 1 {
		t.Fatalf("editing index: %d %v", idx, ok)
	}
	if err := table.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := []any{map[string]any{"company": "B"}, map[string]any{"company": "C2"}}
	if got := form.Value().(map[string]any)["experiences"]; !reflect.DeepEqual(got, want) {
		t.Fatalf("value: %#v", got)
	}
	if rows[2].(map[string]any)["company"] != "C" {
		t.Fatalf("edit mutated the original row")
	}

	// deleting the edited row closes the buffer
	if err := table.Edit(0); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := table.Delete(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := table.Editing(); ok {
		t.Fatalf("buffer should be closed")
	}

	if err := table.Add(); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := table.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := form.Value().(map[string]any)["experiences"]; len(got.([]any)) != 1 {
		t.Fatalf("cancel changed the value: %#v", got)
	}
}

const skillsDoc = `{
  "type": "object",
  "properties": {
    "skills": {
      "type": "array",
      "title": "Skills",
      "x-display": "multiselect",
      "items": {"$ref": "#/definitions/skill", "x-primary-key": "id"}
    },
    "colors": {
      "type": "array",
      "title": "Colors",
      "x-display": "multiselect",
      "items": {"$ref": "#/definitions/color"}
    }
  }
}`

var skillRecords = []any{
	map[string]any{"id": "1", "name": "JavaScript"},
	map[string]any{"id": "2", "name": "Java"},
	map[string]any{"id": "3", "name": "Go"},
}

func TestMultiSelect_ProjectsPrimaryKeys(t *testing.T) {
	form := skemaform.Render(mustParse(t, skillsDoc), map[string]any{}, nil, skemaform.Options{
		Lookup: staticLookup(map[string]any{
			"skill": skillRecords,
			"color": map[string]any{"type": "string", "enum": []any{"red", "green", "blue"}},
		}),
	})
	defer form.Close()

	ref := fieldAt[*skemaform.ReferenceField](t, form, "/skills")
	if !ref.Loading() {
		t.Fatalf("reference should be loading before settle")
	}
	settle(t, form)

	fieldAt[*skemaform.MultiSelectField](t, form, "/skills").Toggle("1")
	fieldAt[*skemaform.MultiSelectField](t, form, "/skills").Toggle("2")
	if got := form.Value().(map[string]any)["skills"]; !reflect.DeepEqual(got, []any{"1", "2"}) {
		t.Fatalf("skills: %#v", got)
	}

	ms := fieldAt[*skemaform.MultiSelectField](t, form, "/skills")
	sel := ms.Selected()
	if len(sel) != 2 || sel[0].Label != "JavaScript" || sel[1].Label != "Java" {
		t.Fatalf("selected labels: %+v", sel)
	}
	if err := ms.Remove("1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := form.Value().(map[string]any)["skills"]; !reflect.DeepEqual(got, []any{"2"}) {
		t.Fatalf("after remove: %#v", got)
	}
}

func TestMultiSelect_EnumPassesValuesThrough(t *testing.T) {
	form := skemaform.Render(mustParse(t, skillsDoc), map[string]any{}, nil, skemaform.Options{
		Lookup: staticLookup(map[string]any{
			"color": map[string]any{"type": "string", "enum": []any{"red", "green", "blue"}},
		}),
	})
	defer form.Close()
	settle(t, form)

	fieldAt[*skemaform.MultiSelectField](t, form, "/colors").Toggle("red")
	fieldAt[*skemaform.MultiSelectField](t, form, "/colors").Toggle("blue")
	if got := form.Value().(map[string]any)["colors"]; !reflect.DeepEqual(got, []any{"red", "blue"}) {
		t.Fatalf("colors: %#v", got)
	}
	fieldAt[*skemaform.MultiSelectField](t, form, "/colors").Toggle("red")
	if got := form.Value().(map[string]any)["colors"]; !reflect.DeepEqual(got, []any{"blue"}) {
		t.Fatalf("colors after untoggle: %#v", got)
	}
}

func TestMultiSelectState_ToggleTwiceRestores(t *testing.T) {
	opts := []skemaform.Entry{
		skemaform.Entity(map[string]any{"id": "1", "name": "JavaScript"}, "id"),
		skemaform.Entity(map[string]any{"id": "2", "name": "Java"}, "id"),
		skemaform.Entity(map[string]any{"id": "3", "name": "Go"}, "id"),
	}
	st := skemaform.NewMultiSelectState(skemaform.MultiSelectConfig{}, opts, nil)
	st.Toggle(opts[2])
	before := st.Values()
	st.Toggle(opts[0])
	st.Toggle(opts[0])
	if !reflect.DeepEqual(st.Values(), before) {
		t.Fatalf("toggle twice changed selection: %#v", st.Values())
	}
	if !st.IsSelected(opts[2]) || st.IsSelected(opts[0]) {
		t.Fatalf("membership wrong")
	}

	got := st.Filter("java")
	if len(got) != 2 || got[0].Key() != "1" || got[1].Key() != "2" {
		t.Fatalf("filter: %+v", got)
	}
	if len(st.Filter("")) != 3 {
		t.Fatalf("empty filter should match all")
	}
}

func TestMultiSelectState_SimpleStoresBareValues(t *testing.T) {
	opts := []skemaform.Entry{
		skemaform.Entity(map[string]any{"id": "red", "name": "red"}, "id"),
		skemaform.Entity(map[string]any{"id": "blue", "name": "blue"}, "id"),
	}
	st := skemaform.NewMultiSelectState(skemaform.MultiSelectConfig{Simple: true}, opts, []any{"blue"})
	if got := st.Toggle(opts[0]); !reflect.DeepEqual(got, []any{"blue", "red"}) {
		t.Fatalf("toggle: %#v", got)
	}
	if got := st.Remove(skemaform.Scalar("blue")); !reflect.DeepEqual(got, []any{"red"}) {
		t.Fatalf("remove: %#v", got)
	}
}

const orderDoc = `{
  "type": "object",
  "properties": {
    "department": {"$ref": "#/definitions/department", "title": "Department", "x-primary-key": "id"},
    "color": {"$ref": "#/definitions/color", "title": "Color"},
    "address": {"$ref": "#/definitions/address", "title": "Address", "x-ref-type": "value"}
  }
}`

func orderLookup() skemaform.Lookup {
	return staticLookup(map[string]any{
		"department": []any{
			map[string]any{"id": "1", "name": "Sales"},
			map[string]any{"id": "2", "name": "Engineering"},
		},
		"color": map[string]any{"type": "string", "enum": []any{"red", "green"}},
		"address": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"street": map[string]any{"type": "string", "title": "Street"},
				"city":   map[string]any{"type": "string", "title": "City"},
			},
		},
	})
}

func TestSelect_ChooseStoresIdentifier(t *testing.T) {
	form := skemaform.Render(mustParse(t, orderDoc), map[string]any{}, nil, skemaform.Options{Lookup: orderLookup()})
	defer form.Close()
	settle(t, form)

	dept := fieldAt[*skemaform.SelectField](t, form, "/department")
	choices := dept.Choices()
	if len(choices) != 2 || choices[1].Label != "Engineering" {
		t.Fatalf("choices: %+v", choices)
	}
	if dept.Placeholder() != "Select Department" {
		t.Fatalf("placeholder: %q", dept.Placeholder())
	}
	if err := dept.Choose("2"); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got := form.Value().(map[string]any)["department"]; got != "2" {
		t.Fatalf("department: %#v", got)
	}
	if cur := fieldAt[*skemaform.SelectField](t, form, "/department").Current(); cur != "2" {
		t.Fatalf("current: %q", cur)
	}
	err := dept.Choose("9")
	if !errors.Is(err, skemaform.ErrUnknownOption) {
		t.Fatalf("expected unknown option, got %v", err)
	}
	if fe, ok := skemaform.AsFieldError(err); !ok || fe.Path != "/department" {
		t.Fatalf("field error: %+v", fe)
	}

	color := fieldAt[*skemaform.SelectField](t, form, "/color")
	if err := color.Choose("green"); err != nil {
		t.Fatalf("choose color: %v", err)
	}
	if got := form.Value().(map[string]any)["color"]; got != "green" {
		t.Fatalf("color: %#v", got)
	}
}

func TestReference_ValueModeEmbedsObject(t *testing.T) {
	form := skemaform.Render(mustParse(t, orderDoc), map[string]any{}, nil, skemaform.Options{Lookup: orderLookup()})
	defer form.Close()
	settle(t, form)

	addr := fieldAt[*skemaform.ObjectField](t, form, "/address")
	if addr.Label() != "Address" {
		t.Fatalf("embedded label: %q", addr.Label())
	}
	fieldAt[*skemaform.TextField](t, form, "/address/street").Set("1 Main St")
	want := map[string]any{"street": "1 Main St"}
	if got := form.Value().(map[string]any)["address"]; !reflect.DeepEqual(got, want) {
		t.Fatalf("address: %#v", got)
	}
}

func TestReference_FailureDegradesSilently(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	form := skemaform.Render(mustParse(t, orderDoc), map[string]any{}, nil, skemaform.Options{
		Lookup: skemaform.LookupFunc(func(ctx context.Context, target, id string) (any, error) {
			return nil, errors.New("backend down")
		}),
		Observer: skemaform.NewLogObserver(zap.New(core)),
	})
	defer form.Close()
	settle(t, form)

	ref := member[*skemaform.ReferenceField](t, form, "department")
	if ref.Loading() || len(ref.Options()) != 0 || ref.Working() != nil {
		t.Fatalf("expected empty binding, got loading=%v options=%d", ref.Loading(), len(ref.Options()))
	}
	if sel, ok := ref.Presentation().(*skemaform.SelectField); !ok || len(sel.Choices()) != 0 {
		t.Fatalf("expected empty select, got %T", ref.Presentation())
	}
	if n := logs.FilterMessage("reference lookup failed").Len(); n != 3 {
		t.Fatalf("expected 3 failure logs, got %d", n)
	}
}

func TestReference_StaleLookupIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	lookup := skemaform.LookupFunc(func(ctx context.Context, target, id string) (any, error) {
		if target == "old" {
			<-gate
			return []any{map[string]any{"id": "x", "name": "Old"}}, nil
		}
		return []any{map[string]any{"id": "y", "name": "New"}}, nil
	})
	core, logs := observer.New(zap.DebugLevel)
	doc := func(target string) *jsonschema.Schema {
		return mustParse(t, `{"type":"object","properties":{"pick":{"$ref":"#/definitions/`+target+`"}}}`)
	}
	form := skemaform.Render(doc("old"), map[string]any{}, nil, skemaform.Options{
		Lookup:   lookup,
		Observer: skemaform.NewLogObserver(zap.New(core)),
	})
	defer form.Close()

	form.SetSchema(doc("new"))
	close(gate)
	settle(t, form)

	ref := member[*skemaform.ReferenceField](t, form, "pick")
	if ref.Generation() != 2 {
		t.Fatalf("generation: %d", ref.Generation())
	}
	opts := ref.Options()
	if len(opts) != 1 || opts[0].Key() != "y" {
		t.Fatalf("options should come from the latest target: %+v", opts)
	}
	if n := logs.FilterMessage("stale reference lookup discarded").Len(); n != 1 {
		t.Fatalf("expected one discarded completion, got %d", n)
	}
}

func TestTable_ReferenceItemsClassifyAsReference(t *testing.T) {
	doc := mustParse(t, `{
	  "type": "object",
	  "properties": {
	    "contacts": {"type": "array", "x-display": "table", "items": {"$ref": "#/definitions/contact"}},
	    "notes": {"type": "array", "x-display": "table", "items": {"type": "string"}}
	  }
	}`)
	form := skemaform.Render(doc, map[string]any{}, nil, skemaform.Options{})
	defer form.Close()
	ref := fieldAt[*skemaform.ReferenceField](t, form, "/contacts")
	if !ref.Schema().Collection || ref.Target() != "contact" {
		t.Fatalf("reference: %+v", ref.Schema())
	}
	if cols := fieldAt[*skemaform.TableField](t, form, "/notes").Columns(); len(cols) != 0 {
		t.Fatalf("scalar items should have no columns: %+v", cols)
	}
}

func TestForm_SubmitPassesValueVerbatim(t *testing.T) {
	var got any
	form := skemaform.Render(mustParse(t, personDoc), map[string]any{"name": "Ada"}, func(v any) { got = v }, skemaform.Options{})
	defer form.Close()
	fieldAt[*skemaform.NumberField](t, form, "/age").Set("oops")

	out := form.Submit()
	sub, ok := got.(map[string]any)
	if !ok || sub["name"] != "Ada" {
		t.Fatalf("submitted: %#v", got)
	}
	// no validation: the unparsable number goes through as NaN
	if age, _ := sub["age"].(float64); !math.IsNaN(age) {
		t.Fatalf("age: %#v", sub["age"])
	}
	if out.(map[string]any)["name"] != "Ada" {
		t.Fatalf("Submit returned %#v", out)
	}
}

func TestForm_SchemaSwapChangesFieldKind(t *testing.T) {
	form := skemaform.Render(mustParse(t, personDoc), map[string]any{"age": float64(3)}, nil, skemaform.Options{})
	defer form.Close()
	fieldAt[*skemaform.NumberField](t, form, "/age")

	form.SetSchema(mustParse(t, `{"type":"object","properties":{"age":{"type":"string"}}}`))
	if _, ok := form.FieldAt("/name"); ok {
		t.Fatalf("removed property still mounted")
	}
	fieldAt[*skemaform.TextField](t, form, "/age")
}

func TestForm_UnknownRootRendersNothing(t *testing.T) {
	form := skemaform.Render(mustParse(t, `{"type":"null"}`), nil, nil, skemaform.Options{})
	defer form.Close()
	if form.Root() != nil {
		t.Fatalf("expected no root field, got %T", form.Root())
	}
}

func TestDescribe_Table(t *testing.T) {
	form := skemaform.Render(mustParse(t, experienceDoc), map[string]any{}, nil, skemaform.Options{})
	defer form.Close()
	v := skemaform.Describe(form.Root())
	if v.Kind != "object" || len(v.Children) != 1 {
		t.Fatalf("root view: %+v", v)
	}
	tv := v.Children[0]
	if tv.Kind != "table" || tv.Hints["add"] != "Add Experience" || tv.Hints["empty"] != "No items yet" {
		t.Fatalf("table view: %+v", tv)
	}
}

func TestReference_ScalarMultiSelectHintRendersSelect(t *testing.T) {
	doc := mustParse(t, `{"type":"object","properties":{"lead":{"$ref":"#/definitions/skill","x-display":"multiselect"}}}`)
	form := skemaform.Render(doc, map[string]any{}, nil, skemaform.Options{
		Lookup: staticLookup(map[string]any{"skill": skillRecords}),
	})
	defer form.Close()
	settle(t, form)

	ref := member[*skemaform.ReferenceField](t, form, "lead")
	sel, ok := ref.Presentation().(*skemaform.SelectField)
	if !ok {
		t.Fatalf("expected select, got %T", ref.Presentation())
	}
	if len(sel.Choices()) != len(skillRecords) {
		t.Fatalf("choices: %+v", sel.Choices())
	}
	if err := sel.Choose("1"); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got := form.Value().(map[string]any)["lead"]; got != "1" {
		t.Fatalf("scalar slot should hold one key, got %#v", got)
	}
}
