package jsonschema_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/reoring/skemaform/jsonschema"
)

const userDoc = `{
  "type": "object",
  "title": "User",
  "properties": {
    "zeta": {"type": "string", "title": "Zeta"},
    "alpha": {"type": "number"},
    "address": {"$ref": "#/definitions/address", "x-ref-type": "value"},
    "skills": {
      "type": "array",
      "x-display": "multiselect",
      "items": {"$ref": "#/definitions/skill", "x-primary-key": "id"}
    },
    "color": {"type": "string", "enum": ["red", 2, true]}
  },
  "definitions": {
    "address": {"type": "object", "properties": {"street": {"type": "string"}}}
  }
}`

func TestParse_KeepsPropertyOrder(t *testing.T) {
	s, err := jsonschema.Parse([]byte(userDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := s.Properties.Names()
	want := []string{"zeta", "alpha", "address", "skills", "color"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order: got %v want %v", got, want)
	}
	if s.Title != "User" || s.Type != "object" {
		t.Fatalf("unexpected root: %+v", s)
	}
}

func TestParse_Extensions(t *testing.T) {
	s, err := jsonschema.Parse([]byte(userDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	addr, _ := s.Properties.Get("address")
	if addr.Ref != "#/definitions/address" || addr.RefType != jsonschema.RefTypeValue {
		t.Fatalf("address: %+v", addr)
	}
	skills, _ := s.Properties.Get("skills")
	if skills.Display != jsonschema.DisplayMultiSelect || skills.Items.PrimaryKey != "id" {
		t.Fatalf("skills: %+v", skills)
	}
	ref, fromItems := skills.EffectiveRef()
	if ref != "#/definitions/skill" || !fromItems {
		t.Fatalf("effective ref: %q %v", ref, fromItems)
	}
	if _, ok := s.Definition("address"); !ok {
		t.Fatalf("definition address missing")
	}
}

func TestParse_EnumNormalisesNumbers(t *testing.T) {
	s, err := jsonschema.Parse([]byte(userDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	color, _ := s.Properties.Get("color")
	want := []any{"red", float64(2), true}
	if !reflect.DeepEqual(color.Enum, want) {
		t.Fatalf("enum: got %#v want %#v", color.Enum, want)
	}
}

func TestParse_YAML(t *testing.T) {
	doc := `
type: object
$defs:
  tag: {type: string}
properties:
  b: {type: boolean}
  a: {type: integer}
`
	s, err := jsonschema.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := s.Properties.Names(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("order: %v", got)
	}
	if _, ok := s.Definition("tag"); !ok {
		t.Fatalf("$defs not collected")
	}
}

func TestParse_ReportsIssues(t *testing.T) {
	_, err := jsonschema.Parse([]byte(`{"type":"object","properties":{"x":"nope"}}`))
	iss, ok := jsonschema.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != jsonschema.CodeInvalidType || iss[0].Path != "/properties/x" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestFromMap_SortsProperties(t *testing.T) {
	s, err := jsonschema.FromMap(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"b": map[string]any{"type": "string"},
			"a": map[string]any{"type": "number"},
		},
	})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if got := s.Properties.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("order: %v", got)
	}
}

func TestMarshalJSON_PreservesOrder(t *testing.T) {
	s, err := jsonschema.Parse([]byte(`{"type":"object","properties":{"z":{"type":"string"},"a":{"type":"string"}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(b)
	if strings.Index(out, `"z"`) > strings.Index(out, `"a"`) {
		t.Fatalf("order lost: %s", out)
	}
}

func TestRefKey(t *testing.T) {
	cases := map[string]string{
		"#/definitions/address": "address",
		"#/$defs/a~1b":          "a/b",
		"color":                 "color",
	}
	for in, want := range cases {
		if got := jsonschema.RefKey(in); got != want {
			t.Fatalf("RefKey(%q) = %q want %q", in, got, want)
		}
	}
}
