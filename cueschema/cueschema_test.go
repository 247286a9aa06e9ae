package cueschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skemaform"
	"github.com/reoring/skemaform/cueschema"
	"github.com/reoring/skemaform/jsonschema"
)

func prop(t *testing.T, s *jsonschema.Schema, name string) *jsonschema.Schema {
	t.Helper()
	p, ok := s.Properties.Get(name)
	require.True(t, ok, name)
	return p
}

const personCUE = `
#Skill: {
	id:   string
	name: string
}

#Person: {
	name:   string @form(title=Name)
	age?:   int
	active: bool
	role:   "admin" | "user"
	tags: [...string]
	skills: [...string] @form(ref=skill, display=multiselect, pk=id)
	address: {...} @form(ref=address, mode=value)
	history: [...{
		company: string
		years:   number
	}] @form(display=table)
}
`

func TestCompile_Person(t *testing.T) {
	s, err := cueschema.Compile([]byte(personCUE), "#Person")
	require.NoError(t, err)

	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"name", "age", "active", "role", "tags", "skills", "address", "history"}, s.Properties.Names())

	name := prop(t, s, "name")
	assert.Equal(t, "string", name.Type)
	assert.Equal(t, "Name", name.Title)

	assert.Equal(t, "integer", prop(t, s, "age").Type)
	assert.Equal(t, "boolean", prop(t, s, "active").Type)
	assert.Equal(t, []any{"admin", "user"}, prop(t, s, "role").Enum)

	tags := prop(t, s, "tags")
	assert.Equal(t, "array", tags.Type)
	assert.Equal(t, "string", tags.Items.Type)

	skills := prop(t, s, "skills")
	assert.Equal(t, "array", skills.Type)
	assert.Equal(t, "multiselect", skills.Display)
	assert.Equal(t, "#/definitions/skill", skills.Items.Ref)
	assert.Equal(t, "id", skills.Items.PrimaryKey)

	address := prop(t, s, "address")
	assert.Equal(t, "#/definitions/address", address.Ref)
	assert.Equal(t, "value", address.RefType)

	history := prop(t, s, "history")
	assert.Equal(t, "table", history.Display)
	assert.Equal(t, []string{"company", "years"}, history.Items.Properties.Names())
	assert.Equal(t, "number", prop(t, history.Items, "years").Type)

	require.Contains(t, s.Definitions, "Skill")
	assert.Equal(t, []string{"id", "name"}, s.Definitions["Skill"].Properties.Names())
}

func TestCompile_FeedsTheFieldTree(t *testing.T) {
	s, err := cueschema.Compile([]byte(personCUE), "#Person")
	require.NoError(t, err)

	node := skemaform.Compile(s)
	obj, ok := node.(*skemaform.Object)
	require.True(t, ok)

	n, ok := obj.Property("skills")
	require.True(t, ok)
	skills, ok := n.(*skemaform.Reference)
	require.True(t, ok)
	assert.Equal(t, "skill", skills.Target)
	assert.Equal(t, skemaform.DisplayMultiSelect, skills.Display)

	n, ok = obj.Property("history")
	require.True(t, ok)
	history, ok := n.(*skemaform.Array)
	require.True(t, ok)
	assert.Equal(t, skemaform.DisplayTable, history.Display)
}

func TestCompile_Errors(t *testing.T) {
	_, err := cueschema.Compile([]byte(`a: `), "a")
	assert.Error(t, err)

	_, err = cueschema.Compile([]byte(personCUE), "#Missing")
	assert.Error(t, err)
}
