package jsonschema

import "strings"

// RefKey returns the lookup key of a reference: the last segment of the
// pointer, unescaped. "#/definitions/address" yields "address".
func RefKey(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	return strings.ReplaceAll(strings.ReplaceAll(ref, "~1", "/"), "~0", "~")
}

// EffectiveRef returns the reference carried by the node itself or, failing
// that, by its items. The bool reports whether it came from the items.
func (s *Schema) EffectiveRef() (string, bool) {
	if s == nil {
		return "", false
	}
	if s.Ref != "" {
		return s.Ref, false
	}
	if s.Items != nil && s.Items.Ref != "" {
		return s.Items.Ref, true
	}
	return "", false
}

// Definition returns the locally declared schema for key. Nothing is
// expanded; references inside the definition are left as they are.
func (s *Schema) Definition(key string) (*Schema, bool) {
	if s == nil || s.Definitions == nil {
		return nil, false
	}
	def, ok := s.Definitions[key]
	return def, ok
}
