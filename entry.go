package skemaform

import (
	"sort"
	"strings"
)

// Entry is a selectable identity: either a bare identifier (Scalar) or a
// record carrying its identifier under a key attribute (Entity).
type Entry struct {
	id     any
	record map[string]any
	key    string
}

// Scalar wraps a bare identifier.
func Scalar(id any) Entry { return Entry{id: id} }

// Entity wraps a record whose identity is record[key].
func Entity(record map[string]any, key string) Entry {
	return Entry{id: record[key], record: record, key: key}
}

// entryOf classifies a stored value. nil classifies as nothing.
func entryOf(v any, key string) (Entry, bool) {
	switch t := v.(type) {
	case nil:
		return Entry{}, false
	case map[string]any:
		return Entity(t, key), true
	}
	return Scalar(v), true
}

// rekey returns e with its identity read from key.
func (e Entry) rekey(key string) Entry {
	if e.record == nil || e.key == key {
		return e
	}
	return Entity(e.record, key)
}

// IsEntity reports whether the entry is a record.
func (e Entry) IsEntity() bool { return e.record != nil }

// ID returns the identifier.
func (e Entry) ID() any { return e.id }

// Key returns the identifier as a comparison string.
func (e Entry) Key() string { return keyString(e.id) }

// Record returns the record of an Entity, nil for a Scalar.
func (e Entry) Record() map[string]any { return e.record }

// Attr returns a record attribute; nil for a Scalar.
func (e Entry) Attr(name string) any {
	if e.record == nil {
		return nil
	}
	return e.record[name]
}

// Value is what a selection stores: the record itself or the bare identifier.
func (e Entry) Value() any {
	if e.record != nil {
		return e.record
	}
	return e.id
}

// Text is the human label of the entry. Records show displayKey, then the
// remaining string attributes joined by ", ", then the identifier.
func (e Entry) Text(displayKey string) string {
	if e.record == nil {
		return keyString(e.id)
	}
	if s, ok := e.record[displayKey].(string); ok && s != "" {
		return s
	}
	names := make([]string, 0, len(e.record))
	for k := range e.record {
		if k != e.key {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		if s, ok := e.record[k].(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return e.Key()
}

// Choice is an option rendered by a select.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func choicesOf(entries []Entry, displayKey string) []Choice {
	out := make([]Choice, len(entries))
	for i, e := range entries {
		out[i] = Choice{ID: e.Key(), Label: e.Text(displayKey)}
	}
	return out
}

func findEntry(entries []Entry, key string) (Entry, int) {
	for i, e := range entries {
		if e.Key() == key {
			return e, i
		}
	}
	return Entry{}, -1
}
