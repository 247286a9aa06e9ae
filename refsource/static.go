// Package refsource provides Lookup implementations for reference targets.
package refsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownTarget is returned for a target no source knows about.
	ErrUnknownTarget = errors.New("refsource: unknown target")
	// ErrNotFound is returned when an identifier matches no record.
	ErrNotFound = errors.New("refsource: record not found")
)

// IDKey is the record attribute identifier lookups match against.
const IDKey = "id"

// Static serves reference targets from memory. A target holds either a record
// list or a schema document. It is safe for concurrent use.
type Static struct {
	mu      sync.RWMutex
	targets map[string]any
}

// NewStatic copies targets into a new source.
func NewStatic(targets map[string]any) *Static {
	s := &Static{targets: make(map[string]any, len(targets))}
	for k, v := range targets {
		s.targets[k] = normalize(v)
	}
	return s
}

// Set registers or replaces a target.
func (s *Static) Set(target string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets[target] = normalize(v)
}

// Targets returns the registered target names, sorted.
func (s *Static) Targets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.targets))
	for k := range s.targets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns the raw result of target.
func (s *Static) Get(target string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.targets[target]
	return v, ok
}

// Lookup returns the whole target for an empty id, or the record whose "id"
// attribute matches id.
func (s *Static) Lookup(ctx context.Context, target, id string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.Get(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}
	if id == "" {
		return v, nil
	}
	if rec, ok := FindRecord(v, id); ok {
		return rec, nil
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, target, id)
}

// FindRecord returns the record of a list whose IDKey attribute, as text,
// equals id.
func FindRecord(list any, id string) (map[string]any, bool) {
	items, _ := list.([]any)
	for _, it := range items {
		rec, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if fmt.Sprint(rec[IDKey]) == id {
			return rec, true
		}
	}
	return nil, false
}

// LoadStaticYAML reads a mapping of target name to result. JSON input works
// too.
func LoadStaticYAML(data []byte) (*Static, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewStatic(nil), nil
		}
		return nil, fmt.Errorf("refsource: decode: %w", err)
	}
	m, ok := normalize(doc).(map[string]any)
	if !ok {
		return nil, errors.New("refsource: top level must map target names to results")
	}
	return NewStatic(m), nil
}

// normalize converts YAML-decoded values (which may contain map[any]any and
// integers) into JSON-like shapes recursively.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalize(vv)
		}
		return out
	case []map[string]any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalize(t[i])
		}
		return arr
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalize(t[i])
		}
		return arr
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	default:
		return v
	}
}
