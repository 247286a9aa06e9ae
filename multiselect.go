package skemaform

import "strings"

// MultiSelectConfig fixes how a MultiSelectState reads its entries.
type MultiSelectConfig struct {
	// DisplayKey names the attribute shown and searched. Default "name".
	DisplayKey string
	// ValueKey names the identity attribute. Default "id".
	ValueKey string
	// Simple stores bare identifiers instead of whole records.
	Simple bool
}

// MultiSelectState is the selection model behind a multi select: toggle,
// remove and search over a candidate list. The selection keeps insertion
// order and never holds two entries with the same identity.
type MultiSelectState struct {
	cfg      MultiSelectConfig
	options  []Entry
	selected []Entry
	search   string
}

// NewMultiSelectState builds the state from candidate options and the
// currently stored selection (a list of identifiers or records).
func NewMultiSelectState(cfg MultiSelectConfig, options []Entry, selection any) *MultiSelectState {
	if cfg.DisplayKey == "" {
		cfg.DisplayKey = "name"
	}
	if cfg.ValueKey == "" {
		cfg.ValueKey = "id"
	}
	s := &MultiSelectState{cfg: cfg}
	s.Reset(options, selection)
	return s
}

// Reset replaces options and selection. The search term is kept.
func (s *MultiSelectState) Reset(options []Entry, selection any) {
	s.options = make([]Entry, len(options))
	for i, o := range options {
		s.options[i] = o.rekey(s.cfg.ValueKey)
	}
	s.selected = nil
	for _, v := range asList(selection) {
		if e, ok := entryOf(v, s.cfg.ValueKey); ok {
			s.selected = append(s.selected, e)
		}
	}
}

// Config returns the effective configuration.
func (s *MultiSelectState) Config() MultiSelectConfig { return s.cfg }

// Options returns all candidates.
func (s *MultiSelectState) Options() []Entry { return append([]Entry(nil), s.options...) }

// Selected returns the selection in insertion order.
func (s *MultiSelectState) Selected() []Entry { return append([]Entry(nil), s.selected...) }

// Values returns the selection as stored values.
func (s *MultiSelectState) Values() []any {
	out := make([]any, len(s.selected))
	for i, e := range s.selected {
		out[i] = e.Value()
	}
	return out
}

// IsSelected reports whether an entry with opt's identity is selected.
func (s *MultiSelectState) IsSelected(opt Entry) bool {
	_, i := findEntry(s.selected, opt.rekey(s.cfg.ValueKey).Key())
	return i >= 0
}

// Option returns the candidate whose identity string is key.
func (s *MultiSelectState) Option(key string) (Entry, bool) {
	e, i := findEntry(s.options, key)
	return e, i >= 0
}

// Toggle removes opt when an entry with the same identity is selected and
// appends it otherwise. It returns the new selection values.
func (s *MultiSelectState) Toggle(opt Entry) []any {
	opt = opt.rekey(s.cfg.ValueKey)
	if _, i := findEntry(s.selected, opt.Key()); i >= 0 {
		s.selected = removeEntry(s.selected, i)
		return s.Values()
	}
	add := opt
	if s.cfg.Simple {
		add = Scalar(opt.ID())
	}
	s.selected = append(append([]Entry(nil), s.selected...), add)
	return s.Values()
}

// Remove drops the selected entry with item's identity and returns the new
// selection values. Removing an unselected item changes nothing.
func (s *MultiSelectState) Remove(item Entry) []any {
	if _, i := findEntry(s.selected, item.rekey(s.cfg.ValueKey).Key()); i >= 0 {
		s.selected = removeEntry(s.selected, i)
	}
	return s.Values()
}

// Filter returns candidates whose display or identity value contains term,
// ignoring case. An empty term matches everything.
func (s *MultiSelectState) Filter(term string) []Entry {
	if term == "" {
		return s.Options()
	}
	needle := strings.ToLower(term)
	var out []Entry
	for _, o := range s.options {
		if strings.Contains(strings.ToLower(s.display(o)), needle) ||
			strings.Contains(strings.ToLower(o.Key()), needle) {
			out = append(out, o)
		}
	}
	return out
}

// SetSearch records the search term.
func (s *MultiSelectState) SetSearch(term string) { s.search = term }

// Search returns the recorded search term.
func (s *MultiSelectState) Search() string { return s.search }

// Filtered applies the recorded search term.
func (s *MultiSelectState) Filtered() []Entry { return s.Filter(s.search) }

// Label returns the text of a selected entry. Bare identifiers borrow the
// label of the matching candidate.
func (s *MultiSelectState) Label(e Entry) string {
	if !e.IsEntity() {
		if o, ok := s.Option(e.Key()); ok {
			return o.Text(s.cfg.DisplayKey)
		}
	}
	return e.Text(s.cfg.DisplayKey)
}

func (s *MultiSelectState) display(o Entry) string {
	if o.IsEntity() {
		return keyString(o.Attr(s.cfg.DisplayKey))
	}
	return o.Key()
}

func removeEntry(list []Entry, i int) []Entry {
	out := make([]Entry, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
