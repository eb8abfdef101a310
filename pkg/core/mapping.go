package core

// Pair is one key/value entry of a Mapping.
type Pair struct {
	Key   string
	Value string
}

// Mapping is an ordered string-to-string mapping. Declaration order is preserved,
// which keeps column checks and replicate indexes deterministic.
type Mapping struct {
	pairs      []Pair
	index      map[string]int
	duplicates []string
}

// NewMapping builds a mapping from pairs. A repeated key keeps its first position,
// takes the last value and is reported by Duplicates.
func NewMapping(pairs ...Pair) *Mapping {
	m := &Mapping{index: make(map[string]int, len(pairs))}
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Set adds or updates a key.
func (m *Mapping) Set(key, value string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.pairs[i].Value = value
		m.duplicates = append(m.duplicates, key)
		return
	}
	m.index[key] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
}

// Get returns the value for key.
func (m *Mapping) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.pairs[i].Value, true
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns a copy of the entries in declaration order.
func (m *Mapping) Pairs() []Pair {
	if m == nil {
		return nil
	}
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Keys returns the keys in declaration order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		out[i] = p.Key
	}
	return out
}

// HasValue reports whether any entry maps to v.
func (m *Mapping) HasValue(v string) bool {
	if m == nil {
		return false
	}
	for _, p := range m.pairs {
		if p.Value == v {
			return true
		}
	}
	return false
}

// Duplicates returns the keys that were set more than once, in the order repeated.
func (m *Mapping) Duplicates() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.duplicates...)
}
