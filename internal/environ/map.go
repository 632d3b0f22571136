package environ

import "iter"

// Map is an insertion-ordered mapping from variable name to value.
// Names and values are raw bytes held in Go strings; no encoding is assumed.
//
// The zero value is not usable; create maps with New.
type Map struct {
	keys   []string
	values map[string]string
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]string)}
}

// FromPairs builds a Map from alternating name, value arguments.
// A trailing name without a value is ignored.
func FromPairs(kv ...string) *Map {
	m := New()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

// Set stores value under name. An existing name keeps its position.
func (m *Map) Set(name, value string) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Get returns the value stored under name.
func (m *Map) Get(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of variables.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the variable names in iteration order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates over name, value pairs in order.
func (m *Map) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// ToMap returns an unordered copy, mostly useful for comparisons.
func (m *Map) ToMap() map[string]string {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Environ returns the variables as NAME=VALUE strings, the shape used by
// os.Environ and exec.
func (m *Map) Environ() []string {
	out := make([]string, 0, len(m.keys))
	for k, v := range m.All() {
		out = append(out, k+"="+v)
	}
	return out
}
