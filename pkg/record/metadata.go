package record

import "github.com/nisaacdz/blockify/pkg/codec"

// Metadata is an ordered string-to-string map attached to a record or a
// block. Encoding preserves insertion order rather than sorting keys,
// so two callers building the same metadata in the same order always
// produce the same hash; a caller who inserts "a" then "b" gets a
// different wire encoding (and therefore a different hash) than one who
// inserts "b" then "a", even though the two maps compare equal.
type Metadata struct {
	keys   []string
	values map[string]string
}

// NewMetadata returns an empty Metadata ready for Set calls.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]string)}
}

// Set assigns key=value, appending key to the insertion order the first
// time it is seen and overwriting the value (in place) on repeats.
func (m *Metadata) Set(key, value string) *Metadata {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value for key and whether it was present.
func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len reports the number of entries.
func (m *Metadata) Len() int {
	return len(m.keys)
}

// Keys returns the insertion-ordered key sequence.
func (m *Metadata) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Clone returns a deep copy, so a builder can hand out a Block's
// metadata without letting callers mutate it after the fact.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return NewMetadata()
	}
	out := &Metadata{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]string, len(m.values)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// Encode writes the deterministic wire form of m into w.
func (m *Metadata) Encode(w *codec.Writer) {
	if m == nil {
		w.PutUint32(0)
		return
	}
	w.PutOrderedMap(m.keys, m.values)
}

// DecodeMetadata reads back a Metadata written by Encode.
func DecodeMetadata(r *codec.Reader) (*Metadata, error) {
	keys, values, err := r.OrderedMap()
	if err != nil {
		return nil, err
	}
	return &Metadata{keys: keys, values: values}, nil
}
