package execution

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is the result object produced by Resolve. Keys keep the
// order they were first set in, and JSON marshalling preserves it,
// which plain Go maps cannot.
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]interface{})}
}

// Set stores value under key. Re-setting an existing key replaces the
// value but keeps the key's original position, which is how merged
// duplicate selections behave.
func (m *OrderedMap) Set(key string, value interface{}) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap) Get(key string) (interface{}, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Keys returns the key order; the slice is shared and must not be
// modified.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var _ json.Marshaler = (*OrderedMap)(nil)
