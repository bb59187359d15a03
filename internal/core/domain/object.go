package domain

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Field is one member of a JSON object.
type Field struct {
	Key   string
	Value any
}

// Object is a decoded JSON object that keeps its members in document order.
//
// Manifests keyed by category rely on that order, which a Go map cannot carry.
// Values are nil, bool, json.Number, string, []any or Object.
type Object []Field

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for i := range o {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Set stores value under key. A repeated key keeps its first position and takes the new value.
func (o Object) Set(key string, value any) Object {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Field{Key: key, Value: value})
}

// ObjectFromMap converts m into an Object with keys in sorted order.
func ObjectFromMap(m map[string]any) Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	o := make(Object, 0, len(m))
	for _, k := range keys {
		o = append(o, Field{Key: k, Value: m[k]})
	}
	return o
}

// MarshalJSON encodes the object with its members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
