// Package types provides shared value containers.
package types

import (
	"iter"
	"slices"
)

// Params maps string keys to lists of string values, preserving the order
// in which keys were first appended. It is used to carry query parameters
// that are not part of the recognized configuration fields.
//
// The zero value is ready to use.
type Params struct {
	keys []string
	vals map[string][]string
}

// Get returns the values associated with the given key.
func (ps *Params) Get(key string) []string {
	if ps == nil {
		return nil
	}
	return ps.vals[key]
}

// First returns the first value associated with the given key.
func (ps *Params) First(key string) (string, bool) {
	vs := ps.Get(key)
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Last returns the last value associated with the given key.
func (ps *Params) Last(key string) (string, bool) {
	vs := ps.Get(key)
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// Set sets the key to value. It replaces any existing values,
// keeping the key's original position.
func (ps *Params) Set(key, value string) *Params {
	if !ps.Has(key) {
		ps.keys = append(ps.keys, key)
	}
	if ps.vals == nil {
		ps.vals = make(map[string][]string)
	}
	ps.vals[key] = []string{value}
	return ps
}

// Append appends value to the values associated with key.
func (ps *Params) Append(key, value string) *Params {
	if !ps.Has(key) {
		ps.keys = append(ps.keys, key)
	}
	if ps.vals == nil {
		ps.vals = make(map[string][]string)
	}
	ps.vals[key] = append(ps.vals[key], value)
	return ps
}

// Del deletes the values associated with key.
func (ps *Params) Del(key string) *Params {
	if ps.Has(key) {
		ps.keys = slices.DeleteFunc(ps.keys, func(k string) bool { return k == key })
		delete(ps.vals, key)
	}
	return ps
}

// Has checks whether a given key is present.
func (ps *Params) Has(key string) bool {
	if ps == nil {
		return false
	}
	_, ok := ps.vals[key]
	return ok
}

// Keys returns the keys in insertion order.
func (ps *Params) Keys() []string {
	if ps == nil {
		return nil
	}
	return slices.Clone(ps.keys)
}

// Len returns the number of distinct keys.
func (ps *Params) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.keys)
}

// All iterates over key/value pairs in insertion order,
// flattening multi-valued keys.
func (ps *Params) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if ps == nil {
			return
		}
		for _, k := range ps.keys {
			for _, v := range ps.vals[k] {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Clone returns a deep copy.
func (ps *Params) Clone() *Params {
	if ps == nil || len(ps.keys) == 0 {
		return &Params{}
	}
	ps2 := &Params{
		keys: slices.Clone(ps.keys),
		vals: make(map[string][]string, len(ps.vals)),
	}
	for k, vs := range ps.vals {
		ps2.vals[k] = slices.Clone(vs)
	}
	return ps2
}

// Equal compares this Params with another for equality, including key order.
func (ps *Params) Equal(val any) bool {
	var other *Params
	switch v := val.(type) {
	case Params:
		other = &v
	case *Params:
		other = v
	default:
		return false
	}

	if ps == other {
		return true
	} else if ps == nil || other == nil {
		return ps.Len() == 0 && other.Len() == 0
	}

	if !slices.Equal(ps.keys, other.keys) {
		return false
	}
	for k, vs := range ps.vals {
		if !slices.Equal(vs, other.vals[k]) {
			return false
		}
	}
	return true
}
