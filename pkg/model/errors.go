package model

import "sort"

// PhotoErrorKey is the error map key used by photo steps.
const PhotoErrorKey = "photo"

// Errors maps a field key (or PhotoErrorKey) to its validation message.
type Errors map[string]string

// Empty reports whether no messages are present.
func (e Errors) Empty() bool { return len(e) == 0 }

// Has reports whether key carries a message.
func (e Errors) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Clone returns an independent copy. A nil or empty map clones to an empty,
// non-nil map.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Without returns a copy of e minus key.
func (e Errors) Without(key string) Errors {
	out := e.Clone()
	delete(out, key)
	return out
}

// Keys returns the keys in sorted order for deterministic output.
func (e Errors) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
