package core

import "sort"

// KeySet tracks which keys are currently held down.
// The adapter uses it to guarantee release-before-press ordering and to
// avoid duplicate key-down events for a key that is already held.
type KeySet struct {
	// Keys maps key identifiers to whether they are held.
	// Using a map allows checking multiple keys without order dependency.
	Keys map[Key]bool
}

// NewKeySet creates an empty key set.
func NewKeySet() KeySet {
	return KeySet{
		Keys: make(map[Key]bool),
	}
}

// Set marks a key as held.
func (s *KeySet) Set(k Key) {
	if s.Keys == nil {
		s.Keys = make(map[Key]bool)
	}
	s.Keys[k] = true
}

// Unset marks a key as released.
func (s *KeySet) Unset(k Key) {
	delete(s.Keys, k)
}

// Has returns true if the given key is currently held.
func (s KeySet) Has(k Key) bool {
	if s.Keys == nil {
		return false
	}
	return s.Keys[k]
}

// Len returns the number of held keys.
func (s KeySet) Len() int {
	return len(s.Keys)
}

// Clear releases all keys.
func (s *KeySet) Clear() {
	for k := range s.Keys {
		delete(s.Keys, k)
	}
}

// Clone creates a copy of this key set.
func (s KeySet) Clone() KeySet {
	clone := NewKeySet()
	for k, v := range s.Keys {
		clone.Keys[k] = v
	}
	return clone
}

// Sorted returns the held keys in lexical order.
// Deterministic ordering keeps display and test output stable.
func (s KeySet) Sorted() []Key {
	keys := make([]Key, 0, len(s.Keys))
	for k := range s.Keys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
