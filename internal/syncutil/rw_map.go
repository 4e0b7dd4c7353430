// Package syncutil provides synchronized containers.
package syncutil

import (
	"iter"
	"maps"
	"slices"
	"sync"
)

// RWMap is a map protected by a [sync.RWMutex].
// The zero value is ready to use.
type RWMap[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// NewRWMap returns a map pre-filled with a copy of init.
func NewRWMap[K comparable, V any](init map[K]V) *RWMap[K, V] {
	return &RWMap[K, V]{data: maps.Clone(init)}
}

func (m *RWMap[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *RWMap[K, V]) Set(key K, val V) *RWMap[K, V] {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[K]V)
	}
	m.data[key] = val
	return m
}

func (m *RWMap[K, V]) Del(key K) *RWMap[K, V] {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return m
}

func (m *RWMap[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// All iterates over a snapshot of the map, so yield may call back into m.
func (m *RWMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}

		m.mu.RLock()
		data := maps.Clone(m.data)
		m.mu.RUnlock()

		for k, v := range data {
			if !yield(k, v) {
				return
			}
		}
	}
}

// SortedKeys returns the keys sorted with cmp.
func (m *RWMap[K, V]) SortedKeys(cmp func(a, b K) int) []K {
	keys := make([]K, 0)
	for k := range m.All() {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp)
	return keys
}
