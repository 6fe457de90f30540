package types

// DefaultMap wraps a map and lazily creates values for missing keys.
//
//	pending := NewDefaultMap[string](func() Set[string] { return NewSet[string]() })
//	pending.Get("lsp3").Add(addr) // the set is created on first access
//
// DefaultMap is not safe for concurrent use.
type DefaultMap[K comparable, V any] struct {
	data        map[K]V
	defaultFunc func() V
}

// NewDefaultMap creates an empty DefaultMap whose missing entries are built
// with defaultFunc.
func NewDefaultMap[K comparable, V any](defaultFunc func() V) DefaultMap[K, V] {
	return DefaultMap[K, V]{
		data:        make(map[K]V),
		defaultFunc: defaultFunc,
	}
}

// Get returns the value stored under key, creating and storing a default one
// if the key is absent.
func (d *DefaultMap[K, V]) Get(key K) V {
	val, ok := d.data[key]
	if ok {
		return val
	}

	val = d.defaultFunc()
	d.data[key] = val
	return val
}

// Lookup returns the value stored under key without creating it.
func (d *DefaultMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := d.data[key]
	return val, ok
}

// Set stores val under key.
func (d *DefaultMap[K, V]) Set(key K, val V) {
	d.data[key] = val
}

// Delete removes key from the map.
func (d *DefaultMap[K, V]) Delete(key K) {
	delete(d.data, key)
}

// Clear removes every entry.
func (d *DefaultMap[K, V]) Clear() {
	clear(d.data)
}

// ToMap exposes the underlying map.
func (d *DefaultMap[K, V]) ToMap() map[K]V {
	return d.data
}
