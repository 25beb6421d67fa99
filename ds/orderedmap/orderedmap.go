package orderedmap

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/gamehive/observer/runtime/syncutils"
)

// OrderedMap is a concurrency-safe map that remembers the insertion order of its keys.
type OrderedMap[K comparable, V any] struct {
	elements *linkedhashmap.Map
	mutex    syncutils.RWMutex
}

// New returns an empty OrderedMap.
func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		elements: linkedhashmap.New(),
	}
}

// Set adds a key-value pair to the map. Overwriting an existing key keeps its position.
func (o *OrderedMap[K, V]) Set(key K, newValue V) (previousValue V, previousValueExisted bool) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if untypedValue, exists := o.elements.Get(key); exists {
		previousValue, previousValueExisted = untypedValue.(V), true
	}

	o.elements.Put(key, newValue)

	return previousValue, previousValueExisted
}

// Delete removes the entry with the given key and returns true if it existed.
func (o *OrderedMap[K, V]) Delete(key K) (deleted bool) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if _, exists := o.elements.Get(key); !exists {
		return false
	}

	o.elements.Remove(key)

	return true
}

// ForEach calls the consumer for every element in insertion order and aborts when the consumer returns false.
// It iterates a snapshot, so the consumer may modify the map.
func (o *OrderedMap[K, V]) ForEach(consumer func(key K, value V) bool) (success bool) {
	keys, values := o.snapshot()
	for i := range keys {
		if !consumer(keys[i], values[i]) {
			return false
		}
	}

	return true
}

// Size returns the number of elements.
func (o *OrderedMap[K, V]) Size() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.elements.Size()
}

func (o *OrderedMap[K, V]) snapshot() (keys []K, values []V) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	keys = make([]K, 0, o.elements.Size())
	values = make([]V, 0, o.elements.Size())
	for iterator := o.elements.Iterator(); iterator.Next(); {
		keys = append(keys, iterator.Key().(K))
		values = append(values, iterator.Value().(V))
	}

	return keys, values
}
