package store

import "sync"

// Memory is an in-memory ordered Repository.
type Memory[T Identifiable] struct {
	mu        sync.RWMutex
	items     []T
	placement Placement
}

// NewMemory builds a store seeded with records in the given order.
func NewMemory[T Identifiable](placement Placement, seed ...T) *Memory[T] {
	items := make([]T, len(seed))
	copy(items, seed)
	return &Memory[T]{items: items, placement: placement}
}

func (m *Memory[T]) List() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Memory[T]) Get(id string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.index(id); i >= 0 {
		return m.items[i], true
	}
	var zero T
	return zero, false
}

func (m *Memory[T]) Add(record T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.placement == Prepend {
		m.items = append([]T{record}, m.items...)
		return
	}
	m.items = append(m.items, record)
}

func (m *Memory[T]) Update(id string, fn func(*T)) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	rec := m.items[i]
	fn(&rec)
	m.items[i] = rec
	return rec, true
}

func (m *Memory[T]) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.items = append(m.items[:i:i], m.items[i+1:]...)
	return true
}

func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Count returns how many records satisfy pred.
func Count[T Identifiable](r Repository[T], pred func(T) bool) int {
	n := 0
	for _, rec := range r.List() {
		if pred(rec) {
			n++
		}
	}
	return n
}

func (m *Memory[T]) index(id string) int {
	for i, rec := range m.items {
		if rec.GetID() == id {
			return i
		}
	}
	return -1
}
