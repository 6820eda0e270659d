// Package store holds the repository abstraction every panel is built on.
// Records keep insertion order, which is also display order.
package store

// Identifiable is implemented by every stored record.
type Identifiable interface {
	GetID() string
}

// Repository is the list/add/update/remove capability a panel depends on.
// A database or API backed implementation can replace Memory without
// touching panel code.
type Repository[T Identifiable] interface {
	// List returns a snapshot in display order.
	List() []T
	Get(id string) (T, bool)
	Add(record T)
	// Update applies fn to the record with id under the store lock.
	// It reports false, and does nothing, when the id is absent.
	Update(id string, fn func(*T)) (T, bool)
	Remove(id string) bool
	Len() int
}

// Placement decides where Add puts a new record.
type Placement int

const (
	Append Placement = iota
	Prepend
)
