// Package identity hands out the integer ids used for products, users and orders.
package identity

import "sync"

// Kind names an id sequence.
type Kind string

const (
	Product Kind = "product"
	User    Kind = "user"
	Order   Kind = "order"
)

// Allocator keeps one monotonically increasing counter per Kind, starting at 1.
// Ids are never reused, even after the entity is deleted. A counter only moves
// when a creation succeeds.
type Allocator struct {
	mu      sync.Mutex
	last    map[Kind]int
	pending map[Kind]*sync.Mutex
}

// NewAllocator creates an Allocator with every sequence unused.
func NewAllocator() *Allocator {
	return &Allocator{
		last:    make(map[Kind]int),
		pending: make(map[Kind]*sync.Mutex),
	}
}

// Next returns the next id for kind, for creations that cannot fail.
func (a *Allocator) Next(kind Kind) int {
	var next int
	_ = a.Allocate(kind, func(id int) error {
		next = id
		return nil
	})
	return next
}

// Allocate calls create with the next id for kind and consumes the id only when
// create returns nil. Allocations of the same kind run one at a time.
func (a *Allocator) Allocate(kind Kind, create func(id int) error) error {
	lock := a.kindLock(kind)
	lock.Lock()
	defer lock.Unlock()

	a.mu.Lock()
	id := a.last[kind] + 1
	a.mu.Unlock()

	if err := create(id); err != nil {
		return err
	}
	a.Observe(kind, id)
	return nil
}

// Observe moves the sequence for kind past id so ids loaded from storage are not
// handed out again.
func (a *Allocator) Observe(kind Kind, id int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id > a.last[kind] {
		a.last[kind] = id
	}
}

func (a *Allocator) kindLock(kind Kind) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()

	lock, ok := a.pending[kind]
	if !ok {
		lock = &sync.Mutex{}
		a.pending[kind] = lock
	}
	return lock
}
