package identity_test

import (
	"errors"
	"sync"
	"testing"

	"storefront/internal/identity"

	"github.com/stretchr/testify/assert"
)

func TestAllocator_SequencesAreIndependent(t *testing.T) {
	ids := identity.NewAllocator()

	assert.Equal(t, 1, ids.Next(identity.Product))
	assert.Equal(t, 2, ids.Next(identity.Product))
	assert.Equal(t, 1, ids.Next(identity.Order))
	assert.Equal(t, 1, ids.Next(identity.User))
	assert.Equal(t, 3, ids.Next(identity.Product))
}

func TestAllocator_Observe(t *testing.T) {
	ids := identity.NewAllocator()

	ids.Observe(identity.Order, 41)
	assert.Equal(t, 42, ids.Next(identity.Order))

	// Observing an older id never moves the sequence backwards.
	ids.Observe(identity.Order, 7)
	assert.Equal(t, 43, ids.Next(identity.Order))
}

func TestAllocator_ConcurrentNextNeverRepeats(t *testing.T) {
	ids := identity.NewAllocator()

	const workers, perWorker = 8, 50
	results := make(chan int, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results <- ids.Next(identity.User)
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool)
	for id := range results {
		assert.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestAllocator_AllocateConsumesOnlyOnSuccess(t *testing.T) {
	ids := identity.NewAllocator()
	assert.Equal(t, 1, ids.Next(identity.User))

	var tried int
	err := ids.Allocate(identity.User, func(id int) error {
		tried = id
		return errors.New("insert failed")
	})
	assert.Error(t, err)
	assert.Equal(t, 2, tried)

	var created int
	err = ids.Allocate(identity.User, func(id int) error {
		created = id
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, created, "failed attempt must not consume an id")
	assert.Equal(t, 3, ids.Next(identity.User))
}
