package locks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock(7)
			defer km.Unlock(7)
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock(1)
	// A different key must not block.
	done := make(chan struct{})
	go func() {
		km.Lock(2)
		km.Unlock(2)
		close(done)
	}()
	<-done
	km.Unlock(1)
}

func TestKeyedMutex_CleansUpEntries(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock(1)
	km.Unlock(1)
	km.Lock(2)
	km.Unlock(2)

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
