package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	kl := New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kl.Lock("r1")
			defer kl.Unlock("r1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestDistinctKeysDoNotBlockEachOther(t *testing.T) {
	kl := New()

	kl.Lock("r1")
	defer kl.Unlock("r1")

	done := make(chan struct{})
	go func() {
		kl.Lock("r2")
		kl.Unlock("r2")
		close(done)
	}()

	// Must complete while r1 is still held
	<-done
}

func TestLockReusesMutexForKey(t *testing.T) {
	kl := New()

	kl.Lock("r1")
	kl.Unlock("r1")
	kl.Lock("r1")
	kl.Unlock("r1")

	assert.Len(t, kl.locks, 1)
}
