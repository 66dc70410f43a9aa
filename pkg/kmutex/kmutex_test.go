// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package kmutex_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shelfmark/shelfmark/pkg/kmutex"
)

/*
TestKMutex_SerializesSameKey verifies mutual exclusion per key.
*/
func TestKMutex_SerializesSameKey(t *testing.T) {
	km := kmutex.New[int]()

	const workers = 16
	const iterations = 200

	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				km.Lock(42)
				counter++
				km.Unlock(42)
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, workers*iterations, counter)
}

/*
TestKMutex_IndependentKeys ensures distinct keys do not block each other.
*/
func TestKMutex_IndependentKeys(t *testing.T) {
	km := kmutex.New[int]()

	km.Lock(1)

	done := make(chan struct{})
	go func() {
		// Must proceed even while key 1 is held.
		km.Lock(2)
		km.Unlock(2)
		close(done)
	}()

	<-done
	km.Unlock(1)
}

/*
TestKMutex_UnlockUnlocked documents the sync.Mutex-style panic contract.
*/
func TestKMutex_UnlockUnlocked(t *testing.T) {
	km := kmutex.New[string]()

	assert.Panics(t, func() {
		km.Unlock("never-locked")
	})
}
