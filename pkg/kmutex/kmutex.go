// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package kmutex provides a keyed mutex: independent locks addressed by a
comparable key.

# Usage

Aggregate recomputation must be serialized per book: two concurrent
recomputes for the same book could interleave a read of the submission set
with another writer's update. Books are independent of each other, so a
single global lock would needlessly serialize the whole catalog. A keyed
mutex gives one lock per book ID.

Lock entries are reference-counted and removed when the last holder
releases, so the map does not grow with the catalog.
*/
package kmutex

import "sync"

// KMutex is a set of mutexes addressed by key.
//
// The zero value is not usable; construct with [New].
type KMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*entry
}

type entry struct {
	mu sync.Mutex
	// refs counts holders and waiters. Guarded by the outer KMutex.mu.
	refs int
}

// New constructs an empty keyed mutex.
func New[K comparable]() *KMutex[K] {
	return &KMutex[K]{locks: make(map[K]*entry)}
}

// Lock acquires the lock for the given key, blocking until it is available.
// Locks for distinct keys never contend with each other.
func (k *KMutex[K]) Lock(key K) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the lock for the given key.
// It panics if the key is not currently locked, mirroring [sync.Mutex].
func (k *KMutex[K]) Unlock(key K) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("kmutex: unlock of unlocked key")
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
